package tools

import (
	"path/filepath"

	"github.com/asha-ai/asha/internal/cache"
	"github.com/asha-ai/asha/internal/tool"
)

// RegisterAll wires every tool into reg. Each caching tool gets its own
// cache directory under cacheDir, named after the tool. ingester may be nil
// to run the scraper without knowledge-store ingestion.
func RegisterAll(reg *tool.Registry, s Searcher, cacheDir string, ingester Ingester) {
	store := func(name string) *cache.Store {
		return cache.NewStore(filepath.Join(cacheDir, name))
	}

	reg.Register(NewWebSearch(s))
	reg.Register(NewJobSearch(s, store("job_search")))
	reg.Register(NewSkillGap(s, store("skill_gap")))
	reg.Register(NewInterviewPrep(s, store("interview_prep")))
	reg.Register(NewCareerPath(s, store("career_path")))
	reg.Register(NewSuccessStories(s, store("success_stories")))
	reg.Register(NewEvents(s, store("events")))
	reg.Register(NewWellness(s, store("wellness")))
	reg.Register(NewScraper(ingester))
}
