package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asha-ai/asha/internal/cache"
	"github.com/asha-ai/asha/internal/intent"
	"github.com/asha-ai/asha/internal/tool"
)

const skillGapTTL = 24 * time.Hour

// SkillGap analyses skill gaps for a role and recommends learning paths.
type SkillGap struct {
	search Searcher
	cache  *cache.Store
}

func NewSkillGap(s Searcher, store *cache.Store) *SkillGap {
	return &SkillGap{search: s, cache: store}
}

func (t *SkillGap) Name() string { return "skill_gap" }

func (t *SkillGap) Description() string {
	return "Analyzes skill gaps and provides learning recommendations"
}

func (t *SkillGap) Execute(ctx context.Context, query string) (tool.Result, error) {
	role := intent.Role(query)

	queries := map[string]string{
		"required_skills":    fmt.Sprintf("essential skills required for %s 2025", role),
		"emerging_skills":    fmt.Sprintf("emerging technologies trends skills %s future", role),
		"learning_resources": fmt.Sprintf("best resources platforms learn %s skills", role),
		"industry_trends":    fmt.Sprintf("industry trends affecting %s skills demand", role),
		"certifications":     fmt.Sprintf("most valuable certifications for %s", role),
		"skill_importance":   fmt.Sprintf("most in-demand skills %s job market", role),
	}
	data := loadOrFetch(ctx, t.search, t.cache, cache.Key(role), skillGapTTL, queries)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎯 Skill Gap Analysis for %s\n\n", role)
	writeSections(&sb, data, []section{
		{"💡 Required Skills:", "required_skills", 5},
		{"🚀 Emerging Skills:", "emerging_skills", 3},
		{"📚 Learning Resources:", "learning_resources", 3},
		{"📈 Industry Trends:", "industry_trends", 2},
		{"🏆 Recommended Certifications:", "certifications", 3},
		{"🎯 Skill Importance:", "skill_importance", 3},
	})
	writeTips(&sb, "✨ Next Steps:", []string{
		"Identify which required skills you need to develop",
		"Create a learning plan for acquiring new skills",
		"Consider relevant certifications to validate your skills",
		"Stay updated with industry trends and emerging technologies",
		"Practice and apply your skills in real-world projects",
	})

	return wrap(tool.ResponseTitle(query), data, sb.String()), nil
}
