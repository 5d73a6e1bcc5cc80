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

// Job listings churn quickly, so the market snapshot expires fastest.
const jobSearchTTL = 6 * time.Hour

// JobSearch surveys the job market for a role and location.
type JobSearch struct {
	search Searcher
	cache  *cache.Store
}

func NewJobSearch(s Searcher, store *cache.Store) *JobSearch {
	return &JobSearch{search: s, cache: store}
}

func (t *JobSearch) Name() string { return "job_search" }

func (t *JobSearch) Description() string {
	return "Provides personalized job recommendations with real-time market data"
}

func (t *JobSearch) Execute(ctx context.Context, query string) (tool.Result, error) {
	role := intent.Role(query)
	location := intent.Location(query, intent.JobLocations)
	level := intent.Level(query)

	locationQuery := ""
	if !strings.EqualFold(location, "global") {
		locationQuery = "in " + location
	}

	queries := map[string]string{
		"job_listings":             fmt.Sprintf("%s jobs %s %s level hiring now", role, locationQuery, level),
		"salary_insights":          fmt.Sprintf("%s salary range %s %s level %d", role, locationQuery, level, time.Now().Year()),
		"company_insights":         fmt.Sprintf("best companies hiring %s %s company culture", role, locationQuery),
		"market_trends":            fmt.Sprintf("%s job market trends growth opportunities %s", role, locationQuery),
		"remote_opportunities":     fmt.Sprintf("remote %s jobs %s level", role, level),
		"skill_requirements":       fmt.Sprintf("%s required skills most in demand %s", role, level),
		"women_friendly_companies": fmt.Sprintf("women friendly companies hiring %s diversity inclusion", role),
	}
	data := loadOrFetch(ctx, t.search, t.cache, cache.Key(role, location), jobSearchTTL, queries)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎯 Job Opportunities for %s (%s level)\n", role, level)
	if !strings.EqualFold(location, "global") {
		fmt.Fprintf(&sb, "📍 Location: %s\n", location)
	}
	sb.WriteString("\n")
	writeSections(&sb, data, []section{
		{"💼 Latest Job Openings:", "job_listings", 5},
		{"💰 Salary Insights:", "salary_insights", 2},
		{"🏢 Top Companies & Culture:", "company_insights", 3},
		{"📈 Market Trends:", "market_trends", 2},
		{"🌐 Remote Opportunities:", "remote_opportunities", 3},
		{"💡 In-Demand Skills:", "skill_requirements", 3},
		{"👩‍💻 Women-Friendly Companies:", "women_friendly_companies", 3},
	})
	writeTips(&sb, "✨ Job Search Tips:", []string{
		"Tailor your resume for each application",
		"Research companies before applying",
		"Network with professionals in your field",
		"Prepare a strong online presence (LinkedIn, GitHub)",
		"Follow up on applications professionally",
	})

	// Fixed title: the market snapshot is the same regardless of phrasing.
	return wrap("Job Search Results", data, sb.String()), nil
}
