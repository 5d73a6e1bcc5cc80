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

const careerPathTTL = 24 * time.Hour

// CareerPath maps out progression options for a role.
type CareerPath struct {
	search Searcher
	cache  *cache.Store
}

func NewCareerPath(s Searcher, store *cache.Store) *CareerPath {
	return &CareerPath{search: s, cache: store}
}

func (t *CareerPath) Name() string { return "career_path" }

func (t *CareerPath) Description() string {
	return "Maps out career progression paths and guidance with real-time data"
}

func (t *CareerPath) Execute(ctx context.Context, query string) (tool.Result, error) {
	role := intent.Role(query)
	level := intent.Level(query)

	queries := map[string]string{
		"career_progression":   fmt.Sprintf("%s career progression path junior to senior", role),
		"required_experience":  fmt.Sprintf("experience needed to advance as %s", role),
		"role_transitions":     fmt.Sprintf("common career transitions from %s roles", role),
		"growth_opportunities": fmt.Sprintf("%s career growth opportunities leadership track", role),
		"mentorship":           fmt.Sprintf("mentorship programs women %s career development", role),
		"industry_outlook":     fmt.Sprintf("%s long term career outlook demand", role),
	}
	data := loadOrFetch(ctx, t.search, t.cache, cache.Key(role), careerPathTTL, queries)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎯 Career Path Guide for %s (%s level)\n\n", role, level)
	writeSections(&sb, data, []section{
		{"🪜 Career Progression:", "career_progression", 3},
		{"📋 Required Experience:", "required_experience", 3},
		{"🔄 Role Transitions:", "role_transitions", 2},
		{"🚀 Growth Opportunities:", "growth_opportunities", 3},
		{"🤝 Mentorship & Support:", "mentorship", 2},
		{"🔭 Industry Outlook:", "industry_outlook", 2},
	})
	writeTips(&sb, "✨ Planning Tips:", []string{
		"Set clear milestones for the next role you want",
		"Document your achievements as you go",
		"Seek feedback regularly from peers and managers",
		"Build relationships with people a step ahead of you",
		"Revisit your plan every few months",
	})

	return wrap(tool.ResponseTitle(query), data, sb.String()), nil
}
