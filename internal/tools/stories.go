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

const storiesTTL = 24 * time.Hour

// storyCategory maps query substrings to a story category; first match wins.
var storyCategories = []struct {
	substrings []string
	category   string
}{
	{[]string{"data scientist", "data science"}, "Data Science"},
	{[]string{"software engineer", "software developer"}, "Software Engineering"},
	{[]string{"machine learning", "ml engineer"}, "Machine Learning"},
	{[]string{"data analyst"}, "Data Analytics"},
	{[]string{"product manager"}, "Product Management"},
	{[]string{"devops"}, "DevOps"},
}

// SuccessStories surfaces inspiring stories and transition insights.
type SuccessStories struct {
	search Searcher
	cache  *cache.Store
}

func NewSuccessStories(s Searcher, store *cache.Store) *SuccessStories {
	return &SuccessStories{search: s, cache: store}
}

func (t *SuccessStories) Name() string { return "success_stories" }

func (t *SuccessStories) Description() string {
	return "Provides inspiring success stories and career transition insights with real-time data"
}

func (t *SuccessStories) Execute(ctx context.Context, query string) (tool.Result, error) {
	category := classifyStory(query)
	background := intent.Background(query)

	queries := map[string]string{
		"success_stories":     fmt.Sprintf("inspiring success stories %s career women in tech", category),
		"career_transitions":  fmt.Sprintf("career transition success stories %s to %s", background, category),
		"learning_paths":      fmt.Sprintf("how successful %s learned skills career path", category),
		"challenges_overcome": fmt.Sprintf("challenges overcome women in tech %s success", category),
		"advice":              fmt.Sprintf("career advice tips successful women %s", category),
		"industry_insights":   fmt.Sprintf("industry insights %s career growth opportunities", category),
	}
	data := loadOrFetch(ctx, t.search, t.cache, cache.Key(category), storiesTTL, queries)

	var sb strings.Builder
	if background != "" {
		fmt.Fprintf(&sb, "🌟 Inspiring Success Stories: %s to %s\n\n", background, category)
	} else {
		fmt.Fprintf(&sb, "🌟 Inspiring Success Stories in %s\n\n", category)
	}
	writeSections(&sb, data, []section{
		{"💫 Featured Success Stories:", "success_stories", 2},
		{"🔄 Career Transition Insights:", "career_transitions", 2},
		{"📚 Learning Paths Taken:", "learning_paths", 2},
		{"💪 Challenges Overcome:", "challenges_overcome", 2},
		{"💡 Key Advice from Successful Professionals:", "advice", 3},
		{"🌐 Industry Insights:", "industry_insights", 2},
	})
	writeTips(&sb, "✨ Key Takeaways:", []string{
		"Continuous learning is essential for success",
		"Network and build relationships in the industry",
		"Don't be afraid to take on challenging projects",
		"Find mentors and support systems",
		"Share your journey to inspire others",
	})

	return wrap(tool.ResponseTitle(query), data, sb.String()), nil
}

func classifyStory(query string) string {
	q := strings.ToLower(query)
	for _, c := range storyCategories {
		for _, s := range c.substrings {
			if strings.Contains(q, s) {
				return c.category
			}
		}
	}
	return "Tech"
}
