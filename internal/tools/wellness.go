package tools

import (
	"context"
	"strings"
	"time"

	"github.com/asha-ai/asha/internal/cache"
	"github.com/asha-ai/asha/internal/tool"
)

const wellnessTTL = 24 * time.Hour

// wellnessCategories maps query substrings to a wellness category;
// first match wins, default is General Wellness.
var wellnessCategories = []struct {
	substrings []string
	category   string
}{
	{[]string{"mental", "anxiety", "stress"}, "Mental Health"},
	{[]string{"work life", "balance"}, "Work-Life Balance"},
	{[]string{"physical", "health", "exercise"}, "Physical Wellness"},
	{[]string{"support", "community"}, "Support Networks"},
	{[]string{"career", "professional"}, "Career Wellness"},
}

// Wellness curates wellness resources and support for women in tech.
type Wellness struct {
	search Searcher
	cache  *cache.Store
}

func NewWellness(s Searcher, store *cache.Store) *Wellness {
	return &Wellness{search: s, cache: store}
}

func (t *Wellness) Name() string { return "women_wellness" }

func (t *Wellness) Description() string {
	return "Provides wellness resources and support for women in tech with real-time data"
}

func (t *Wellness) Execute(ctx context.Context, query string) (tool.Result, error) {
	category := classifyWellness(query)

	queries := map[string]string{
		"mental_health":       "mental health resources women in tech stress anxiety support",
		"work_life_balance":   "work life balance tips women tech industry",
		"physical_wellness":   "physical health wellness tips busy tech professionals",
		"support_networks":    "women in tech support groups mentorship networks",
		"stress_management":   "stress management techniques women tech workplace",
		"career_wellness":     "career wellbeing professional development women tech",
		"community_resources": "women tech communities support resources organizations",
	}
	data := loadOrFetch(ctx, t.search, t.cache, cache.Key(category), wellnessTTL, queries)

	var sb strings.Builder
	sb.WriteString("🌸 Wellness Resources & Support for Women in Tech\n\n")
	writeSections(&sb, data, []section{
		{"🧠 Mental Health Support:", "mental_health", 3},
		{"⚖️ Work-Life Balance Tips:", "work_life_balance", 3},
		{"💪 Physical Wellness:", "physical_wellness", 3},
		{"🤝 Support Networks:", "support_networks", 3},
		{"🌿 Stress Management Techniques:", "stress_management", 3},
		{"💼 Career Wellness:", "career_wellness", 3},
		{"👥 Community Resources:", "community_resources", 3},
	})
	writeTips(&sb, "✨ Daily Wellness Practices:", []string{
		"Take regular breaks during work",
		"Practice mindfulness or meditation",
		"Maintain boundaries between work and personal life",
		"Stay connected with supportive communities",
		"Prioritize physical and mental health",
	})
	sb.WriteString("\n🆘 Important Resources:\n")
	sb.WriteString("• National Crisis Hotline: 988\n")
	sb.WriteString("• Women's Health Helpline: 1-800-994-9662\n")
	sb.WriteString("• NAMI HelpLine: 1-800-950-NAMI\n")

	return wrap(tool.ResponseTitle(query), data, sb.String()), nil
}

func classifyWellness(query string) string {
	q := strings.ToLower(query)
	for _, c := range wellnessCategories {
		for _, s := range c.substrings {
			if strings.Contains(q, s) {
				return c.category
			}
		}
	}
	return "General Wellness"
}
