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

// Event data goes stale faster than the other tools' data.
const eventsTTL = 12 * time.Hour

var eventCategories = []struct {
	substrings []string
	category   string
}{
	{[]string{"data science", "machine learning"}, "Data Science & AI"},
	{[]string{"web", "frontend", "backend"}, "Web Development"},
	{[]string{"cloud", "devops"}, "Cloud & DevOps"},
	{[]string{"cybersecurity", "security"}, "Cybersecurity"},
	{[]string{"product", "ux"}, "Product & Design"},
	{[]string{"blockchain", "crypto"}, "Blockchain"},
}

// Events recommends conferences, meetups, and other tech events.
type Events struct {
	search Searcher
	cache  *cache.Store
}

func NewEvents(s Searcher, store *cache.Store) *Events {
	return &Events{search: s, cache: store}
}

func (t *Events) Name() string { return "event_recommender" }

func (t *Events) Description() string {
	return "Recommends tech events, conferences, and networking opportunities with real-time data"
}

func (t *Events) Execute(ctx context.Context, query string) (tool.Result, error) {
	category := classifyEvent(query)
	location := intent.Location(query, intent.EventLocations)

	locationQuery := ""
	if !strings.EqualFold(location, "global") {
		locationQuery = "in " + location
	}
	year := time.Now().Year()

	queries := map[string]string{
		"upcoming_events":   fmt.Sprintf("upcoming %s events %s %d", category, locationQuery, year),
		"conferences":       fmt.Sprintf("%s conferences %s %d", category, locationQuery, year),
		"workshops":         fmt.Sprintf("%s workshops training sessions %s", category, locationQuery),
		"networking_events": fmt.Sprintf("%s networking meetups %s", category, locationQuery),
		"hackathons":        fmt.Sprintf("%s hackathons coding competitions %s", category, locationQuery),
		"women_tech_events": fmt.Sprintf("women in tech events %s %s", category, locationQuery),
		"virtual_events":    fmt.Sprintf("virtual online %s events webinars %d", category, year),
	}
	data := loadOrFetch(ctx, t.search, t.cache, cache.Key(category, location), eventsTTL, queries)

	var sb strings.Builder
	if !strings.EqualFold(location, "global") {
		fmt.Fprintf(&sb, "🎯 Tech Events & Opportunities in %s - %s\n\n", location, category)
	} else {
		fmt.Fprintf(&sb, "🎯 Global Tech Events & Opportunities - %s\n\n", category)
	}
	writeSections(&sb, data, []section{
		{"📅 Upcoming Events:", "upcoming_events", 3},
		{"🎤 Notable Conferences:", "conferences", 3},
		{"📚 Workshops & Training:", "workshops", 3},
		{"🤝 Networking Opportunities:", "networking_events", 2},
		{"💻 Hackathons & Competitions:", "hackathons", 2},
		{"👩‍💻 Women in Tech Events:", "women_tech_events", 2},
		{"🌐 Virtual Events & Webinars:", "virtual_events", 2},
	})
	writeTips(&sb, "✨ Event Participation Tips:", []string{
		"Register early for popular events",
		"Prepare questions for speakers",
		"Update your LinkedIn and business cards",
		"Research attendees and companies",
		"Follow up with new connections",
	})

	return wrap(tool.ResponseTitle(query), data, sb.String()), nil
}

func classifyEvent(query string) string {
	q := strings.ToLower(query)
	for _, c := range eventCategories {
		for _, s := range c.substrings {
			if strings.Contains(q, s) {
				return c.category
			}
		}
	}
	return "Technology"
}
