// Package knowledge maintains the three category-partitioned JSON documents
// (career resources, market trends, career insights), refreshes them from the
// search providers on demand, and serves a merged view per (role, skills).
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/asha-ai/asha/internal/search"
)

const (
	resourcesFile = "career_resources.json"
	trendsFile    = "market_trends.json"
	insightsFile  = "career_insights.json"
)

// Provider supplies raw structured results from the upstream search and news
// services. Implemented by search.Client.
type Provider interface {
	Organic(ctx context.Context, query string) ([]search.OrganicResult, error)
	Articles(ctx context.Context, query, sortBy string) ([]search.Article, error)
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Base is the knowledge base. All document writes go through a single mutex:
// two concurrent refreshes would otherwise race on the same file.
type Base struct {
	dir      string
	provider Provider
	clock    Clock

	mu sync.Mutex
}

// New creates a Base rooted at dir, writing empty skeleton documents for any
// of the three files that do not exist yet.
func New(dir string, provider Provider) (*Base, error) {
	return newWithClock(dir, provider, realClock{})
}

func newWithClock(dir string, provider Provider, clock Clock) (*Base, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating knowledge directory: %w", err)
	}
	b := &Base{dir: dir, provider: provider, clock: clock}

	if err := b.ensureFile(resourcesFile, emptyCareerResources()); err != nil {
		return nil, err
	}
	if err := b.ensureFile(trendsFile, emptyMarketTrends()); err != nil {
		return nil, err
	}
	if err := b.ensureFile(insightsFile, emptyCareerInsights()); err != nil {
		return nil, err
	}
	return b, nil
}

// Guidance is the merged view returned to the orchestrator.
type Guidance struct {
	Role              string                `json:"role"`
	Skills            []string              `json:"skills"`
	LearningResources map[string][]Resource `json:"learning_resources"`
	MarketTrends      map[string]Trend      `json:"market_trends"`
	SuccessStories    map[string][]Resource `json:"success_stories"`
	CareerAdvice      map[string][]Resource `json:"career_advice"`
	LastUpdated       GuidanceTimestamps    `json:"last_updated"`
}

// GuidanceTimestamps carries each source document's last_updated stamp.
type GuidanceTimestamps struct {
	Resources string `json:"resources"`
	Trends    string `json:"trends"`
	Insights  string `json:"insights"`
}

// IsEmpty reports whether the merged view holds no usable entries.
func (g Guidance) IsEmpty() bool {
	for _, rs := range g.LearningResources {
		if len(rs) > 0 {
			return false
		}
	}
	for _, t := range g.MarketTrends {
		if !t.IsZero() {
			return false
		}
	}
	for _, rs := range g.SuccessStories {
		if len(rs) > 0 {
			return false
		}
	}
	for _, rs := range g.CareerAdvice {
		if len(rs) > 0 {
			return false
		}
	}
	return true
}

// GetCareerGuidance unconditionally refreshes all three documents from
// upstream (each refresh best-effort), then reloads and merges them.
func (b *Base) GetCareerGuidance(ctx context.Context, role string, skills []string) Guidance {
	b.refreshResources(ctx, role, skills)
	b.refreshTrends(ctx, role)
	b.refreshInsights(ctx, role)

	var resources CareerResources
	if err := b.loadDoc(resourcesFile, &resources); err != nil {
		slog.Warn("knowledge: loading resources failed", "error", err)
		resources = emptyCareerResources()
	}
	resources.normalize()

	var trends MarketTrends
	if err := b.loadDoc(trendsFile, &trends); err != nil {
		slog.Warn("knowledge: loading trends failed", "error", err)
		trends = emptyMarketTrends()
	}
	trends.normalize()

	var insights CareerInsights
	if err := b.loadDoc(insightsFile, &insights); err != nil {
		slog.Warn("knowledge: loading insights failed", "error", err)
		insights = emptyCareerInsights()
	}
	insights.normalize()

	return Guidance{
		Role:              role,
		Skills:            skills,
		LearningResources: resources.LearningResources,
		MarketTrends:      trends.IndustryTrends,
		SuccessStories:    insights.SuccessStories,
		CareerAdvice:      insights.CareerAdvice,
		LastUpdated: GuidanceTimestamps{
			Resources: resources.LastUpdated,
			Trends:    trends.LastUpdated,
			Insights:  insights.LastUpdated,
		},
	}
}

// refreshResources appends general-search results to career_resources.json.
// A result is filed under every learning category whose key occurs as a
// case-insensitive substring of the result title; non-matching results are
// dropped.
func (b *Base) refreshResources(ctx context.Context, role string, skills []string) {
	query := fmt.Sprintf("%s career path %s", role, strings.Join(skills, ", "))
	results, err := b.provider.Organic(ctx, query)
	if err != nil {
		slog.Warn("knowledge: resources refresh skipped", "error", err)
		return
	}
	if len(results) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var doc CareerResources
	if err := b.loadDoc(resourcesFile, &doc); err != nil {
		slog.Warn("knowledge: resources refresh load failed", "error", err)
		return
	}
	doc.normalize()

	for _, r := range results {
		if r.Title == "" || r.Link == "" {
			continue
		}
		res := Resource{
			Title:       r.Title,
			URL:         r.Link,
			Description: r.Snippet,
			Type:        "learning_resource",
		}
		title := strings.ToLower(r.Title)
		for category := range doc.LearningResources {
			if strings.Contains(title, category) {
				doc.LearningResources[category] = append(doc.LearningResources[category], res)
			}
		}
	}

	doc.LastUpdated = b.now()
	if err := b.saveDoc(resourcesFile, doc); err != nil {
		slog.Warn("knowledge: resources refresh save failed", "error", err)
	}
}

// refreshTrends overwrites the per-category trend objects in
// market_trends.json from the news provider.
func (b *Base) refreshTrends(ctx context.Context, role string) {
	query := fmt.Sprintf("%s job market trends %d", role, b.clock.Now().Year())
	articles, err := b.provider.Articles(ctx, query, "publishedAt")
	if err != nil {
		slog.Warn("knowledge: trends refresh skipped", "error", err)
		return
	}
	if len(articles) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var doc MarketTrends
	if err := b.loadDoc(trendsFile, &doc); err != nil {
		slog.Warn("knowledge: trends refresh load failed", "error", err)
		return
	}
	doc.normalize()

	for _, a := range articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		trend := Trend{
			Title:       a.Title,
			URL:         a.URL,
			Description: a.Description,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		}
		title := strings.ToLower(a.Title)
		for category := range doc.IndustryTrends {
			if strings.Contains(title, category) {
				doc.IndustryTrends[category] = trend
			}
		}
	}

	doc.LastUpdated = b.now()
	if err := b.saveDoc(trendsFile, doc); err != nil {
		slog.Warn("knowledge: trends refresh save failed", "error", err)
	}
}

// refreshInsights appends success stories and career advice to
// career_insights.json. A result whose title contains "success" is a story;
// anything else is advice.
func (b *Base) refreshInsights(ctx context.Context, role string) {
	query := fmt.Sprintf("%s career success stories and advice", role)
	results, err := b.provider.Organic(ctx, query)
	if err != nil {
		slog.Warn("knowledge: insights refresh skipped", "error", err)
		return
	}
	if len(results) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var doc CareerInsights
	if err := b.loadDoc(insightsFile, &doc); err != nil {
		slog.Warn("knowledge: insights refresh load failed", "error", err)
		return
	}
	doc.normalize()

	for _, r := range results {
		if r.Title == "" || r.Link == "" {
			continue
		}
		title := strings.ToLower(r.Title)
		kind := "career_advice"
		if strings.Contains(title, "success") {
			kind = "success_story"
		}
		res := Resource{
			Title:       r.Title,
			URL:         r.Link,
			Description: r.Snippet,
			Type:        kind,
		}

		target := doc.CareerAdvice
		if kind == "success_story" {
			target = doc.SuccessStories
		}
		for category := range target {
			if strings.Contains(title, category) {
				target[category] = append(target[category], res)
			}
		}
	}

	doc.LastUpdated = b.now()
	if err := b.saveDoc(insightsFile, doc); err != nil {
		slog.Warn("knowledge: insights refresh save failed", "error", err)
	}
}

func (b *Base) now() string {
	return b.clock.Now().UTC().Format(time.RFC3339)
}

func (b *Base) ensureFile(name string, skeleton any) error {
	path := filepath.Join(b.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := b.saveDoc(name, skeleton); err != nil {
		return fmt.Errorf("writing skeleton %s: %w", name, err)
	}
	return nil
}

func (b *Base) loadDoc(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// saveDoc rewrites a document in full via temp-file-and-rename.
func (b *Base) saveDoc(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, filepath.Join(b.dir, name))
}
