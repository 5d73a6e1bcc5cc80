// Package search implements the web-search client shared by the knowledge
// base and the tools. Two upstream providers back it: a general search API
// and a news API. Results are cached on disk per query for 24 hours.
package search

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/asha-ai/asha/internal/cache"
)

const (
	defaultSerpURL = "https://serpapi.com/search"
	defaultNewsURL = "https://newsapi.org/v2/everything"

	resultLimit = 5
	cacheTTL    = 24 * time.Hour
)

// NoResults is the single entry returned when both providers come up empty.
// It is never written to the cache.
const NoResults = "No results found."

// Client queries the search providers with per-query on-disk caching.
// Search never returns an error: provider failures contribute nothing and
// missing credentials downgrade that provider to a no-op.
type Client struct {
	serpKey string
	newsKey string
	serpURL string
	newsURL string

	httpClient *http.Client
	cache      *cache.Store
}

// New creates a Client. Either key may be empty, disabling that provider.
func New(serpKey, newsKey string, store *cache.Store) *Client {
	return &Client{
		serpKey: serpKey,
		newsKey: newsKey,
		serpURL: defaultSerpURL,
		newsURL: defaultNewsURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: store,
	}
}

// searchEntry is the persisted cache payload for one query.
type searchEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Results   []string  `json:"results"`
}

// Search returns up to five "<title>: <snippet>" strings for the query.
// Cached results fresher than 24 hours are returned as-is. On a miss the
// general provider is tried first, topped up from the news provider, then
// the merged list is deduplicated, truncated, and cached.
func (c *Client) Search(ctx context.Context, query string) []string {
	key := cacheKey(query)

	var entry searchEntry
	if c.cache.Load(key, cacheTTL, &entry) && len(entry.Results) > 0 {
		return entry.Results
	}

	var results []string

	organic, err := c.Organic(ctx, query)
	if err != nil {
		slog.Warn("search: general provider unavailable", "error", err)
	}
	for _, r := range organic {
		results = append(results, fmt.Sprintf("%s: %s", r.Title, r.Snippet))
		if len(results) >= resultLimit {
			break
		}
	}

	if len(results) < resultLimit {
		articles, err := c.Articles(ctx, query, "relevancy")
		if err != nil {
			slog.Warn("search: news provider unavailable", "error", err)
		}
		for i, a := range articles {
			if i >= resultLimit {
				break
			}
			results = append(results, fmt.Sprintf("%s: %s", a.Title, a.Description))
		}
	}

	results = dedupe(results)
	if len(results) > resultLimit {
		results = results[:resultLimit]
	}

	if len(results) == 0 {
		return []string{NoResults}
	}

	entry = searchEntry{Timestamp: c.cache.Now(), Results: results}
	if err := c.cache.Save(key, entry); err != nil {
		slog.Warn("search: caching results failed", "query", query, "error", err)
	}
	return results
}

// cacheKey is the MD5 hex digest of the raw query string.
func cacheKey(query string) string {
	sum := md5.Sum([]byte(query))
	return hex.EncodeToString(sum[:])
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
