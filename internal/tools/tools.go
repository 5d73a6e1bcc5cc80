// Package tools holds the tool implementations. Every tool follows the same
// shape: classify the query into a closed-vocabulary key, consult its
// per-key on-disk cache, fetch each aspect through the web-search client on
// a miss, then render fixed sections plus a tip list.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asha-ai/asha/internal/cache"
	"github.com/asha-ai/asha/internal/search"
	"github.com/asha-ai/asha/internal/tool"
)

// Searcher is the web-search capability the tools consume.
// Implemented by search.Client.
type Searcher interface {
	Search(ctx context.Context, query string) []string
}

const fetchConcurrency = 3

// aspectEntry is the persisted cache payload for one classified key:
// {"timestamp": ..., "<aspect>": [...], ...} with aspects at the top level.
type aspectEntry struct {
	Timestamp time.Time
	Sections  map[string][]string
}

func (e aspectEntry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Sections)+1)
	for k, v := range e.Sections {
		m[k] = v
	}
	m["timestamp"] = e.Timestamp
	return json.Marshal(m)
}

func (e *aspectEntry) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	e.Sections = make(map[string][]string, len(m))
	for k, v := range m {
		if k == "timestamp" {
			if err := json.Unmarshal(v, &e.Timestamp); err != nil {
				return err
			}
			continue
		}
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			e.Sections[k] = list
		}
	}
	return nil
}

// loadOrFetch returns the cached aspect sections for key when fresh,
// otherwise fetches every aspect query and persists the full dictionary
// under a new timestamp before returning it.
func loadOrFetch(ctx context.Context, s Searcher, store *cache.Store, key string, ttl time.Duration, queries map[string]string) map[string][]string {
	var entry aspectEntry
	if store.Load(key, ttl, &entry) && len(entry.Sections) > 0 {
		return entry.Sections
	}

	sections := fetchAspects(ctx, s, queries)

	entry = aspectEntry{Timestamp: store.Now(), Sections: sections}
	// Best-effort: a failed save just means a refetch next time.
	_ = store.Save(key, entry)
	return sections
}

// fetchAspects runs one search per aspect, bounded to fetchConcurrency
// parallel calls. The result dictionary is fully assembled before return.
func fetchAspects(ctx context.Context, s Searcher, queries map[string]string) map[string][]string {
	var mu sync.Mutex
	out := make(map[string][]string, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for aspect, query := range queries {
		g.Go(func() error {
			results := s.Search(gctx, query)
			mu.Lock()
			out[aspect] = results
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// section describes one rendered block of a tool response.
type section struct {
	header string
	aspect string
	limit  int
}

// writeSections renders each section header followed by its top entries as
// bullets. An aspect with no usable entries renders a polite placeholder.
func writeSections(sb *strings.Builder, data map[string][]string, sections []section) {
	for i, sec := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sec.header)
		sb.WriteString("\n")

		entries := usable(data[sec.aspect])
		if len(entries) == 0 {
			fmt.Fprintf(sb, "• No recent results found here. Please try a different query or check back later.\n")
			continue
		}
		if len(entries) > sec.limit {
			entries = entries[:sec.limit]
		}
		for _, e := range entries {
			fmt.Fprintf(sb, "• %s\n", e)
		}
	}
}

// writeTips renders the numbered tip list every tool response ends with.
func writeTips(sb *strings.Builder, header string, tips []string) {
	sb.WriteString("\n")
	sb.WriteString(header)
	sb.WriteString("\n")
	for i, tip := range tips {
		fmt.Fprintf(sb, "%d. %s\n", i+1, tip)
	}
}

// usable filters out the search client's no-result sentinel so empty aspects
// fall through to the placeholder line.
func usable(entries []string) []string {
	out := entries[:0:0]
	for _, e := range entries {
		if e != search.NoResults && strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}

// wrap builds the uniform tool envelope from a title and rendered body.
func wrap(title string, raw any, body string) tool.Result {
	return tool.Result{
		RawData:           raw,
		FormattedResponse: title + "\n\n" + strings.TrimRight(body, "\n"),
	}
}
