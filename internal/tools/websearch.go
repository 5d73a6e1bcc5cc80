package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/asha-ai/asha/internal/tool"
)

// WebSearch exposes the raw web-search capability as a dispatchable tool.
type WebSearch struct {
	search Searcher
}

func NewWebSearch(s Searcher) *WebSearch {
	return &WebSearch{search: s}
}

func (t *WebSearch) Name() string { return "web_search" }

func (t *WebSearch) Description() string {
	return "Fetches real-time information from the web using search APIs"
}

func (t *WebSearch) Execute(ctx context.Context, query string) (tool.Result, error) {
	results := t.search.Search(ctx, query)

	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "• %s\n", r)
	}
	title := fmt.Sprintf("Search Results for '%s'", query)
	return wrap(title, results, sb.String()), nil
}
