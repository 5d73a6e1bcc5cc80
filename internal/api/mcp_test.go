package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asha-ai/asha/internal/tool"
	"github.com/asha-ai/asha/internal/tools"
)

type mockListings struct {
	jobs []tools.Listing
	err  error
	got  tools.ListingsQuery
}

func (m *mockListings) SearchListings(_ context.Context, q tools.ListingsQuery) ([]tools.Listing, error) {
	m.got = q
	return m.jobs, m.err
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPAsk(t *testing.T) {
	proc := &fakeProcessor{reply: "pipeline reply"}
	handler := mcpAsk(MCPDeps{Orchestrator: proc})

	res, err := handler(context.Background(), makeCallToolRequest("ask", map[string]any{"query": "career help"}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := toolText(t, res); got != "pipeline reply" {
		t.Errorf("got %q", got)
	}

	res, err = handler(context.Background(), makeCallToolRequest("ask", nil))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.IsError {
		t.Error("expected error without query")
	}
}

func TestMCPRunTool(t *testing.T) {
	handler := mcpRunTool(&namedTool{name: "skill_gap", desc: "finds gaps"})

	res, err := handler(context.Background(), makeCallToolRequest("skill_gap", map[string]any{"query": "python skills"}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := toolText(t, res); got != "skill_gap ran" {
		t.Errorf("got %q", got)
	}
}

func TestMCPSearchListings(t *testing.T) {
	listings := &mockListings{jobs: []tools.Listing{{Title: "UX Designer", Employer: "Acme"}}}
	handler := mcpSearchListings(MCPDeps{Listings: listings})

	res, err := handler(context.Background(), makeCallToolRequest("search_listings", map[string]any{
		"query":       "ux designer",
		"remote_only": true,
		"num_pages":   2,
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	out := toolText(t, res)
	if !strings.Contains(out, "UX Designer") || !strings.Contains(out, "Acme") {
		t.Errorf("got %q", out)
	}
	if !listings.got.RemoteOnly || listings.got.NumPages != 2 {
		t.Errorf("query passed = %+v", listings.got)
	}
}

func TestMCPSearchListingsErrors(t *testing.T) {
	handler := mcpSearchListings(MCPDeps{})
	res, err := handler(context.Background(), makeCallToolRequest("search_listings", map[string]any{"query": "dev"}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.IsError {
		t.Error("expected error without provider")
	}

	handler = mcpSearchListings(MCPDeps{Listings: &mockListings{err: errors.New("upstream down")}})
	res, err = handler(context.Background(), makeCallToolRequest("search_listings", map[string]any{"query": "dev"}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.IsError {
		t.Error("expected error from failing provider")
	}
}

func TestNewMCPServerRegistersTools(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register(&namedTool{name: "job_search", desc: "finds jobs"})

	s := NewMCPServer(MCPDeps{Orchestrator: &fakeProcessor{}, Registry: reg})
	if s == nil {
		t.Fatal("nil server")
	}
}
