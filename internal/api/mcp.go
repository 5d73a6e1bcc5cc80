package api

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asha-ai/asha/internal/tool"
	"github.com/asha-ai/asha/internal/tools"
)

// ListingsSearcher abstracts the scored job-listings provider for the MCP
// layer. Implemented by tools.ListingsClient.
type ListingsSearcher interface {
	SearchListings(ctx context.Context, q tools.ListingsQuery) ([]tools.Listing, error)
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Orchestrator QueryProcessor
	Registry     *tool.Registry
	Listings     ListingsSearcher // optional; if nil, search_listings returns an error
}

// NewMCPServer creates an MCP server exposing the full pipeline as `ask`,
// every registered tool individually, and the scored listings search.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"asha",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("asha — career advisory assistant for women in tech: guidance, jobs, events, and wellness resources."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask",
			mcp.WithDescription("Run the full advisory pipeline for a free-text career question and return the assembled reply."),
			mcp.WithString("query", mcp.Description("The career question to answer"), mcp.Required()),
		),
		mcpAsk(deps),
	)

	for _, t := range deps.Registry.All() {
		s.AddTool(
			mcp.NewTool(t.Name(),
				mcp.WithDescription(t.Description()),
				mcp.WithString("query", mcp.Description("Free-text query for this tool"), mcp.Required()),
			),
			mcpRunTool(t),
		)
	}

	s.AddTool(
		mcp.NewTool("search_listings",
			mcp.WithDescription("Search live job listings and rank them by women-friendliness score."),
			mcp.WithString("query", mcp.Description("Job title, skills, or keywords"), mcp.Required()),
			mcp.WithString("location", mcp.Description("Location for the search (default india)")),
			mcp.WithBoolean("remote_only", mcp.Description("Restrict to remote roles")),
			mcp.WithString("date_posted", mcp.Description("Posting window: all, today, 3days, week, month (default month)")),
			mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
			mcp.WithNumber("num_pages", mcp.Description("Number of pages to return (default 1)")),
			mcp.WithNumber("max_results", mcp.Description("Maximum listings to render (default 5)")),
		),
		mcpSearchListings(deps),
	)

	return s
}

func mcpAsk(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}
		return mcpText(deps.Orchestrator.ProcessQuery(ctx, query)), nil
	}
}

func mcpRunTool(t tool.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}
		res, err := t.Execute(ctx, query)
		if err != nil {
			return mcpError(fmt.Sprintf("%s failed: %v", t.Name(), err)), nil
		}
		return mcpText(res.FormattedResponse), nil
	}
}

func mcpSearchListings(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if deps.Listings == nil {
			return mcpError("listings search not available: no provider configured"), nil
		}

		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		q := tools.ListingsQuery{
			Query:      query,
			Location:   req.GetString("location", ""),
			RemoteOnly: req.GetBool("remote_only", false),
			DatePosted: req.GetString("date_posted", ""),
			Page:       req.GetInt("page", 1),
			NumPages:   req.GetInt("num_pages", 1),
		}

		jobs, err := deps.Listings.SearchListings(ctx, q)
		if err != nil {
			return mcpError(fmt.Sprintf("listings search failed: %v", err)), nil
		}
		return mcpText(tools.FormatListings(jobs, req.GetInt("max_results", 5))), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
