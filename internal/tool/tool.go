// Package tool defines the capability contract every tool implements and the
// registry the orchestrator selects from.
package tool

import (
	"context"
	"fmt"
)

// Result is the uniform envelope every tool execution returns.
type Result struct {
	RawData           any    `json:"raw_data"`
	FormattedResponse string `json:"formatted_response"`
}

// Tool is a named capability with a single execution entry point.
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, query string) (Result, error)
}

const titleLimit = 50

// ResponseTitle is the default response title for a query, truncated to 50
// runes with a trailing ellipsis only when truncation happened.
func ResponseTitle(query string) string {
	r := []rune(query)
	if len(r) > titleLimit {
		return fmt.Sprintf("Here's what I found about %s...", string(r[:titleLimit]))
	}
	return fmt.Sprintf("Here's what I found about %s", query)
}
