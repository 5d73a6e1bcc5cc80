// Package orchestrator runs the query pipeline: validate, extract intent,
// refresh the knowledge base, pick the best-scoring tools, execute them, and
// assemble the reply. ProcessQuery always returns a user-facing string and
// never an error: every stage degrades to the next one.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asha-ai/asha/internal/intent"
	"github.com/asha-ai/asha/internal/knowledge"
	"github.com/asha-ai/asha/internal/tool"
)

const (
	fallbackReply   = "I couldn't find specific information about that. Would you like me to search the web for more details?"
	unexpectedReply = "I'm sorry, I encountered an unexpected error. Please try again later."
)

// KnowledgeBase is the guidance source. Implemented by knowledge.Base.
type KnowledgeBase interface {
	GetCareerGuidance(ctx context.Context, role string, skills []string) knowledge.Guidance
}

// Turn is one conversation history entry.
type Turn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Options bound tool selection.
type Options struct {
	MaxToolsPerQuery   int
	MinSimilarityScore float64
	Debug              bool
}

// Orchestrator coordinates the knowledge base and the tool registry for one
// conversation.
type Orchestrator struct {
	registry *tool.Registry
	kb       KnowledgeBase
	opts     Options

	mu      sync.Mutex
	history []Turn
}

// New creates an Orchestrator. Zero option fields fall back to selecting at
// most 3 tools with a minimum similarity of 0.05.
func New(registry *tool.Registry, kb KnowledgeBase, opts Options) *Orchestrator {
	if opts.MaxToolsPerQuery <= 0 {
		opts.MaxToolsPerQuery = 3
	}
	if opts.MinSimilarityScore <= 0 {
		opts.MinSimilarityScore = 0.05
	}
	return &Orchestrator{registry: registry, kb: kb, opts: opts}
}

// ProcessQuery runs the full pipeline for one user query and returns the
// assistant reply.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("query processing panicked", "panic", r)
			reply = unexpectedReply
		}
	}()

	if strings.TrimSpace(query) == "" {
		return "I'm sorry, I couldn't process your query: query must be a non-empty string"
	}
	if o.kb == nil {
		return "I'm sorry, I couldn't process your query: knowledge base not initialized"
	}
	if o.registry == nil {
		return "I'm sorry, I couldn't process your query: tool registry not initialized"
	}

	o.appendTurn("user", query)

	in := intent.Extract(query)
	guidance := o.kb.GetCareerGuidance(ctx, in.Role, in.Skills)

	selected := o.selectTools(query, guidance)

	var results []tool.Result
	for _, t := range selected {
		res, err := t.Execute(ctx, query)
		if err != nil {
			slog.Error("tool execution failed", "tool", t.Name(), "error", err)
			continue
		}
		results = append(results, res)
	}

	reply = assemble(guidance, results)
	o.appendTurn("assistant", reply)
	return reply
}

// History returns a snapshot of the conversation so far.
func (o *Orchestrator) History() []Turn {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Turn, len(o.history))
	copy(out, o.history)
	return out
}

// ClearHistory drops the conversation history.
func (o *Orchestrator) ClearHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
}

func (o *Orchestrator) appendTurn(role, content string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history, Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

// selectTools scores every registered tool against the query and the merged
// guidance text, then returns the top scorers above the similarity floor.
// Ties keep registration order.
func (o *Orchestrator) selectTools(query string, guidance knowledge.Guidance) []tool.Tool {
	q := strings.ToLower(query)
	kbText := strings.ToLower(guidanceText(guidance))

	type scored struct {
		tool  tool.Tool
		score float64
	}
	all := o.registry.All()
	scores := make([]scored, 0, len(all))
	for _, t := range all {
		s := 0.7 * jaccard(q, strings.ToLower(t.Description()))
		if kbText != "" {
			s += 0.3 * jaccard(q, kbText)
		}
		scores = append(scores, scored{tool: t, score: s})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	var selected []tool.Tool
	for _, s := range scores {
		if len(selected) == o.opts.MaxToolsPerQuery {
			break
		}
		if s.score < o.opts.MinSimilarityScore {
			break
		}
		selected = append(selected, s.tool)
	}

	if o.opts.Debug {
		names := make([]string, len(selected))
		for i, t := range selected {
			names[i] = t.Name()
		}
		slog.Debug("selected tools", "tools", names)
	}
	return selected
}

// guidanceText flattens every guidance title and description into one string
// for similarity scoring.
func guidanceText(g knowledge.Guidance) string {
	var parts []string
	add := func(title, desc string) {
		if title != "" {
			parts = append(parts, title)
		}
		if desc != "" {
			parts = append(parts, desc)
		}
	}
	for _, rs := range g.LearningResources {
		for _, r := range rs {
			add(r.Title, r.Description)
		}
	}
	for _, t := range g.MarketTrends {
		if !t.IsZero() {
			add(t.Title, t.Description)
		}
	}
	for _, rs := range g.SuccessStories {
		for _, r := range rs {
			add(r.Title, r.Description)
		}
	}
	for _, rs := range g.CareerAdvice {
		for _, r := range rs {
			add(r.Title, r.Description)
		}
	}
	return strings.Join(parts, " ")
}

// jaccard is word-set intersection over union.
func jaccard(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// assemble renders the guidance sections followed by the tool outputs. With
// nothing to show it returns the canned fallback.
func assemble(g knowledge.Guidance, results []tool.Result) string {
	var sb strings.Builder

	if !g.IsEmpty() {
		sb.WriteString("Based on my research:\n")
		writeResourceSection(&sb, "Learning Resources:", g.LearningResources, 3)
		writeTrendSection(&sb, "Market Trends:", g.MarketTrends)
		writeResourceSection(&sb, "Success Stories:", g.SuccessStories, 2)
		writeResourceSection(&sb, "Career Advice:", g.CareerAdvice, 2)
		sb.WriteString("\nWould you like to know more about any of these topics?\n")
	}

	if len(results) > 0 {
		sb.WriteString("\nAdditional Information:\n")
		for _, r := range results {
			sb.WriteString(r.FormattedResponse)
			sb.WriteString("\n")
		}
	}

	out := strings.TrimRight(sb.String(), "\n")
	if out == "" {
		return fallbackReply
	}
	return out
}

func writeResourceSection(sb *strings.Builder, header string, section map[string][]knowledge.Resource, limit int) {
	categories := sortedKeys(section)

	wroteHeader := false
	for _, category := range categories {
		entries := section[category]
		if len(entries) == 0 {
			continue
		}
		if !wroteHeader {
			fmt.Fprintf(sb, "\n%s\n", header)
			wroteHeader = true
		}
		fmt.Fprintf(sb, "\n%s:\n", categoryHeader(category))
		if len(entries) > limit {
			entries = entries[:limit]
		}
		for _, e := range entries {
			fmt.Fprintf(sb, "- %s\n", e.Title)
			if e.Description != "" {
				fmt.Fprintf(sb, "  %s\n", e.Description)
			}
		}
	}
}

func writeTrendSection(sb *strings.Builder, header string, section map[string]knowledge.Trend) {
	categories := make([]string, 0, len(section))
	for c := range section {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	wroteHeader := false
	for _, category := range categories {
		trend := section[category]
		if trend.IsZero() {
			continue
		}
		if !wroteHeader {
			fmt.Fprintf(sb, "\n%s\n", header)
			wroteHeader = true
		}
		fmt.Fprintf(sb, "\n%s:\n", categoryHeader(category))
		fmt.Fprintf(sb, "- %s\n", trend.Title)
		if trend.Description != "" {
			fmt.Fprintf(sb, "  %s\n", trend.Description)
		}
	}
}

func sortedKeys(m map[string][]knowledge.Resource) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// categoryHeader turns a snake_case category key into a display heading,
// e.g. "data_science" becomes "Data Science".
func categoryHeader(category string) string {
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
