package tools

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/asha-ai/asha/internal/tool"
)

const (
	scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	scrapeMaxDepth   = 1
	scrapeMaxPages   = 5
	relatedLinkLimit = 5
)

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	disallowed  = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
	noValidURL  = "No valid URL provided. Please provide a valid URL to scrape."
	noScrapeHit = "No content found at the provided URL."
)

// Ingester receives scraped page text for the knowledge store.
type Ingester interface {
	Add(text string, metadata map[string]any) error
}

type scrapedPage struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
}

// Scraper fetches web pages, extracts their readable text, and feeds the
// result into the ingester when one is configured.
type Scraper struct {
	httpClient *http.Client
	ingester   Ingester
}

func NewScraper(ingester Ingester) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		ingester:   ingester,
	}
}

func (t *Scraper) Name() string { return "web_scraper" }

func (t *Scraper) Description() string {
	return "Scrapes and processes web content for knowledge base"
}

func (t *Scraper) Execute(ctx context.Context, query string) (tool.Result, error) {
	if !validURL(query) {
		return tool.Result{
			RawData:           map[string]any{},
			FormattedResponse: noValidURL,
		}, nil
	}

	var (
		pages []scrapedPage
		links []string
	)
	queue := []string{query}
	for depth := 0; depth < scrapeMaxDepth && len(queue) > 0 && len(pages) < scrapeMaxPages; depth++ {
		current := queue[0]
		queue = queue[1:]

		root, err := t.fetch(ctx, current)
		if err != nil {
			slog.Warn("fetching page failed", "url", current, "error", err)
			continue
		}

		text := cleanText(extractText(root))
		if text != "" {
			page := scrapedPage{
				URL:         current,
				Title:       pageTitle(root),
				Description: metaDescription(root),
				Text:        text,
			}
			pages = append(pages, page)
			t.ingest(page)
		}
		if depth < scrapeMaxDepth-1 {
			found := extractLinks(root, current)
			queue = append(queue, found...)
			links = append(links, found...)
		}
	}

	body := formatScrape(pages, links)
	if body == "" {
		body = noScrapeHit
	}
	return tool.Result{
		RawData:           map[string]any{"content": pages, "links": links},
		FormattedResponse: body,
	}, nil
}

func (t *Scraper) ingest(page scrapedPage) {
	if t.ingester == nil {
		return
	}
	meta := map[string]any{
		"url":         page.URL,
		"title":       page.Title,
		"description": page.Description,
	}
	if err := t.ingester.Add(page.Text, meta); err != nil {
		slog.Warn("ingesting scraped page failed", "url", page.URL, "error", err)
	}
}

func (t *Scraper) fetch(ctx context.Context, rawURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUserAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}
	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return root, nil
}

func formatScrape(pages []scrapedPage, links []string) string {
	var sb strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&sb, "📄 %s\n", p.Title)
		if p.Description != "" {
			fmt.Fprintf(&sb, "📝 %s\n\n", p.Description)
		}
		fmt.Fprintf(&sb, "🔗 %s\n\n", p.URL)
	}
	for _, p := range pages {
		sb.WriteString(p.Text)
		sb.WriteString("\n\n---\n\n")
	}
	if len(links) > 0 {
		sb.WriteString("\n🔍 Related Links:\n")
		for _, link := range links[:min(relatedLinkLimit, len(links))] {
			fmt.Fprintf(&sb, "• %s\n", link)
		}
	}
	return strings.TrimSpace(sb.String())
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// cleanText collapses whitespace and strips characters outside letters,
// digits, and basic punctuation. It is idempotent.
func cleanText(text string) string {
	text = disallowed.ReplaceAllString(text, "")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// extractText walks the tree collecting text nodes, skipping script and
// style subtrees.
func extractText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func pageTitle(root *html.Node) string {
	var title string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return title
}

func metaDescription(root *html.Node) string {
	var desc string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "name":
					name = a.Val
				case "content":
					content = a.Val
				}
			}
			if name == "description" {
				desc = strings.TrimSpace(content)
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return desc
}

func extractLinks(root *html.Node, base string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				ref, err := url.Parse(a.Val)
				if err != nil {
					continue
				}
				abs := baseURL.ResolveReference(ref)
				if abs.Scheme != "" && abs.Host != "" {
					links = append(links, abs.String())
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return links
}
