package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrProviderDisabled is returned when a provider's credential is missing.
var ErrProviderDisabled = errors.New("provider credential not configured")

// OrganicResult is one general-search hit.
type OrganicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Article is one news-provider hit.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type serpResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
}

type newsResponse struct {
	Articles []Article `json:"articles"`
}

// Organic queries the general search provider and returns its organic results.
func (c *Client) Organic(ctx context.Context, query string) ([]OrganicResult, error) {
	if c.serpKey == "" {
		return nil, ErrProviderDisabled
	}

	params := url.Values{}
	params.Set("api_key", c.serpKey)
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("num", "10")

	var resp serpResponse
	if err := c.getJSON(ctx, c.serpURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.OrganicResults, nil
}

// Articles queries the news provider. sortBy is the provider's sort key
// ("relevancy" or "publishedAt").
func (c *Client) Articles(ctx context.Context, query, sortBy string) ([]Article, error) {
	if c.newsKey == "" {
		return nil, ErrProviderDisabled
	}

	params := url.Values{}
	params.Set("apiKey", c.newsKey)
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", sortBy)
	params.Set("pageSize", "10")

	var resp newsResponse
	if err := c.getJSON(ctx, c.newsURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}
