package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asha-ai/asha/internal/cache"
)

func serpServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			http.Error(w, "missing key", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, serpKey, newsKey, serpURL, newsURL string) *Client {
	t.Helper()
	c := New(serpKey, newsKey, cache.NewStore(t.TempDir()))
	if serpURL != "" {
		c.serpURL = serpURL
	}
	if newsURL != "" {
		c.newsURL = newsURL
	}
	return c
}

func TestSearchFormatsOrganicResults(t *testing.T) {
	serp := serpServer(t, `{"organic_results": [
		{"title": "Go careers", "snippet": "how to grow", "link": "https://a"},
		{"title": "Tech paths", "snippet": "options", "link": "https://b"}
	]}`)

	c := newTestClient(t, "key", "", serp.URL, "")
	got := c.Search(context.Background(), "career advice")

	want := []string{"Go careers: how to grow", "Tech paths: options"}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchFallsBackToNews(t *testing.T) {
	serp := serpServer(t, `{"organic_results": [{"title": "Only one", "snippet": "hit", "link": "https://a"}]}`)
	news := newsServer(t, `{"articles": [
		{"title": "News A", "description": "desc A"},
		{"title": "News B", "description": "desc B"}
	]}`)

	c := newTestClient(t, "key", "key", serp.URL, news.URL)
	got := c.Search(context.Background(), "query")

	if len(got) != 3 {
		t.Fatalf("got %d results, want 3: %v", len(got), got)
	}
	if got[0] != "Only one: hit" {
		t.Errorf("general result should come first, got %q", got[0])
	}
	if got[1] != "News A: desc A" || got[2] != "News B: desc B" {
		t.Errorf("news results out of order: %v", got[1:])
	}
}

func TestSearchDeduplicatesAndTruncates(t *testing.T) {
	serp := serpServer(t, `{"organic_results": [
		{"title": "Same", "snippet": "thing"},
		{"title": "Same", "snippet": "thing"},
		{"title": "B", "snippet": "b"},
		{"title": "C", "snippet": "c"},
		{"title": "D", "snippet": "d"},
		{"title": "E", "snippet": "e"},
		{"title": "F", "snippet": "f"}
	]}`)

	c := newTestClient(t, "key", "", serp.URL, "")
	got := c.Search(context.Background(), "query")

	if len(got) != 5 {
		t.Fatalf("got %d results, want 5: %v", len(got), got)
	}
	if got[0] != "Same: thing" || got[1] != "B: b" {
		t.Errorf("dedupe broke ordering: %v", got)
	}
	for i, r := range got {
		for j := i + 1; j < len(got); j++ {
			if r == got[j] {
				t.Errorf("duplicate result survived: %q", r)
			}
		}
	}
}

func TestSearchNoProvidersReturnsPlaceholder(t *testing.T) {
	c := newTestClient(t, "", "", "", "")
	got := c.Search(context.Background(), "anything")

	if len(got) != 1 || got[0] != NoResults {
		t.Errorf("got %v, want [%q]", got, NoResults)
	}
}

func TestSearchEmptyResultNotCached(t *testing.T) {
	dir := t.TempDir()
	store := cache.NewStore(dir)
	c := New("", "", store)

	c.Search(context.Background(), "anything")

	var entry searchEntry
	if store.Load(cacheKey("anything"), 24*time.Hour, &entry) {
		t.Error("empty result was cached")
	}
}

func TestSearchUsesFreshCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"organic_results": [{"title": "T", "snippet": "s"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, "key", "", srv.URL, "")

	first := c.Search(context.Background(), "query")
	second := c.Search(context.Background(), "query")

	if calls != 1 {
		t.Errorf("provider called %d times, want 1 (second hit should come from cache)", calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}
}

func TestSearchProviderFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, "key", "", srv.URL, "")
	got := c.Search(context.Background(), "query")

	if len(got) != 1 || got[0] != NoResults {
		t.Errorf("got %v, want placeholder on provider failure", got)
	}
}

func TestCacheKeyIsMD5Hex(t *testing.T) {
	// md5("abc") is a fixed digest; guards against accidental key changes
	// that would orphan existing cache files.
	if got := cacheKey("abc"); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("cacheKey(\"abc\") = %q", got)
	}
}
