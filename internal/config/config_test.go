package config

import "testing"

// TestDefaults verifies default values when no environment variables are set.
func TestDefaults(t *testing.T) {
	for _, key := range []string{
		"SERP_API_KEY", "NEWS_API_KEY", "JSEARCH_API_KEY", "JSEARCH_API_HOST",
		"LLM_MODEL", "EMBEDDING_MODEL", "KNOWLEDGE_BASE_PATH", "VECTOR_DB_PATH",
		"CACHE_DIR", "ASHA_PORT", "ASHA_MCP_PORT", "ASHA_API_TOKEN",
		"ASHA_MAX_TOOLS", "ASHA_MIN_SCORE", "DEBUG",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Search.SerpAPIKey != "" {
		t.Errorf("Search.SerpAPIKey = %q, want empty", cfg.Search.SerpAPIKey)
	}
	if cfg.Jobs.Host != "jsearch.p.rapidapi.com" {
		t.Errorf("Jobs.Host = %q, want default host", cfg.Jobs.Host)
	}
	if cfg.Model.LLMModel != "gpt2" {
		t.Errorf("Model.LLMModel = %q, want %q", cfg.Model.LLMModel, "gpt2")
	}
	if cfg.Paths.KnowledgeDir != "data/knowledge_base" {
		t.Errorf("Paths.KnowledgeDir = %q, want default", cfg.Paths.KnowledgeDir)
	}
	if cfg.Server.Port != 4800 {
		t.Errorf("Server.Port = %d, want 4800", cfg.Server.Port)
	}
	if cfg.Selection.MaxToolsPerQuery != 3 {
		t.Errorf("Selection.MaxToolsPerQuery = %d, want 3", cfg.Selection.MaxToolsPerQuery)
	}
	if cfg.Selection.MinSimilarityScore != 0.05 {
		t.Errorf("Selection.MinSimilarityScore = %g, want 0.05", cfg.Selection.MinSimilarityScore)
	}
	if cfg.Debug {
		t.Error("Debug = true, want false")
	}
}

// TestEnvOverrides verifies that environment variables override defaults.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERP_API_KEY", "serp-key")
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("KNOWLEDGE_BASE_PATH", "/tmp/kb")
	t.Setenv("CACHE_DIR", "/tmp/cache")
	t.Setenv("ASHA_PORT", "9000")
	t.Setenv("ASHA_MAX_TOOLS", "5")
	t.Setenv("ASHA_MIN_SCORE", "0.2")
	t.Setenv("ASHA_API_TOKEN", "token")
	t.Setenv("DEBUG", "1")

	cfg := Load()

	if cfg.Search.SerpAPIKey != "serp-key" {
		t.Errorf("Search.SerpAPIKey = %q, want %q", cfg.Search.SerpAPIKey, "serp-key")
	}
	if cfg.Search.NewsAPIKey != "news-key" {
		t.Errorf("Search.NewsAPIKey = %q, want %q", cfg.Search.NewsAPIKey, "news-key")
	}
	if cfg.Paths.KnowledgeDir != "/tmp/kb" {
		t.Errorf("Paths.KnowledgeDir = %q, want %q", cfg.Paths.KnowledgeDir, "/tmp/kb")
	}
	if cfg.Paths.CacheDir != "/tmp/cache" {
		t.Errorf("Paths.CacheDir = %q, want %q", cfg.Paths.CacheDir, "/tmp/cache")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Selection.MaxToolsPerQuery != 5 {
		t.Errorf("Selection.MaxToolsPerQuery = %d, want 5", cfg.Selection.MaxToolsPerQuery)
	}
	if cfg.Selection.MinSimilarityScore != 0.2 {
		t.Errorf("Selection.MinSimilarityScore = %g, want 0.2", cfg.Selection.MinSimilarityScore)
	}
	if cfg.Server.APIToken != "token" {
		t.Errorf("Server.APIToken = %q, want %q", cfg.Server.APIToken, "token")
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

// TestMalformedNumbersIgnored verifies that unparseable numeric overrides
// leave the defaults in place.
func TestMalformedNumbersIgnored(t *testing.T) {
	t.Setenv("ASHA_PORT", "not-a-port")
	t.Setenv("ASHA_MIN_SCORE", "lots")

	cfg := Load()

	if cfg.Server.Port != 4800 {
		t.Errorf("Server.Port = %d, want default 4800", cfg.Server.Port)
	}
	if cfg.Selection.MinSimilarityScore != 0.05 {
		t.Errorf("Selection.MinSimilarityScore = %g, want default 0.05", cfg.Selection.MinSimilarityScore)
	}
}
