package config

import (
	"os"
	"strconv"
)

type Config struct {
	Search    SearchConfig
	Jobs      JobsConfig
	Model     ModelConfig
	Paths     PathsConfig
	Server    ServerConfig
	Selection SelectionConfig
	Debug     bool
}

// SearchConfig holds credentials for the two web-search providers.
// A missing key disables that provider.
type SearchConfig struct {
	SerpAPIKey string
	NewsAPIKey string
}

// JobsConfig holds the job-listing provider credential and host header.
type JobsConfig struct {
	APIKey string
	Host   string
}

// ModelConfig carries the reserved model identifiers. Neither is consumed by
// the core pipeline; they are accepted so front-ends can pass them through.
type ModelConfig struct {
	LLMModel       string
	EmbeddingModel string
}

type PathsConfig struct {
	KnowledgeDir string
	VectorDBPath string
	CacheDir     string
}

type ServerConfig struct {
	Port     int
	MCPPort  int
	APIToken string // optional bearer token for the HTTP API
}

// SelectionConfig tunes the orchestrator's tool selection.
type SelectionConfig struct {
	MaxToolsPerQuery   int
	MinSimilarityScore float64
}

func defaults() Config {
	return Config{
		Jobs: JobsConfig{
			Host: "jsearch.p.rapidapi.com",
		},
		Model: ModelConfig{
			LLMModel:       "gpt2",
			EmbeddingModel: "all-MiniLM-L6-v2",
		},
		Paths: PathsConfig{
			KnowledgeDir: "data/knowledge_base",
			VectorDBPath: "data/vector_db/store.json",
			CacheDir:     "data/cache",
		},
		Server: ServerConfig{
			Port:    4800,
			MCPPort: 4801,
		},
		Selection: SelectionConfig{
			MaxToolsPerQuery:   3,
			MinSimilarityScore: 0.05,
		},
	}
}

// Load reads configuration from environment variables on top of defaults.
// Provider credentials are optional: a missing key downgrades that provider
// to a no-op rather than failing startup.
func Load() Config {
	cfg := defaults()

	setString(&cfg.Search.SerpAPIKey, "SERP_API_KEY")
	setString(&cfg.Search.NewsAPIKey, "NEWS_API_KEY")
	setString(&cfg.Jobs.APIKey, "JSEARCH_API_KEY")
	setString(&cfg.Jobs.Host, "JSEARCH_API_HOST")
	setString(&cfg.Model.LLMModel, "LLM_MODEL")
	setString(&cfg.Model.EmbeddingModel, "EMBEDDING_MODEL")
	setString(&cfg.Paths.KnowledgeDir, "KNOWLEDGE_BASE_PATH")
	setString(&cfg.Paths.VectorDBPath, "VECTOR_DB_PATH")
	setString(&cfg.Paths.CacheDir, "CACHE_DIR")
	setInt(&cfg.Server.Port, "ASHA_PORT")
	setInt(&cfg.Server.MCPPort, "ASHA_MCP_PORT")
	setString(&cfg.Server.APIToken, "ASHA_API_TOKEN")
	setInt(&cfg.Selection.MaxToolsPerQuery, "ASHA_MAX_TOOLS")
	setFloat(&cfg.Selection.MinSimilarityScore, "ASHA_MIN_SCORE")

	if os.Getenv("DEBUG") != "" {
		cfg.Debug = true
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
