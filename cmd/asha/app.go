package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/asha-ai/asha/internal/cache"
	"github.com/asha-ai/asha/internal/config"
	"github.com/asha-ai/asha/internal/knowledge"
	"github.com/asha-ai/asha/internal/orchestrator"
	"github.com/asha-ai/asha/internal/search"
	"github.com/asha-ai/asha/internal/tool"
	"github.com/asha-ai/asha/internal/tools"
	"github.com/asha-ai/asha/internal/vectorstore"
)

// app wires the full pipeline for both the REPL and the servers.
type app struct {
	cfg      config.Config
	registry *tool.Registry
	orch     *orchestrator.Orchestrator
	listings *tools.ListingsClient
	logLevel *slog.LevelVar
}

func newApp() (*app, error) {
	cfg := config.Load()
	if modelFlag != "" {
		cfg.Model.LLMModel = modelFlag
	}
	if debugFlag {
		cfg.Debug = true
	}

	logLevel := new(slog.LevelVar)
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	searchClient := search.New(
		cfg.Search.SerpAPIKey,
		cfg.Search.NewsAPIKey,
		cache.NewStore(filepath.Join(cfg.Paths.CacheDir, "web_search")),
	)

	kb, err := knowledge.New(cfg.Paths.KnowledgeDir, searchClient)
	if err != nil {
		return nil, fmt.Errorf("initializing knowledge base: %w", err)
	}

	vectors := vectorstore.Open(cfg.Paths.VectorDBPath)

	registry := tool.NewRegistry()
	tools.RegisterAll(registry, searchClient, cfg.Paths.CacheDir, vectors)

	orch := orchestrator.New(registry, kb, orchestrator.Options{
		MaxToolsPerQuery:   cfg.Selection.MaxToolsPerQuery,
		MinSimilarityScore: cfg.Selection.MinSimilarityScore,
		Debug:              cfg.Debug,
	})

	return &app{
		cfg:      cfg,
		registry: registry,
		orch:     orch,
		listings: tools.NewListingsClient(cfg.Jobs.APIKey, cfg.Jobs.Host),
		logLevel: logLevel,
	}, nil
}

// toggleDebug flips the log level and reports whether debug is now on.
func (a *app) toggleDebug() bool {
	if a.logLevel.Level() == slog.LevelDebug {
		a.logLevel.Set(slog.LevelInfo)
		return false
	}
	a.logLevel.Set(slog.LevelDebug)
	return true
}
