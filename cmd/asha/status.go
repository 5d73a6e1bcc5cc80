package main

import (
	"github.com/spf13/cobra"

	"github.com/asha-ai/asha/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show asha server status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		client := newAPIClient(cfg)

		resp, err := client.get(cmd.Context(), "/healthz")
		if err != nil {
			printStatus("Server", "stopped")
			return nil
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
			return nil
		}
		printStatus("Server", "running on port %d", cfg.Server.Port)

		toolsResp, err := client.get(cmd.Context(), "/tools")
		if err == nil {
			var payload struct {
				Tools []struct {
					Name string `json:"name"`
				} `json:"tools"`
			}
			if decodeJSON(toolsResp, &payload) == nil {
				printStatus("Tools", "%d registered", len(payload.Tools))
			}
		}

		printStatus("Knowledge dir", "%s", cfg.Paths.KnowledgeDir)
		printStatus("Cache dir", "%s", cfg.Paths.CacheDir)
		printStatus("Model", "%s", cfg.Model.LLMModel)
		return nil
	},
}
