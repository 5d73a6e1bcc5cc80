package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/asha-ai/asha/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and MCP servers (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	fmt.Fprintf(os.Stderr, "asha version %s\n", version)

	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := api.NewAppHandler(api.AppDeps{
		Orchestrator: a.orch,
		Registry:     a.registry,
		Token:        a.cfg.Server.APIToken,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", a.cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Orchestrator: a.orch,
		Registry:     a.registry,
		Listings:     a.listings,
	})
	mcpAddr := fmt.Sprintf("127.0.0.1:%d", a.cfg.Server.MCPPort)
	sseSrv := server.NewSSEServer(mcpSrv)

	errCh := make(chan error, 2)
	go func() {
		fmt.Fprintf(os.Stderr, "asha listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		fmt.Fprintf(os.Stderr, "asha mcp listening on %s\n", mcpAddr)
		if err := sseSrv.Start(mcpAddr); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("mcp server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sseSrv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: mcp shutdown: %v\n", err)
	}
	return srv.Shutdown(shutdownCtx)
}
