// Package api exposes the advisory pipeline over HTTP and MCP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asha-ai/asha/internal/orchestrator"
	"github.com/asha-ai/asha/internal/tool"
)

const maxChatBodySize = 1 << 20 // 1MB

// QueryProcessor runs the advisory pipeline. Implemented by
// orchestrator.Orchestrator.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, query string) string
	History() []orchestrator.Turn
}

// AppDeps holds dependencies for the HTTP handler.
type AppDeps struct {
	Orchestrator QueryProcessor
	Registry     *tool.Registry
	Token        string // optional bearer token; empty disables auth
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewAppHandler builds the HTTP API. The health endpoint is always open;
// everything else sits behind BearerAuth when a token is configured.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))
		r.Post("/chat", handleChat(deps))
		r.Get("/tools", handleListTools(deps))
		r.Get("/history", handleHistory(deps))
	})

	return r
}

func handleChat(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxChatBodySize)
		defer r.Body.Close()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Message == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}

		reply := deps.Orchestrator.ProcessQuery(r.Context(), req.Message)
		writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
	}
}

func handleListTools(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		all := deps.Registry.All()
		infos := make([]toolInfo, len(all))
		for i, t := range all {
			infos[i] = toolInfo{Name: t.Name(), Description: t.Description()}
		}
		writeJSON(w, http.StatusOK, map[string]any{"tools": infos})
	}
}

func handleHistory(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"history": deps.Orchestrator.History()})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
