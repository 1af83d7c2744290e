// Package api provides HTTP API handlers for the NeighborFit API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/neighborfit/neighborfit/internal/middleware"
)

// HealthHandlers provides the liveness check endpoint.
type HealthHandlers struct{}

// NewHealthHandlers creates a new health check handler.
func NewHealthHandlers() *HealthHandlers {
	return &HealthHandlers{}
}

// HealthResponse represents the JSON response for health checks.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp string            `json:"timestamp"`
}

// Health handles GET /healthz (liveness probe).
// Returns 200 if the application is running and can serve requests.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, r.Context(), http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	// Liveness check is simple - if we can respond, we're alive
	response := HealthResponse{
		Status:    "healthy",
		Checks:    map[string]string{"runtime": "ok"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}
