package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const healthTimeout = 5 * time.Second

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the health check body
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler handles GET /health
func HealthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Health check failed")
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
	}
}
