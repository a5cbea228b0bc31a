// Package handler provides HTTP handlers for all API endpoints.
// Handlers call straight into the simulator and the alert manager; there is
// no separate service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/comeback-scout/internal/alerts"
	"github.com/albapepper/comeback-scout/internal/api/respond"
	"github.com/albapepper/comeback-scout/internal/cache"
	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/roster"
	"github.com/albapepper/comeback-scout/internal/simulator"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	matches *simulator.Generator
	alerts  *alerts.Manager
	roster  *roster.Roster
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(gen *simulator.Generator, mgr *alerts.Manager, r *roster.Roster, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		matches: gen,
		alerts:  mgr,
		roster:  r,
		cache:   c,
		cfg:     cfg,
		logger:  logger,
	}
}

// MessageResponse is the body of the API root.
type MessageResponse struct {
	Message string `json:"message"`
}

// Root serves the API greeting at /api/.
// @Summary API root info
// @Description Returns a fixed greeting.
// @Tags meta
// @Produce json
// @Success 200 {object} handler.MessageResponse
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	data, etag, hit, err := h.cache.Fetch("root", cache.TTLRoot, func() ([]byte, error) {
		return json.Marshal(MessageResponse{Message: "Comeback Scout API"})
	})
	if err != nil {
		h.internalError(w, r, "Failed to encode root", err)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLRoot, hit)
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies alert storage connectivity.
// @Summary Storage health check
// @Description Verifies the alert store is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} respond.ErrorResponse
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.alerts.Ping(r.Context()); err != nil {
		h.logger.Warn("Storage health check failed", "error", err)
		respond.WriteErrorDetail(w, http.StatusServiceUnavailable, respond.CodeUnavailable,
			"Storage connection check failed", h.cfg.StorageDriver)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"storage":   h.cfg.StorageDriver,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "path", r.URL.Path, "error", err)
	respond.WriteError(w, http.StatusInternalServerError, respond.CodeInternal, msg)
}
