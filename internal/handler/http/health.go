package http

import (
	"GoLinks-Backend/internal/repository"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler serves liveness information.
type HealthHandler struct {
	links repository.LinkStore
	log   *zap.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(links repository.LinkStore, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		links: links,
		log:   log,
	}
}

// HealthResponse is the health check reply.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	DatabaseStatus string    `json:"database_status"`
	Uptime         string    `json:"uptime,omitempty"`
}

var startTime = time.Now()

// Health probes the backing store with a cheap lookup; any error other
// than "not found" means the store is unreachable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	_, err := h.links.GetLink(ctx, "health-check-non-existent")
	if err != nil && !errors.Is(err, repository.ErrKeywordNotFound) {
		dbStatus = "unhealthy"
		h.log.Error("database health check failed", zap.Error(err))
	}

	status := "healthy"
	statusCode := http.StatusOK
	if dbStatus == "unhealthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, HealthResponse{
		Status:         status,
		Timestamp:      time.Now(),
		DatabaseStatus: dbStatus,
		Uptime:         time.Since(startTime).String(),
	}, statusCode)
}
