package handlers

import (
	"context"
	"net/http"
	"time"

	"notable/internal/caching"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db    Pinger
	cache caching.CacheService
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db Pinger, cache caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck reports database and cache connectivity. The cache is
// best-effort, so a down Redis degrades the report without failing it.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cache.Ping(ctx); err != nil {
		health.Services["cache"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["cache"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, health)
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Only the database is critical.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if err := h.db.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
