// Package api provides HTTP handlers for the movie catalog.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/db"
	"github.com/cinelake/cinelake/internal/dbpool"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	pool      *dbpool.Pool
	predictor PredictService
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
func NewHealthHandler(pool *dbpool.Pool, predictor PredictService, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		pool:      pool,
		predictor: predictor,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	SchemaVersion int     `json:"schema_version"`
	Database      string  `json:"database"`
	Predictor     string  `json:"predictor"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Liveness handles GET /api/v1/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		SchemaVersion: db.SchemaVersion(),
		Database:      "connected",
		Predictor:     "not_loaded",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	} else {
		resp.Database = "not_configured"
	}

	if h.predictor != nil && h.predictor.Ready() {
		resp.Predictor = "ready"
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready. Only the database gates
// readiness; a missing prediction model degrades one endpoint, not the
// whole service.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"database":  "ok",
		"schema":    "ok",
		"predictor": "ok",
	}
	status := "ready"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.pool == nil {
		checks["database"] = "not configured"
		status = "not_ready"
	} else if err := h.pool.HealthCheck(ctx); err != nil {
		checks["database"] = err.Error()
		status = "not_ready"
	}

	if status == "ready" {
		var count int
		err := h.pool.QueryRow(ctx,
			`SELECT count(*) FROM information_schema.tables
			 WHERE table_schema = 'public' AND table_name = 'movies'`).Scan(&count)
		if err != nil || count == 0 {
			checks["schema"] = "movies table missing, run migrations"
			status = "not_ready"
		}
	}

	if h.predictor == nil || !h.predictor.Ready() {
		checks["predictor"] = "model not loaded"
	}

	code := http.StatusOK
	if status != "ready" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, readinessResponse{Status: status, Checks: checks})
}
