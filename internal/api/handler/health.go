package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports service and store health. A store outage degrades
// the report; it never crashes the process once startup has succeeded.
type HealthHandler struct {
	db      *mongo.Database
	started time.Time
}

func NewHealthHandler(db *mongo.Database) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Status handles GET /api/health.
func (h *HealthHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status, database := "ok", "connected"
	code := http.StatusOK
	if h.db == nil || h.db.Client().Ping(ctx, nil) != nil {
		status, database = "degraded", "disconnected"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, healthResponse{
		Status:    status,
		Database:  database,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	})
}
