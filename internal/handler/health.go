package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the process and its database are up.
type HealthHandler struct {
	DB Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler { return &HealthHandler{DB: db} }

// Health handles GET /healthz.
func (h *HealthHandler) Health(c echo.Context) error {
	if h.DB == nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "db": "unreachable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "db": "ok"})
}
