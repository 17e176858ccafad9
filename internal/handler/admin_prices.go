package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AdminPriceHandler lets staff rebuild and inspect price matrices.
type AdminPriceHandler struct {
	Prices PriceEngine
	Log    logrus.FieldLogger
}

func NewAdminPriceHandler(p PriceEngine, log logrus.FieldLogger) *AdminPriceHandler {
	return &AdminPriceHandler{Prices: p, Log: log}
}

// Calculate handles POST /api/admin/packages/:id/calculate-prices.
func (h *AdminPriceHandler) Calculate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()
	sum, err := h.Prices.Recalculate(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, sum)
}

// Get handles GET /api/admin/packages/:id/calculate-prices.
func (h *AdminPriceHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	rows, err := h.Prices.Matrix(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"package_id": id, "rows": len(rows), "prices": priceRows(rows)})
}

// RecalculateAll handles POST /api/admin/packages/recalculate-all.
// Per-package failures are logged and listed; the others still commit.
func (h *AdminPriceHandler) RecalculateAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Minute)
	defer cancel()
	sums, err := h.Prices.RecalculateAll(ctx)
	if err != nil && sums == nil {
		return writeError(c, h.Log, err)
	}
	resp := echo.Map{"packages": sums, "recalculated": len(sums)}
	if err != nil {
		h.Log.WithError(err).Warn("recalculate-all finished with errors")
		resp["error"] = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
