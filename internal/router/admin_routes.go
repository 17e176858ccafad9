package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Edonabdullahu1/city-sub003/internal/handler"
	"github.com/Edonabdullahu1/city-sub003/internal/middleware"
	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// AdminHandlers groups the staff-facing handlers.
type AdminHandlers struct {
	Prices    *handler.AdminPriceHandler
	Inventory *handler.InventoryHandler
	Bookings  *handler.BookingHandler
}

// RegisterAdmin registers staff endpoints under /api/admin.  Every route
// needs a JWT with the ADMIN or AGENT role; recalculating every package
// is ADMIN only.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleAgent),
	)

	// ---- Price matrix ----
	g.POST("/packages/:id/calculate-prices", h.Prices.Calculate)
	g.GET("/packages/:id/calculate-prices", h.Prices.Get)
	g.POST("/packages/recalculate-all", h.Prices.RecalculateAll, middleware.RequireRole(model.RoleAdmin))

	// ---- Rates & flight blocks ----
	g.GET("/hotels/:id/rates", h.Inventory.ListRates)
	g.POST("/hotels/:id/rates", h.Inventory.CreateRate)
	g.DELETE("/rates/:id", h.Inventory.DeleteRate)
	g.POST("/flight-blocks", h.Inventory.CreateFlightBlock)

	// ---- Bookings ----
	g.GET("/bookings", h.Bookings.List)
	g.POST("/bookings/expire", h.Bookings.Expire)
	g.POST("/bookings/:code/pay", h.Bookings.MarkPaid)
}
