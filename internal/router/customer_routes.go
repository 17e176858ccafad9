package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Edonabdullahu1/city-sub003/internal/handler"
)

// RegisterBookings registers the customer booking endpoints.  They do not
// require a JWT: the reservation code in the path is what authorises
// reading, confirming and cancelling a booking.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/api/bookings", limit)
	g.POST("", h.Create)
	g.GET("/:code", h.Get)
	g.POST("/:code/confirm", h.Confirm)
	g.DELETE("/:code", h.Cancel)
}
