package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/service"
)

// BookingFlow is implemented by *service.BookingService.
type BookingFlow interface {
	CreateSoft(ctx context.Context, in service.CreateBookingInput) (*model.Booking, *service.QuoteResult, error)
	Get(ctx context.Context, code string) (*model.Booking, error)
	Confirm(ctx context.Context, code string) (*model.Booking, error)
	MarkPaid(ctx context.Context, code string) (*model.Booking, error)
	Cancel(ctx context.Context, code string) (*model.Booking, error)
	List(ctx context.Context, status string, page, pageSize int) ([]model.Booking, int64, error)
	ExpireSoftBookings(ctx context.Context) (int, error)
}

// BookingHandler serves the soft-booking endpoints.  The reservation code
// is the only credential a customer needs for their own booking.
type BookingHandler struct {
	Bookings BookingFlow
	Log      logrus.FieldLogger
}

func NewBookingHandler(b BookingFlow, log logrus.FieldLogger) *BookingHandler {
	return &BookingHandler{Bookings: b, Log: log}
}

type createBookingReq struct {
	partyReq
	PackageID     uint64  `json:"package_id" validate:"required"`
	FlightBlockID *uint64 `json:"flight_block_id"`
	HotelID       uint64  `json:"hotel_id" validate:"required"`
	CustomerName  string  `json:"customer_name" validate:"required,max=120"`
	CustomerEmail string  `json:"customer_email" validate:"required,email,max=190"`
}

type bookingResp struct {
	*model.Booking
	TotalEUR string `json:"total_eur"`
}

func newBookingResp(b *model.Booking) bookingResp {
	return bookingResp{Booking: b, TotalEUR: eur(b.TotalAmountCents)}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := bind(c, &req); err != nil {
		return writeError(c, h.Log, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, qr, err := h.Bookings.CreateSoft(ctx, service.CreateBookingInput{
		PackageID:     req.PackageID,
		FlightBlockID: req.FlightBlockID,
		HotelID:       req.HotelID,
		Occupancy:     req.occupancy(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"booking": newBookingResp(b),
		"quote":   newQuoteResp(qr),
	})
}

// Get handles GET /api/bookings/:code.
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.Bookings.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, newBookingResp(b))
}

// Confirm handles POST /api/bookings/:code/confirm.
func (h *BookingHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.Bookings.Confirm)
}

// Cancel handles DELETE /api/bookings/:code.
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.Bookings.Cancel)
}

// MarkPaid handles POST /api/admin/bookings/:code/pay.
func (h *BookingHandler) MarkPaid(c echo.Context) error {
	return h.transition(c, h.Bookings.MarkPaid)
}

func (h *BookingHandler) transition(c echo.Context, fn func(context.Context, string) (*model.Booking, error)) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	b, err := fn(ctx, c.Param("code"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, newBookingResp(b))
}

// List handles GET /api/admin/bookings?status=&page=&page_size=.
func (h *BookingHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	items, total, err := h.Bookings.List(c.Request().Context(), c.QueryParam("status"), page, size)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items, "total": total, "page": page})
}

// Expire handles POST /api/admin/bookings/expire, running one sweep now.
func (h *BookingHandler) Expire(c echo.Context) error {
	n, err := h.Bookings.ExpireSoftBookings(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).WithField("expired", n).Warn("manual sweep finished with errors")
	}
	return c.JSON(http.StatusOK, echo.Map{"expired": n, "errors": err != nil})
}
