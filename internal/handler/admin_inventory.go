package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/pricing"
)

type HotelAdmin interface {
	GetByID(ctx context.Context, id uint64) (*model.Hotel, error)
	RatesForHotel(ctx context.Context, hotelID uint64) ([]model.HotelRate, error)
	CreateRate(ctx context.Context, rate *model.HotelRate) error
	DeleteRate(ctx context.Context, id uint64) (uint64, error)
}

type FlightAdmin interface {
	GetFlight(ctx context.Context, id uint64) (*model.Flight, error)
	CreateBlock(ctx context.Context, b *model.FlightBlock) error
}

type PackageLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.Package, error)
}

// InventoryHandler manages the inputs of the price engine: hotel rate
// sheets and flight blocks.
type InventoryHandler struct {
	Hotels   HotelAdmin
	Flights  FlightAdmin
	Packages PackageLookup
	Prices   PriceEngine
	Log      logrus.FieldLogger
}

func NewInventoryHandler(h HotelAdmin, f FlightAdmin, p PackageLookup, prices PriceEngine, log logrus.FieldLogger) *InventoryHandler {
	return &InventoryHandler{Hotels: h, Flights: f, Packages: p, Prices: prices, Log: log}
}

// ListRates handles GET /api/admin/hotels/:id/rates.
func (h *InventoryHandler) ListRates(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByID(ctx, id); err != nil {
		return writeError(c, h.Log, err)
	}
	rates, err := h.Hotels.RatesForHotel(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if rates == nil {
		rates = []model.HotelRate{}
	}
	return c.JSON(http.StatusOK, echo.Map{"hotel_id": id, "rates": rates})
}

type rateReq struct {
	ValidFrom     string `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidTo       string `json:"valid_to" validate:"required,datetime=2006-01-02"`
	SingleCents   int64  `json:"single_cents" validate:"min=0"`
	DoubleCents   int64  `json:"double_cents" validate:"min=0"`
	ExtraBedCents int64  `json:"extra_bed_cents" validate:"min=0"`
	ChildCents    int64  `json:"child_cents" validate:"min=0"`
	ChildAgeMin   int    `json:"child_age_min" validate:"min=0,max=17"`
	ChildAgeMax   int    `json:"child_age_max" validate:"min=0,max=17,gtefield=ChildAgeMin"`
	Board         string `json:"board" validate:"required,max=16"`
}

// CreateRate handles POST /api/admin/hotels/:id/rates.  Matrices are not
// rebuilt automatically; staff recalculate the affected packages.
func (h *InventoryHandler) CreateRate(c echo.Context) error {
	hotelID, err := parseID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var req rateReq
	if err := bind(c, &req); err != nil {
		return writeError(c, h.Log, err)
	}
	in := pricing.NewInputError()
	from := parseDay(in, "valid_from", req.ValidFrom)
	to := parseDay(in, "valid_to", req.ValidTo)
	if from != nil && to != nil && to.Before(*from) {
		in.Add("valid_to", "must not be before valid_from")
	}
	if err := in.Err(); err != nil {
		return writeError(c, h.Log, err)
	}

	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
		return writeError(c, h.Log, err)
	}
	rate := &model.HotelRate{
		HotelID:       hotelID,
		ValidFrom:     *from,
		ValidTo:       *to,
		SingleCents:   req.SingleCents,
		DoubleCents:   req.DoubleCents,
		ExtraBedCents: req.ExtraBedCents,
		ChildCents:    req.ChildCents,
		ChildAgeMin:   req.ChildAgeMin,
		ChildAgeMax:   req.ChildAgeMax,
		Board:         strings.ToUpper(strings.TrimSpace(req.Board)),
	}
	if err := h.Hotels.CreateRate(ctx, rate); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, rate)
}

// DeleteRate handles DELETE /api/admin/rates/:id.
func (h *InventoryHandler) DeleteRate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	hotelID, err := h.Hotels.DeleteRate(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id, "hotel_id": hotelID})
}

type flightBlockReq struct {
	PackageID        uint64 `json:"package_id" validate:"required"`
	BlockGroupID     string `json:"block_group_id" validate:"required,max=64"`
	OutboundFlightID uint64 `json:"outbound_flight_id" validate:"required"`
	ReturnFlightID   uint64 `json:"return_flight_id" validate:"required,nefield=OutboundFlightID"`
}

// CreateFlightBlock handles POST /api/admin/flight-blocks.  The block's
// package is recalculated right away so the new dates show up in search.
func (h *InventoryHandler) CreateFlightBlock(c echo.Context) error {
	var req flightBlockReq
	if err := bind(c, &req); err != nil {
		return writeError(c, h.Log, err)
	}
	ctx := c.Request().Context()
	if _, err := h.Packages.GetByID(ctx, req.PackageID); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Flights.GetFlight(ctx, req.OutboundFlightID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	ret, err := h.Flights.GetFlight(ctx, req.ReturnFlightID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if _, err := pricing.StayFromFlights(*out, *ret); err != nil {
		in := pricing.NewInputError()
		in.Add("return_flight_id", "return must depart at least one night after the outbound arrives")
		return writeError(c, h.Log, in)
	}

	b := &model.FlightBlock{
		BlockGroupID: strings.TrimSpace(req.BlockGroupID),
		PackageID:    req.PackageID,
		Outbound:     *out,
		Return:       *ret,
		IsActive:     true,
	}
	if err := h.Flights.CreateBlock(ctx, b); err != nil {
		return writeError(c, h.Log, err)
	}
	resp := echo.Map{"flight_block": b}
	sum, err := h.Prices.Recalculate(ctx, req.PackageID)
	if err != nil {
		h.Log.WithError(err).WithField("package_id", req.PackageID).Warn("recalculation after new block failed")
	} else {
		resp["recalculation"] = sum
	}
	return c.JSON(http.StatusCreated, resp)
}
