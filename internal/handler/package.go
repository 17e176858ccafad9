package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/pricing"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
	"github.com/Edonabdullahu1/city-sub003/internal/service"
)

// PriceEngine is the pricing surface used by the HTTP layer.
// *service.PriceService implements it.
type PriceEngine interface {
	Recalculate(ctx context.Context, packageID uint64) (*service.RecalcSummary, error)
	RecalculateAll(ctx context.Context) ([]service.RecalcSummary, error)
	Matrix(ctx context.Context, packageID uint64) ([]model.PackagePrice, error)
	PackageBySlug(ctx context.Context, slug string) (*model.Package, []model.PackagePrice, error)
	Quote(ctx context.Context, req service.QuoteRequest) (*service.QuoteResult, error)
}

type PackageSearcher interface {
	Search(ctx context.Context, q repository.PackageSearchQuery) ([]repository.PackageSearchRow, int64, error)
}

// PackageHandler serves the customer-facing package endpoints.
type PackageHandler struct {
	Packages PackageSearcher
	Prices   PriceEngine
	Log      logrus.FieldLogger
}

func NewPackageHandler(packages PackageSearcher, prices PriceEngine, log logrus.FieldLogger) *PackageHandler {
	return &PackageHandler{Packages: packages, Prices: prices, Log: log}
}

type searchItem struct {
	repository.PackageSearchRow
	FromEUR string `json:"from_eur"`
}

// Search handles GET /api/packages/search.  Results come from the stored
// price matrix: the cheapest row for the requested party per package.
func (h *PackageHandler) Search(c echo.Context) error {
	q := repository.PackageSearchQuery{Adults: 2, Page: 1, PageSize: 20}
	err := echo.QueryParamsBinder(c).
		String("destination", &q.Destination).
		Int("adults", &q.Adults).
		Int("children", &q.Children).
		Int64("max_price", &q.MaxPriceCents).
		Int("page", &q.Page).
		Int("page_size", &q.PageSize).
		BindError()
	if err != nil {
		in := pricing.NewInputError()
		in.Add("query", "invalid query parameters")
		return writeError(c, h.Log, in)
	}
	q.Destination = strings.TrimSpace(q.Destination)

	in := pricing.NewInputError()
	if q.Adults < 1 || q.Adults > pricing.MaxAdultsPerRoom {
		in.Add("adults", "must be between 1 and 3")
	}
	if q.Children < 0 {
		in.Add("children", "must not be negative")
	}
	if err := in.Err(); err != nil {
		return writeError(c, h.Log, err)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	rows, total, err := h.Packages.Search(c.Request().Context(), q)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	items := make([]searchItem, len(rows))
	for i, r := range rows {
		items[i] = searchItem{PackageSearchRow: r, FromEUR: eur(r.FromCents)}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      items,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

type priceRow struct {
	model.PackagePrice
	TotalEUR string `json:"total_eur"`
}

func priceRows(rows []model.PackagePrice) []priceRow {
	out := make([]priceRow, len(rows))
	for i, r := range rows {
		out[i] = priceRow{PackagePrice: r, TotalEUR: eur(r.TotalPriceCents)}
	}
	return out
}

// GetBySlug handles GET /api/public/packages/:slug.
func (h *PackageHandler) GetBySlug(c echo.Context) error {
	pkg, rows, err := h.Prices.PackageBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"package": pkg, "prices": priceRows(rows)})
}

type quoteReq struct {
	partyReq
	FlightBlockID *uint64 `json:"flight_block_id"`
	HotelID       uint64  `json:"hotel_id" validate:"required"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
}

type quoteResp struct {
	PackageID     uint64        `json:"package_id"`
	HotelID       uint64        `json:"hotel_id"`
	HotelName     string        `json:"hotel_name"`
	Board         string        `json:"board"`
	FlightBlockID *uint64       `json:"flight_block_id"`
	Fallback      bool          `json:"flight_fallback"`
	Quote         pricing.Quote `json:"quote"`
	TotalEUR      string        `json:"total_eur"`
}

func newQuoteResp(r *service.QuoteResult) quoteResp {
	return quoteResp{
		PackageID:     r.Package.ID,
		HotelID:       r.Hotel.ID,
		HotelName:     r.Hotel.Name,
		Board:         r.Rate.Board,
		FlightBlockID: r.Option.BlockID,
		Fallback:      r.Option.Fares.Fallback,
		Quote:         r.Quote,
		TotalEUR:      eur(r.Quote.TotalCents),
	}
}

// Quote handles POST /api/packages/:id/quote, a live price for one party.
func (h *PackageHandler) Quote(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var req quoteReq
	if err := bind(c, &req); err != nil {
		return writeError(c, h.Log, err)
	}
	in := pricing.NewInputError()
	checkIn := parseDay(in, "check_in", req.CheckIn)
	checkOut := parseDay(in, "check_out", req.CheckOut)
	if (checkIn == nil) != (checkOut == nil) && in.Empty() {
		in.Add("check_out", "check_in and check_out go together")
	}
	if err := in.Err(); err != nil {
		return writeError(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	res, err := h.Prices.Quote(ctx, service.QuoteRequest{
		PackageID:     id,
		FlightBlockID: req.FlightBlockID,
		HotelID:       req.HotelID,
		Occupancy:     req.occupancy(),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
	})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, newQuoteResp(res))
}
