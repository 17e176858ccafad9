// Package service wires the pricing engine to storage, caching and
// domain events.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Edonabdullahu1/city-sub003/internal/cache"
	"github.com/Edonabdullahu1/city-sub003/internal/config"
	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/pricing"
	"github.com/Edonabdullahu1/city-sub003/internal/queue"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
)

type PackageStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Package, error)
	GetBySlug(ctx context.Context, slug string) (*model.Package, error)
	ListActiveIDs(ctx context.Context) ([]uint64, error)
}

type FlightStore interface {
	GetFlight(ctx context.Context, id uint64) (*model.Flight, error)
	ListBlocksForPackage(ctx context.Context, packageID uint64) ([]model.FlightBlock, error)
}

type HotelStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Hotel, error)
	ListByIDs(ctx context.Context, ids []uint64) ([]model.Hotel, error)
	RatesForHotels(ctx context.Context, ids []uint64) (map[uint64][]model.HotelRate, error)
	RatesForHotel(ctx context.Context, hotelID uint64) ([]model.HotelRate, error)
}

type PriceStore interface {
	ReplaceForPackage(ctx context.Context, packageID uint64, rows []model.PackagePrice) error
	ListByPackage(ctx context.Context, packageID uint64) ([]model.PackagePrice, error)
}

// PriceService builds, stores and serves package price matrices, and
// prices single combinations on demand with the same engine.
type PriceService struct {
	packages PackageStore
	flights  FlightStore
	hotels   HotelStore
	prices   PriceStore
	cache    cache.MatrixCache
	events   queue.Publisher
	log      logrus.FieldLogger
	cfg      config.PricingConfig
	now      func() time.Time
}

func NewPriceService(
	packages PackageStore,
	flights FlightStore,
	hotels HotelStore,
	prices PriceStore,
	mc cache.MatrixCache,
	events queue.Publisher,
	log logrus.FieldLogger,
	cfg config.PricingConfig,
) *PriceService {
	if mc == nil {
		mc = cache.NewNoOpCache()
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &PriceService{
		packages: packages,
		flights:  flights,
		hotels:   hotels,
		prices:   prices,
		cache:    mc,
		events:   events,
		log:      log.WithField("component", "price-service"),
		cfg:      cfg,
		now:      time.Now,
	}
}

// RecalcSummary reports the outcome of one matrix rebuild.
type RecalcSummary struct {
	PackageID    uint64         `json:"package_id"`
	Rows         int            `json:"rows"`
	Skipped      []pricing.Skip `json:"skipped"`
	Fallback     bool           `json:"fallback"`
	CalculatedAt time.Time      `json:"calculated_at"`
}

// Recalculate rebuilds the matrix of one package and replaces the stored
// rows in a single transaction.  Skipped combinations are reported, not
// treated as errors.
func (s *PriceService) Recalculate(ctx context.Context, packageID uint64) (*RecalcSummary, error) {
	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	log := s.log.WithField("package_id", pkg.ID)

	opts, skips, err := s.flightOptions(ctx, pkg)
	if err != nil {
		return nil, err
	}
	hotels, err := s.hotels.ListByIDs(ctx, pkg.HotelIDs)
	if err != nil {
		return nil, fmt.Errorf("load hotels: %w", err)
	}
	skips = append(skips, missingHotels(pkg.HotelIDs, hotels)...)
	rates, err := s.hotels.RatesForHotels(ctx, pkg.HotelIDs)
	if err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}

	m := pricing.BuildMatrix(pricing.MatrixInput{
		Package: *pkg,
		Flights: opts,
		Hotels:  hotels,
		Rates:   rates,
	})
	if err := s.prices.ReplaceForPackage(ctx, pkg.ID, m.Rows); err != nil {
		return nil, fmt.Errorf("store matrix: %w", err)
	}

	sum := &RecalcSummary{
		PackageID:    pkg.ID,
		Rows:         len(m.Rows),
		Skipped:      append(skips, m.Skipped...),
		Fallback:     len(opts) == 1 && opts[0].Fares.Fallback,
		CalculatedAt: s.now().UTC(),
	}
	if sum.Skipped == nil {
		sum.Skipped = []pricing.Skip{}
	}
	if sum.Fallback {
		log.WithField("fallback_cents", s.cfg.FlightFallbackCents).Warn("package priced with fallback flight fare")
	}
	if err := s.cache.Invalidate(ctx, pkg.ID); err != nil {
		log.WithError(err).Warn("matrix cache invalidation failed")
	}
	log.WithFields(logrus.Fields{"rows": sum.Rows, "skipped": len(sum.Skipped)}).Info("price matrix rebuilt")

	if err := s.events.Publish(ctx, queue.PricesRecalculatedQueue, queue.PricesRecalculatedEvent{
		EventID:    uuid.NewString(),
		PackageID:  pkg.ID,
		Rows:       sum.Rows,
		Skipped:    len(sum.Skipped),
		Fallback:   sum.Fallback,
		OccurredAt: sum.CalculatedAt.Format(time.RFC3339),
	}); err != nil {
		log.WithError(err).Warn("publish prices.recalculated failed")
	}
	return sum, nil
}

// RecalculateAll rebuilds every active package.  A failing package does
// not stop the others; all failures are returned joined.
func (s *PriceService) RecalculateAll(ctx context.Context) ([]RecalcSummary, error) {
	ids, err := s.packages.ListActiveIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RecalcSummary, 0, len(ids))
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		sum, err := s.Recalculate(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("package_id", id).Error("recalculation failed")
			errs = append(errs, fmt.Errorf("package %d: %w", id, err))
			continue
		}
		out = append(out, *sum)
	}
	return out, errors.Join(errs...)
}

// Matrix returns the stored rows of a package, read through the cache.
func (s *PriceService) Matrix(ctx context.Context, packageID uint64) ([]model.PackagePrice, error) {
	if rows, ok := s.cache.Get(ctx, packageID); ok {
		return rows, nil
	}
	if _, err := s.packages.GetByID(ctx, packageID); err != nil {
		return nil, err
	}
	log := s.log.WithField("package_id", packageID)
	gen, genErr := s.cache.Generation(ctx, packageID)
	if genErr != nil {
		log.WithError(genErr).Warn("matrix cache generation read failed")
	}
	rows, err := s.prices.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return rows, nil
	}
	switch err := s.cache.Set(ctx, packageID, gen, rows); {
	case errors.Is(err, cache.ErrStale):
		log.Debug("matrix recalculated during read, not cached")
	case err != nil:
		log.WithError(err).Warn("matrix cache write failed")
	}
	return rows, nil
}

// PackageBySlug loads an active package together with its matrix.
func (s *PriceService) PackageBySlug(ctx context.Context, slug string) (*model.Package, []model.PackagePrice, error) {
	pkg, err := s.packages.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.Matrix(ctx, pkg.ID)
	if err != nil {
		return nil, nil, err
	}
	return pkg, rows, nil
}

// QuoteRequest prices one party on one hotel.  FlightBlockID selects a
// block; when nil the first available option is used.  CheckIn/CheckOut
// override the flight-derived stay for previews and must come together.
type QuoteRequest struct {
	PackageID     uint64
	FlightBlockID *uint64
	HotelID       uint64
	Occupancy     pricing.Occupancy
	CheckIn       *time.Time
	CheckOut      *time.Time
}

type QuoteResult struct {
	Package *model.Package
	Hotel   model.Hotel
	Rate    model.HotelRate
	Option  pricing.FlightOption
	Quote   pricing.Quote
}

// Quote prices a single combination in real time through the same
// calculation the matrix uses.
func (s *PriceService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if err := req.Occupancy.Validate(); err != nil {
		return nil, err
	}
	pkg, err := s.packages.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, repository.ErrPackageNotFound
	}
	if !slices.Contains(pkg.HotelIDs, req.HotelID) {
		in := pricing.NewInputError()
		in.Add("hotel_id", "hotel is not part of this package")
		return nil, in
	}

	switch {
	case req.CheckIn != nil && req.CheckOut == nil:
		in := pricing.NewInputError()
		in.Add("check_out", "required when check_in is given")
		return nil, in
	case req.CheckIn == nil && req.CheckOut != nil:
		in := pricing.NewInputError()
		in.Add("check_in", "required when check_out is given")
		return nil, in
	}

	opt, err := s.pickOption(ctx, pkg, req.FlightBlockID)
	if err != nil {
		return nil, err
	}
	if req.CheckIn != nil {
		stay, err := pricing.NewStay(*req.CheckIn, *req.CheckOut)
		if err != nil {
			in := pricing.NewInputError()
			in.Add("check_out", err.Error())
			return nil, in
		}
		opt.Stay = stay
	}

	hotel, err := s.hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		return nil, err
	}
	rates, err := s.hotels.RatesForHotel(ctx, req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}
	rate, ok := pricing.SelectRate(rates, hotel.ID, opt.Stay)
	if !ok {
		return nil, ErrNoRate
	}

	q, err := pricing.Calculate(pricing.QuoteInput{
		Fares:     opt.Fares,
		Rate:      rate,
		Stay:      opt.Stay,
		Occupancy: req.Occupancy,
		Params:    pricing.ParamsFromPackage(*pkg),
	})
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Package: pkg, Hotel: *hotel, Rate: rate, Option: opt, Quote: q}, nil
}

func (s *PriceService) pickOption(ctx context.Context, pkg *model.Package, blockID *uint64) (pricing.FlightOption, error) {
	opts, skips, err := s.flightOptions(ctx, pkg)
	if err != nil {
		return pricing.FlightOption{}, err
	}
	if blockID == nil {
		if len(opts) == 0 {
			if pricing.SoldOut(skips, nil) {
				return pricing.FlightOption{}, ErrSoldOut
			}
			return pricing.FlightOption{}, ErrNoFlightOption
		}
		return opts[0], nil
	}
	for _, o := range opts {
		if o.BlockID != nil && *o.BlockID == *blockID {
			return o, nil
		}
	}
	if pricing.SoldOut(skips, blockID) {
		return pricing.FlightOption{}, ErrSoldOut
	}
	return pricing.FlightOption{}, repository.ErrFlightBlockNotFound
}

// flightOptions gathers the ways a package can be flown: its active
// blocks, else the default pair, else the fallback fare.  Sold-out blocks
// come back as skips.
func (s *PriceService) flightOptions(ctx context.Context, pkg *model.Package) ([]pricing.FlightOption, []pricing.Skip, error) {
	blocks, err := s.flights.ListBlocksForPackage(ctx, pkg.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load flight blocks: %w", err)
	}
	src := pricing.FlightSource{
		Blocks:        blocks,
		FallbackCents: s.cfg.FlightFallbackCents,
		FallbackFrom:  pkg.DepartureDate,
		FallbackTo:    pkg.ReturnDate,
	}
	if len(blocks) == 0 && pkg.DefaultOutboundFlightID != nil && pkg.DefaultReturnFlightID != nil {
		out, err := s.flights.GetFlight(ctx, *pkg.DefaultOutboundFlightID)
		if err != nil {
			return nil, nil, fmt.Errorf("default outbound flight: %w", err)
		}
		ret, err := s.flights.GetFlight(ctx, *pkg.DefaultReturnFlightID)
		if err != nil {
			return nil, nil, fmt.Errorf("default return flight: %w", err)
		}
		src.DefaultPair = &pricing.FlightPair{Outbound: *out, Return: *ret}
	}
	opts, skips := pricing.FlightOptions(src)
	return opts, skips, nil
}

func missingHotels(ids []uint64, found []model.Hotel) []pricing.Skip {
	var out []pricing.Skip
	for _, id := range ids {
		if !slices.ContainsFunc(found, func(h model.Hotel) bool { return h.ID == id }) {
			out = append(out, pricing.Skip{HotelID: id, Reason: "hotel not found"})
		}
	}
	return out
}
