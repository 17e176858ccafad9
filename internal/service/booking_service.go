package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Edonabdullahu1/city-sub003/internal/config"
	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/pricing"
	"github.com/Edonabdullahu1/city-sub003/internal/queue"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
)

// Quoter prices one combination.  PriceService implements it.
type Quoter interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error)
}

// BookingService runs the soft-booking lifecycle.  Every status change is
// a conditional update inside a transaction together with the matching
// inventory change, so holds are taken and released exactly once.
type BookingService struct {
	db       *sql.DB
	bookings *repository.BookingRepo
	flights  *repository.FlightRepo
	hotels   *repository.HotelRepo
	quotes   Quoter
	events   queue.Publisher
	log      logrus.FieldLogger
	cfg      config.BookingConfig
	now      func() time.Time
	newCode  func() string
}

func NewBookingService(
	db *sql.DB,
	bookings *repository.BookingRepo,
	flights *repository.FlightRepo,
	hotels *repository.HotelRepo,
	quotes Quoter,
	events queue.Publisher,
	log logrus.FieldLogger,
	cfg config.BookingConfig,
) *BookingService {
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &BookingService{
		db:       db,
		bookings: bookings,
		flights:  flights,
		hotels:   hotels,
		quotes:   quotes,
		events:   events,
		log:      log.WithField("component", "booking-service"),
		cfg:      cfg,
		now:      time.Now,
		newCode:  NewReservationCode,
	}
}

// NewReservationCode returns "TRV-" followed by eight upper-case hex digits.
func NewReservationCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRV-" + strings.ToUpper(id[:8])
}

type CreateBookingInput struct {
	PackageID     uint64
	FlightBlockID *uint64
	HotelID       uint64
	Occupancy     pricing.Occupancy
	CustomerName  string
	CustomerEmail string
}

// CreateSoft prices the request and, in one transaction, takes seats on
// both flights and one room before inserting a SOFT booking that holds
// them until the hold TTL runs out.
func (s *BookingService) CreateSoft(ctx context.Context, in CreateBookingInput) (*model.Booking, *QuoteResult, error) {
	qr, err := s.quotes.Quote(ctx, QuoteRequest{
		PackageID:     in.PackageID,
		FlightBlockID: in.FlightBlockID,
		HotelID:       in.HotelID,
		Occupancy:     in.Occupancy,
	})
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	opt := qr.Option
	b := &model.Booking{
		ReservationCode:  s.newCode(),
		PackageID:        qr.Package.ID,
		FlightBlockID:    opt.BlockID,
		OutboundFlightID: opt.OutboundFlightID,
		ReturnFlightID:   opt.ReturnFlightID,
		HotelID:          qr.Hotel.ID,
		Adults:           in.Occupancy.Adults,
		Children:         len(in.Occupancy.ChildAges),
		ChildAges:        in.Occupancy.AgesKey(),
		RoomsHeld:        1,
		Status:           model.BookingSoft,
		TotalAmountCents: qr.Quote.TotalCents,
		CustomerName:     strings.TrimSpace(in.CustomerName),
		CustomerEmail:    strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		CheckIn:          opt.Stay.CheckIn,
		CheckOut:         opt.Stay.CheckOut,
		ExpiresAt:        now.Add(s.cfg.HoldTTL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if opt.OutboundFlightID != nil && opt.ReturnFlightID != nil {
		b.SeatsHeld = qr.Quote.Flight.SeatsNeeded
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if b.SeatsHeld > 0 {
			if err := s.flights.DecrementSeatsTx(ctx, tx, *b.OutboundFlightID, b.SeatsHeld); err != nil {
				return fmt.Errorf("outbound seats: %w", err)
			}
			if err := s.flights.DecrementSeatsTx(ctx, tx, *b.ReturnFlightID, b.SeatsHeld); err != nil {
				return fmt.Errorf("return seats: %w", err)
			}
		}
		if err := s.hotels.DecrementRoomsTx(ctx, tx, b.HotelID, b.RoomsHeld); err != nil {
			return fmt.Errorf("hotel rooms: %w", err)
		}
		return s.bookings.CreateTx(ctx, tx, b)
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{
		"code":       b.ReservationCode,
		"package_id": b.PackageID,
		"seats":      b.SeatsHeld,
		"total":      b.TotalAmountCents,
	}).Info("soft booking created")
	s.publish(ctx, queue.BookingSoftCreated, b)
	return b, qr, nil
}

func (s *BookingService) Get(ctx context.Context, code string) (*model.Booking, error) {
	return s.bookings.GetByCode(ctx, code)
}

// List pages through bookings, optionally filtered by status.
func (s *BookingService) List(ctx context.Context, status string, page, pageSize int) ([]model.Booking, int64, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", model.BookingSoft, model.BookingConfirmed, model.BookingPaid, model.BookingCancelled:
	default:
		in := pricing.NewInputError()
		in.Add("status", "must be one of SOFT, CONFIRMED, PAID, CANCELLED")
		return nil, 0, in
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookings.List(ctx, status, page, pageSize)
}

// Confirm moves a SOFT booking to CONFIRMED while its hold is running.
func (s *BookingService) Confirm(ctx context.Context, code string) (*model.Booking, error) {
	b, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if b.Status != model.BookingSoft {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
	}
	if !now.Before(b.ExpiresAt) {
		return nil, ErrBookingExpired
	}

	var ok bool
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err = s.bookings.ConfirmTx(ctx, tx, b.ID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race with the sweeper or a cancel
		return nil, ErrBookingExpired
	}
	b.Status = model.BookingConfirmed
	s.publish(ctx, queue.BookingConfirmed, b)
	return b, nil
}

// MarkPaid moves a CONFIRMED booking to PAID.
func (s *BookingService) MarkPaid(ctx context.Context, code string) (*model.Booking, error) {
	b, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	var ok bool
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err = s.bookings.MarkPaidTx(ctx, tx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, b.Status)
	}
	b.Status = model.BookingPaid
	s.publish(ctx, queue.BookingPaid, b)
	return b, nil
}

// Cancel cancels any booking that is not cancelled yet and gives its seats
// and room back.  Only the caller whose update flips the status releases
// inventory.
func (s *BookingService) Cancel(ctx context.Context, code string) (*model.Booking, error) {
	b, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !b.Active() {
		return nil, fmt.Errorf("%w: booking is already cancelled", ErrInvalidTransition)
	}
	var ok bool
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err = s.bookings.CancelTx(ctx, tx, b.ID)
		if err != nil || !ok {
			return err
		}
		return s.release(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: booking is already cancelled", ErrInvalidTransition)
	}
	b.Status = model.BookingCancelled
	s.publish(ctx, queue.BookingCancelled, b)
	return b, nil
}

// ExpireSoftBookings cancels one batch of SOFT bookings whose hold ended,
// releasing their inventory.  Each booking is handled in its own
// transaction; a booking already moved on by someone else is skipped.
// Safe to run concurrently from several instances.
func (s *BookingService) ExpireSoftBookings(ctx context.Context) (int, error) {
	now := s.now().UTC()
	due, err := s.bookings.ListExpiredSoft(ctx, now, s.cfg.SweepBatch)
	if err != nil {
		return 0, err
	}
	var (
		expired int
		errs    []error
	)
	for i := range due {
		b := &due[i]
		var ok bool
		err := s.inTx(ctx, func(tx *sql.Tx) error {
			var err error
			ok, err = s.bookings.ExpireTx(ctx, tx, b.ID, now)
			if err != nil || !ok {
				return err
			}
			return s.release(ctx, tx, b)
		})
		if err != nil {
			s.log.WithError(err).WithField("code", b.ReservationCode).Error("expire booking failed")
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		expired++
		b.Status = model.BookingCancelled
		s.publish(ctx, queue.BookingExpired, b)
	}
	if expired > 0 {
		s.log.WithField("expired", expired).Info("soft bookings expired")
	}
	return expired, errors.Join(errs...)
}

func (s *BookingService) release(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	if b.SeatsHeld > 0 && b.OutboundFlightID != nil && b.ReturnFlightID != nil {
		if err := s.flights.ReleaseSeatsTx(ctx, tx, *b.OutboundFlightID, b.SeatsHeld); err != nil {
			return fmt.Errorf("release outbound seats: %w", err)
		}
		if err := s.flights.ReleaseSeatsTx(ctx, tx, *b.ReturnFlightID, b.SeatsHeld); err != nil {
			return fmt.Errorf("release return seats: %w", err)
		}
	}
	if b.RoomsHeld > 0 {
		if err := s.hotels.ReleaseRoomsTx(ctx, tx, b.HotelID, b.RoomsHeld); err != nil {
			return fmt.Errorf("release rooms: %w", err)
		}
	}
	return nil
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (s *BookingService) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *BookingService) publish(ctx context.Context, typ string, b *model.Booking) {
	ev := queue.BookingEvent{
		EventID:          uuid.NewString(),
		Type:             typ,
		BookingID:        b.ID,
		ReservationCode:  b.ReservationCode,
		PackageID:        b.PackageID,
		HotelID:          b.HotelID,
		Status:           b.Status,
		Adults:           b.Adults,
		Children:         b.Children,
		TotalAmountCents: b.TotalAmountCents,
		CustomerEmail:    b.CustomerEmail,
		OccurredAt:       s.now().UTC().Format(time.RFC3339),
	}
	if b.Status == model.BookingSoft {
		ev.ExpiresAt = b.ExpiresAt.Format(time.RFC3339)
	}
	if err := s.events.Publish(ctx, queue.BookingEventsQueue, ev); err != nil {
		s.log.WithError(err).WithField("code", b.ReservationCode).Warn("publish booking event failed")
	}
}
