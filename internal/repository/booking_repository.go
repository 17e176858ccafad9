package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// BookingRepo provides data access to the bookings table.  Status changes
// are conditional updates: a transition that affects no row lost a race or
// was already applied, and the caller must not touch inventory.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the handle so services can open transactions spanning
// several repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, reservation_code, package_id, flight_block_id, outbound_flight_id, return_flight_id,
	hotel_id, adults, children, child_ages, seats_held, rooms_held, status, total_amount_cents,
	customer_name, customer_email, check_in, check_out, expires_at, created_at, updated_at`

func scanBooking(s rowScanner) (model.Booking, error) {
	var (
		b                  model.Booking
		block, out, retLeg sql.NullInt64
	)
	err := s.Scan(&b.ID, &b.ReservationCode, &b.PackageID, &block, &out, &retLeg,
		&b.HotelID, &b.Adults, &b.Children, &b.ChildAges, &b.SeatsHeld, &b.RoomsHeld, &b.Status,
		&b.TotalAmountCents, &b.CustomerName, &b.CustomerEmail, &b.CheckIn, &b.CheckOut,
		&b.ExpiresAt, &b.CreatedAt, &b.UpdatedAt)
	b.FlightBlockID = nullID(block)
	b.OutboundFlightID = nullID(out)
	b.ReturnFlightID = nullID(retLeg)
	return b, err
}

// CreateTx inserts a booking inside the caller's transaction and fills in
// its id.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (reservation_code, package_id, flight_block_id, outbound_flight_id, return_flight_id,
			hotel_id, adults, children, child_ages, seats_held, rooms_held, status, total_amount_cents,
			customer_name, customer_email, check_in, check_out, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ReservationCode, b.PackageID, idOrNil(b.FlightBlockID), idOrNil(b.OutboundFlightID), idOrNil(b.ReturnFlightID),
		b.HotelID, b.Adults, b.Children, b.ChildAges, b.SeatsHeld, b.RoomsHeld, b.Status, b.TotalAmountCents,
		b.CustomerName, b.CustomerEmail, dateArg(b.CheckIn), dateArg(b.CheckOut), timeArg(b.ExpiresAt))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

func (r *BookingRepo) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE reservation_code = ?`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ConfirmTx moves a SOFT booking whose hold has not run out to CONFIRMED.
func (r *BookingRepo) ConfirmTx(ctx context.Context, tx *sql.Tx, id uint64, now time.Time) (bool, error) {
	return affected(tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ? AND expires_at > ?`,
		model.BookingConfirmed, id, model.BookingSoft, timeArg(now)))
}

// MarkPaidTx moves a CONFIRMED booking to PAID.
func (r *BookingRepo) MarkPaidTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	return affected(tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`,
		model.BookingPaid, id, model.BookingConfirmed))
}

// CancelTx cancels any booking that is not cancelled yet.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	return affected(tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status <> ?`,
		model.BookingCancelled, id, model.BookingCancelled))
}

// ExpireTx cancels a SOFT booking whose hold ended before now.
func (r *BookingRepo) ExpireTx(ctx context.Context, tx *sql.Tx, id uint64, now time.Time) (bool, error) {
	return affected(tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ? AND expires_at < ?`,
		model.BookingCancelled, id, model.BookingSoft, timeArg(now)))
}

// ListExpiredSoft returns up to limit SOFT bookings whose hold ended
// before now, oldest first.
func (r *BookingRepo) ListExpiredSoft(ctx context.Context, now time.Time, limit int) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE status = ? AND expires_at < ? ORDER BY expires_at, id LIMIT ?`,
		model.BookingSoft, timeArg(now), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// List pages through bookings, newest first, optionally filtered by status.
func (r *BookingRepo) List(ctx context.Context, status string, page, pageSize int) ([]model.Booking, int64, error) {
	cond, args := "1=1", []any{}
	if status != "" {
		cond, args = "status = ?", append(args, status)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE `+cond+` ORDER BY id DESC LIMIT ? OFFSET ?`,
		append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := collectBookings(rows)
	return out, total, err
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
