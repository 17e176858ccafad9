package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// FlightRepo provides access to flights and the flight blocks that pair
// them for packages.  Seat counters are only ever changed through the
// compare-and-decrement helpers.
type FlightRepo struct {
	db *sql.DB
}

func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

const flightColumns = `id, flight_number, origin, destination, departure_time, arrival_time,
	price_cents, available_seats, total_seats`

const blockSelect = `SELECT
		b.id, b.block_group_id, b.package_id, b.is_active,
		o.id, o.flight_number, o.origin, o.destination, o.departure_time, o.arrival_time,
		o.price_cents, o.available_seats, o.total_seats,
		r.id, r.flight_number, r.origin, r.destination, r.departure_time, r.arrival_time,
		r.price_cents, r.available_seats, r.total_seats
	FROM flight_blocks b
	JOIN flights o ON o.id = b.outbound_flight_id
	JOIN flights r ON r.id = b.return_flight_id`

func scanBlock(s rowScanner) (model.FlightBlock, error) {
	var (
		b    model.FlightBlock
		o, r = &b.Outbound, &b.Return
	)
	err := s.Scan(&b.ID, &b.BlockGroupID, &b.PackageID, &b.IsActive,
		&o.ID, &o.FlightNumber, &o.Origin, &o.Destination, &o.DepartureTime, &o.ArrivalTime,
		&o.PriceCents, &o.AvailableSeats, &o.TotalSeats,
		&r.ID, &r.FlightNumber, &r.Origin, &r.Destination, &r.DepartureTime, &r.ArrivalTime,
		&r.PriceCents, &r.AvailableSeats, &r.TotalSeats)
	return b, err
}

func (r *FlightRepo) GetFlight(ctx context.Context, id uint64) (*model.Flight, error) {
	var f model.Flight
	err := r.db.QueryRowContext(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = ?`, id).
		Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime,
			&f.PriceCents, &f.AvailableSeats, &f.TotalSeats)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FlightRepo) GetBlock(ctx context.Context, id uint64) (*model.FlightBlock, error) {
	b, err := scanBlock(r.db.QueryRowContext(ctx, blockSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFlightBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBlocksForPackage returns the package's active blocks in id order,
// sold out or not.
func (r *FlightRepo) ListBlocksForPackage(ctx context.Context, packageID uint64) ([]model.FlightBlock, error) {
	rows, err := r.db.QueryContext(ctx, blockSelect+`
		WHERE b.package_id = ? AND b.is_active = 1
		ORDER BY b.id`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.FlightBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateBlock inserts a block for two existing flights and fills in its id.
func (r *FlightRepo) CreateBlock(ctx context.Context, b *model.FlightBlock) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO flight_blocks (block_group_id, package_id, outbound_flight_id, return_flight_id, is_active)
		VALUES (?, ?, ?, ?, ?)`,
		b.BlockGroupID, b.PackageID, b.Outbound.ID, b.Return.ID, b.IsActive)
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

// DecrementSeatsTx takes n seats from a flight only if that many are left.
func (r *FlightRepo) DecrementSeatsTx(ctx context.Context, tx *sql.Tx, flightID uint64, n int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE flights SET available_seats = available_seats - ? WHERE id = ? AND available_seats >= ?`,
		n, flightID, n)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

// ReleaseSeatsTx gives n seats back, never past the flight's capacity.
func (r *FlightRepo) ReleaseSeatsTx(ctx context.Context, tx *sql.Tx, flightID uint64, n int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE flights SET available_seats = LEAST(total_seats, available_seats + ?) WHERE id = ?`,
		n, flightID)
	return err
}
