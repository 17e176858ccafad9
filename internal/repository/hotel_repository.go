package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// HotelRepo provides access to hotels and their seasonal rate sheets.
type HotelRepo struct {
	db *sql.DB
}

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelColumns = `id, name, city, stars, rooms_available, total_rooms, created_at`

const rateColumns = `id, hotel_id, valid_from, valid_to, single_cents, double_cents,
	extra_bed_cents, child_cents, child_age_min, child_age_max, board`

func scanHotel(s rowScanner) (model.Hotel, error) {
	var h model.Hotel
	err := s.Scan(&h.ID, &h.Name, &h.City, &h.Stars, &h.RoomsAvailable, &h.TotalRooms, &h.CreatedAt)
	return h, err
}

func scanRate(s rowScanner) (model.HotelRate, error) {
	var r model.HotelRate
	err := s.Scan(&r.ID, &r.HotelID, &r.ValidFrom, &r.ValidTo, &r.SingleCents, &r.DoubleCents,
		&r.ExtraBedCents, &r.ChildCents, &r.ChildAgeMin, &r.ChildAgeMax, &r.Board)
	return r, err
}

func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListByIDs returns the hotels in the order of ids.  Unknown ids are
// silently dropped.
func (r *HotelRepo) ListByIDs(ctx context.Context, ids []uint64) ([]model.Hotel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels WHERE id IN (`+placeholders(len(ids))+`)`, idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byID := make(map[uint64]model.Hotel, len(ids))
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		byID[h.ID] = h
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Hotel, 0, len(byID))
	for _, id := range ids {
		if h, ok := byID[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// RatesForHotels loads every rate row of the given hotels grouped by hotel.
func (r *HotelRepo) RatesForHotels(ctx context.Context, ids []uint64) (map[uint64][]model.HotelRate, error) {
	out := make(map[uint64][]model.HotelRate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rateColumns+` FROM hotel_rates WHERE hotel_id IN (`+placeholders(len(ids))+`) ORDER BY hotel_id, id`,
		idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out[rate.HotelID] = append(out[rate.HotelID], rate)
	}
	return out, rows.Err()
}

func (r *HotelRepo) RatesForHotel(ctx context.Context, hotelID uint64) ([]model.HotelRate, error) {
	m, err := r.RatesForHotels(ctx, []uint64{hotelID})
	if err != nil {
		return nil, err
	}
	return m[hotelID], nil
}

// CreateRate inserts a rate row and fills in its id.
func (r *HotelRepo) CreateRate(ctx context.Context, rate *model.HotelRate) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotel_rates (hotel_id, valid_from, valid_to, single_cents, double_cents,
			extra_bed_cents, child_cents, child_age_min, child_age_max, board)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rate.HotelID, dateArg(rate.ValidFrom), dateArg(rate.ValidTo), rate.SingleCents, rate.DoubleCents,
		rate.ExtraBedCents, rate.ChildCents, rate.ChildAgeMin, rate.ChildAgeMax, rate.Board)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rate.ID = uint64(id)
	return nil
}

// DeleteRate removes a rate row and returns the hotel it belonged to.
func (r *HotelRepo) DeleteRate(ctx context.Context, id uint64) (uint64, error) {
	var hotelID uint64
	err := r.db.QueryRowContext(ctx, `SELECT hotel_id FROM hotel_rates WHERE id = ?`, id).Scan(&hotelID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRateNotFound
	}
	if err != nil {
		return 0, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM hotel_rates WHERE id = ?`, id); err != nil {
		return 0, err
	}
	return hotelID, nil
}

// DecrementRoomsTx takes n rooms from the hotel's allotment only if that
// many are left.
func (r *HotelRepo) DecrementRoomsTx(ctx context.Context, tx *sql.Tx, hotelID uint64, n int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE hotels SET rooms_available = rooms_available - ? WHERE id = ? AND rooms_available >= ?`,
		n, hotelID, n)
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

// ReleaseRoomsTx gives n rooms back, capped at the hotel's total.
func (r *HotelRepo) ReleaseRoomsTx(ctx context.Context, tx *sql.Tx, hotelID uint64, n int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE hotels SET rooms_available = LEAST(total_rooms, rooms_available + ?) WHERE id = ?`, n, hotelID)
	return err
}
