package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// PackageRepo provides access to the packages table.
type PackageRepo struct {
	db *sql.DB
}

func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{db: db} }

const packageColumns = `id, slug, name, destination, hotel_ids,
	default_outbound_flight_id, default_return_flight_id, departure_date, return_date,
	service_charge_cents, profit_margin, includes_transfer, transfer_price_cents,
	is_active, created_at, updated_at`

func scanPackage(s rowScanner) (*model.Package, error) {
	var (
		p            model.Package
		hotelIDs     string
		outID, retID sql.NullInt64
		depart, ret  sql.NullTime
		margin       sql.NullFloat64
	)
	if err := s.Scan(&p.ID, &p.Slug, &p.Name, &p.Destination, &hotelIDs,
		&outID, &retID, &depart, &ret,
		&p.ServiceChargeCents, &margin, &p.IncludesTransfer, &p.TransferPriceCents,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.HotelIDs = ParseIDList(hotelIDs)
	p.DefaultOutboundFlightID = nullID(outID)
	p.DefaultReturnFlightID = nullID(retID)
	p.DepartureDate = nullTime(depart)
	p.ReturnDate = nullTime(ret)
	if margin.Valid {
		m := margin.Float64
		p.ProfitMargin = &m
	}
	return &p, nil
}

// GetByID returns ErrPackageNotFound when no row matches.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (*model.Package, error) {
	p, err := scanPackage(r.db.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	return p, err
}

// GetBySlug looks up an active package by its public slug.
func (r *PackageRepo) GetBySlug(ctx context.Context, slug string) (*model.Package, error) {
	p, err := scanPackage(r.db.QueryRowContext(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE slug = ? AND is_active = 1`, strings.ToLower(slug)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	return p, err
}

// ListActiveIDs returns the ids of all active packages in id order.
func (r *PackageRepo) ListActiveIDs(ctx context.Context) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM packages WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
