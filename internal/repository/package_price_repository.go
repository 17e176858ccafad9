package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// insertChunk bounds the number of rows per INSERT statement so large
// matrices stay below max_allowed_packet.
const insertChunk = 500

const priceColumns = `package_id, adults, children, child_ages, flight_price_cents, hotel_price_cents,
	transfer_price_cents, service_charge_cents, profit_cents, total_price_cents,
	hotel_id, hotel_name, hotel_board, room_type, flight_block_id, nights, check_in, check_out`

// PackagePriceRepo stores the pre-computed price matrix of each package.
type PackagePriceRepo struct {
	db *sql.DB
}

func NewPackagePriceRepo(db *sql.DB) *PackagePriceRepo { return &PackagePriceRepo{db: db} }

// ReplaceForPackage swaps the package's whole matrix for rows inside one
// transaction.  Readers see either the old matrix or the new one; on error
// the old matrix stays in place.
func (r *PackagePriceRepo) ReplaceForPackage(ctx context.Context, packageID uint64, rows []model.PackagePrice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.ReplaceForPackageTx(ctx, tx, packageID, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// ReplaceForPackageTx deletes and re-inserts within a caller-owned
// transaction.
func (r *PackagePriceRepo) ReplaceForPackageTx(ctx context.Context, tx *sql.Tx, packageID uint64, rows []model.PackagePrice) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM package_prices WHERE package_id = ?`, packageID); err != nil {
		return fmt.Errorf("delete prices: %w", err)
	}
	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		if err := insertPrices(ctx, tx, packageID, rows[start:end]); err != nil {
			return fmt.Errorf("insert prices: %w", err)
		}
	}
	return nil
}

func insertPrices(ctx context.Context, tx *sql.Tx, packageID uint64, rows []model.PackagePrice) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO package_prices (` + priceColumns + `) VALUES `)
	args := make([]any, 0, len(rows)*18)
	for i, p := range rows {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, packageID, p.Adults, p.Children, p.ChildAges, p.FlightPriceCents, p.HotelPriceCents,
			p.TransferPriceCents, p.ServiceChargeCents, p.ProfitCents, p.TotalPriceCents,
			p.HotelID, p.HotelName, p.HotelBoard, p.RoomType, idOrNil(p.FlightBlockID), p.Nights,
			dateArg(p.CheckIn), dateArg(p.CheckOut))
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// ListByPackage returns the stored matrix in insertion order.
func (r *PackagePriceRepo) ListByPackage(ctx context.Context, packageID uint64) ([]model.PackagePrice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, `+priceColumns+`, created_at FROM package_prices WHERE package_id = ? ORDER BY id`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PackagePrice, 0)
	for rows.Next() {
		var (
			p     model.PackagePrice
			block sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.PackageID, &p.Adults, &p.Children, &p.ChildAges,
			&p.FlightPriceCents, &p.HotelPriceCents, &p.TransferPriceCents, &p.ServiceChargeCents,
			&p.ProfitCents, &p.TotalPriceCents, &p.HotelID, &p.HotelName, &p.HotelBoard, &p.RoomType,
			&block, &p.Nights, &p.CheckIn, &p.CheckOut, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.FlightBlockID = nullID(block)
		out = append(out, p)
	}
	return out, rows.Err()
}
