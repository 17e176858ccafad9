package repository

import (
	"context"
	"strings"
)

// PackageSearchQuery defines filters & pagination for the customer search.
// Adults and Children select the price matrix rows to compare.
type PackageSearchQuery struct {
	Destination   string
	Adults        int
	Children      int
	MaxPriceCents int64
	Page          int
	PageSize      int
}

// PackageSearchRow is one package with the cheapest matching matrix row.
type PackageSearchRow struct {
	ID          uint64 `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Destination string `json:"destination"`
	FromCents   int64  `json:"from_cents"`
	Options     int64  `json:"options"`
	MinNights   int    `json:"min_nights"`
}

// Search reads the pre-computed price matrix; nothing is priced here.
func (r *PackageRepo) Search(ctx context.Context, q PackageSearchQuery) ([]PackageSearchRow, int64, error) {
	where := []string{"p.is_active = 1", "pp.adults = ?", "pp.children = ?"}
	args := []any{q.Adults, q.Children}

	if q.Destination != "" {
		where = append(where, "LOWER(p.destination) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Destination)+"%")
	}
	having := ""
	if q.MaxPriceCents > 0 {
		having = " HAVING MIN(pp.total_price_cents) <= ?"
		args = append(args, q.MaxPriceCents)
	}

	grouped := `SELECT
			p.id,
			p.slug,
			p.name,
			p.destination,
			MIN(pp.total_price_cents) AS from_cents,
			COUNT(*) AS options,
			MIN(pp.nights) AS min_nights
		FROM packages p
		JOIN package_prices pp ON pp.package_id = p.id
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY p.id, p.slug, p.name, p.destination` + having

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM (`+grouped+`) t`, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	dataSQL := grouped + `
		ORDER BY from_cents ASC, p.id ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PackageSearchRow, 0, limit)
	for rows.Next() {
		var d PackageSearchRow
		if err := rows.Scan(&d.ID, &d.Slug, &d.Name, &d.Destination, &d.FromCents, &d.Options, &d.MinNights); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
