package repository

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// placeholders returns "?,?,?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// ParseIDList reads the comma separated id lists stored in packages.hotel_ids.
// Malformed entries are dropped.
func ParseIDList(s string) []uint64 {
	var ids []uint64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n, err := strconv.ParseUint(p, 10, 64); err == nil {
			ids = append(ids, n)
		}
	}
	return ids
}

func FormatIDList(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}

func nullID(n sql.NullInt64) *uint64 {
	if !n.Valid {
		return nil
	}
	v := uint64(n.Int64)
	return &v
}

func idOrNil(p *uint64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func dateArg(t time.Time) string { return t.UTC().Format(time.DateOnly) }

func timeArg(t time.Time) string { return t.UTC().Format(time.DateTime) }
