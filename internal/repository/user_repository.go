package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/utils"
)

const mysqlDuplicateKey = 1062

// UserRepo reads and creates staff accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, password_hash, role, is_active, created_at, updated_at"

// Create hashes password and inserts an active user with the given role.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)",
		normEmail(email), hash, role)
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateKey {
		return 0, ErrEmailExists
	}
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.one(ctx, "email = ?", normEmail(email))
}

func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.one(ctx, "id = ?", id)
}

func (r *UserRepo) one(ctx context.Context, where string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where+" LIMIT 1", arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	return u, err
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
