package model

import "time"

// Roles carried in the users.role column and the JWT "role" claim.
const (
	RoleAdmin    = "ADMIN"
	RoleAgent    = "AGENT"
	RoleCustomer = "CUSTOMER"
)

// User represents an application user record as stored in the
// `users` table.  Staff accounts (ADMIN, AGENT) manage prices and
// inventory; customers may book without an account.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – ADMIN, AGENT or CUSTOMER.
//	IsActive     – inactive accounts cannot log in.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
