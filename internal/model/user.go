package model

import "time"

// Role values stored in users.role. Admins create companies and rooms and may
// manage any reservation in rooms they own; standard users may only book and
// manage their own reservations.
const (
	RoleAdmin    = "ADMIN"
	RoleStandard = "STANDARD"
)

// User represents an application user record as stored in the `users` table.
// The password is never stored in plain text; only a bcrypt hash is kept.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address (stored lower-cased).
//  FirstName    – given name, used for display on calendar entries.
//  LastName     – family name.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN or STANDARD.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user; only the SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
