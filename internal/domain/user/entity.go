package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents a user's consumer role. Fees are keyed on it.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleVendor     Role = "vendor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Status represents account status
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusBlocked Status = "blocked"
)

// User represents a platform account with its wallet balance
type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	FullName     string         `db:"full_name" json:"full_name"`
	PasswordHash sql.NullString `db:"password_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	Status       Status         `db:"status" json:"status"`
	Balance      float64        `db:"balance" json:"balance"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// IsAdmin reports whether the user can act on admin surfaces
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
