package models

import (
	"database/sql"
	"time"
)

// User is the persistence shape of a company employee.
type User struct {
	UserID       string         `db:"user_id"`
	CompanyID    string         `db:"company_id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	Role         string         `db:"role"`
	ManagerID    sql.NullString `db:"manager_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
