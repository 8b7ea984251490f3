package models

import "time"

// User mirrors the users table. Roles are stored as a text array.
type User struct {
	UserID       string   `db:"user_id"`
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Roles        []string `db:"roles"`
	IsActive     bool     `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// UserCompany mirrors the user_companies membership table.
type UserCompany struct {
	UserID    string    `db:"user_id"`
	CompanyID string    `db:"company_id"`
	JoinedAt  time.Time `db:"joined_at"`
}
