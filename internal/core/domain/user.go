package domain

import "time"

// UserRole names a capability a user holds. Roles double as team role
// categories: a team for RoleApprover feeds documents sitting in
// PendingApproval, and the role-based fallback matches users by the same name.
type UserRole string

const (
	RoleAdmin            UserRole = "ADMIN"
	RoleApprover         UserRole = "APPROVER"
	RoleElevatedApprover UserRole = "ELEVATED_APPROVER"
	RoleAccountant       UserRole = "ACCOUNTANT"
)

// User represents a person who can act on documents.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (e.g., UUID)
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Roles        []UserRole `json:"roles"`
	IsActive     bool       `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the administrative capability.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
