package dto

import (
	"time"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
)

// --- User DTOs ---

// CreateUserRequest defines data for creating a new user.
type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles" binding:"dive,oneof=ADMIN APPROVER ELEVATED_APPROVER ACCOUNTANT"`
}

// UserResponse defines data returned for a user. Never carries the password hash.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = string(r)
	}
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Roles:     roles,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ListUsersResponse wraps a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to DTO.
func ToListUsersResponse(us []domain.User) ListUsersResponse {
	list := make([]UserResponse, len(us))
	for i, u := range us {
		list[i] = ToUserResponse(&u)
	}
	return ListUsersResponse{Users: list}
}

// --- Auth DTOs ---

// LoginRequest defines credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
