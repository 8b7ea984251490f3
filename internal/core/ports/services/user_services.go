package services

import (
	"context"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

// UserSvcFacade covers user management and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// Authenticate verifies email/password and returns the user on success.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)

	// AddUserToCompany grants a user access to a company's documents.
	AddUserToCompany(ctx context.Context, addingUserID string, targetUserID string, companyID string) error
}
