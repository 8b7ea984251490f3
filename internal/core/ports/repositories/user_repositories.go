package repositories

import (
	"context"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// HasCompanyAccess reports whether the user is a member of the company.
	HasCompanyAccess(ctx context.Context, userID string, companyID string) (bool, error)

	// FindFirstActiveUserWithRole returns one active user of the company
	// holding the given role, first match by user ID. Used as the
	// non-rotating assignment fallback. apperrors.ErrNotFound when none exists.
	FindFirstActiveUserWithRole(ctx context.Context, companyID string, role domain.UserRole) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a user (insert or update).
	SaveUser(ctx context.Context, user domain.User) error

	// AddUserToCompany persists a company membership.
	AddUserToCompany(ctx context.Context, membership domain.UserCompany) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
