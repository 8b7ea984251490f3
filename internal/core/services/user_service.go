package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/core/ports"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
	"github.com/irodasoft/docuflow_app/internal/utils"
)

// ErrInvalidCredentials is returned by Authenticate for both unknown emails
// and wrong passwords so callers cannot distinguish the two.
var ErrInvalidCredentials = errors.New("invalid email or password")

type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyReader
	clock       ports.Clock
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, companyRepo portsrepo.CompanyReader, clock ports.Clock) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		clock:       clock,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// requireAdmin loads the acting user and ensures they hold the admin role.
func (s *userService) requireAdmin(ctx context.Context, actingUserID string) error {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: acting user %s not found", apperrors.ErrForbidden, actingUserID)
		}
		s.LogError(ctx, err, "Failed to load acting user", slog.String("user_id", actingUserID))
		return fmt.Errorf("failed to load acting user: %w", err)
	}
	if !actor.IsActive || !actor.IsAdmin() {
		return fmt.Errorf("%w: user %s is not an administrator", apperrors.ErrForbidden, actingUserID)
	}
	return nil
}

// CreateUser implements portssvc.UserSvcFacade.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if err := s.requireAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.userRepo.FindUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email %s already in use", apperrors.ErrDuplicate, email)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email uniqueness", slog.String("email", email))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", apperrors.ErrInternal)
	}

	roles := make([]domain.UserRole, len(req.Roles))
	for i, r := range req.Roles {
		roles[i] = domain.UserRole(r)
	}

	now := s.clock.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID implements portssvc.UserSvcFacade.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers implements portssvc.UserSvcFacade.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Authenticate implements portssvc.UserSvcFacade.
func (s *userService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to load user for authentication")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	s.LogInfo(ctx, "User authenticated", slog.String("user_id", user.UserID))
	return user, nil
}

// AddUserToCompany implements portssvc.UserSvcFacade.
func (s *userService) AddUserToCompany(ctx context.Context, addingUserID string, targetUserID string, companyID string) error {
	if err := s.requireAdmin(ctx, addingUserID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return fmt.Errorf("failed to find target user %s: %w", targetUserID, err)
	}
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return fmt.Errorf("failed to find company %s: %w", companyID, err)
	}

	membership := domain.UserCompany{
		UserID:    targetUserID,
		CompanyID: companyID,
		JoinedAt:  s.clock.Now(),
	}
	if err := s.userRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to company",
			slog.String("user_id", targetUserID),
			slog.String("company_id", companyID))
		return fmt.Errorf("failed to add user to company: %w", err)
	}

	s.LogInfo(ctx, "User added to company",
		slog.String("user_id", targetUserID),
		slog.String("company_id", companyID))
	return nil
}
