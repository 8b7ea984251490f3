package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/core/ports"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

type teamService struct {
	BaseService
	teamRepo portsrepo.TeamRepositoryFacade
	userRepo portsrepo.UserReader
	clock    ports.Clock
}

// NewTeamService creates a new team service.
func NewTeamService(teamRepo portsrepo.TeamRepositoryFacade, userRepo portsrepo.UserReader, clock ports.Clock) portssvc.TeamSvcFacade {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		clock:    clock,
	}
}

var _ portssvc.TeamSvcFacade = (*teamService)(nil)

// CreateTeam implements portssvc.TeamSvcFacade.
func (s *teamService) CreateTeam(ctx context.Context, companyID string, req dto.CreateTeamRequest, creatorUserID string) (*domain.ApproverTeam, error) {
	hasAccess, err := s.userRepo.HasCompanyAccess(ctx, creatorUserID, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check company access", slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to check company access: %w", err)
	}
	if !hasAccess {
		return nil, fmt.Errorf("%w: user %s has no access to company %s", apperrors.ErrForbidden, creatorUserID, companyID)
	}

	now := s.clock.Now()
	team := domain.ApproverTeam{
		TeamID:           uuid.NewString(),
		CompanyID:        companyID,
		Name:             req.Name,
		RoleCategory:     domain.UserRole(req.RoleCategory),
		Priority:         req.Priority,
		RoundRobinCursor: 0,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.teamRepo.SaveTeam(ctx, team); err != nil {
		s.LogError(ctx, err, "Failed to save team", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save team: %w", err)
	}

	s.LogInfo(ctx, "Team created",
		slog.String("team_id", team.TeamID),
		slog.String("role_category", req.RoleCategory))
	return &team, nil
}

// AddTeamMember implements portssvc.TeamSvcFacade.
func (s *teamService) AddTeamMember(ctx context.Context, teamID string, req dto.AddTeamMemberRequest, addingUserID string) error {
	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", req.UserID, err)
	}
	if !user.IsActive {
		return fmt.Errorf("%w: user %s is inactive", apperrors.ErrValidation, req.UserID)
	}

	member := domain.TeamMember{
		TeamID:   teamID,
		UserID:   req.UserID,
		Priority: req.Priority,
		IsActive: true,
		JoinedAt: s.clock.Now(),
	}
	if err := s.teamRepo.AddTeamMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to add team member",
			slog.String("team_id", teamID),
			slog.String("user_id", req.UserID))
		return fmt.Errorf("failed to add member to team %s: %w", teamID, err)
	}

	s.LogInfo(ctx, "Team member added",
		slog.String("team_id", teamID),
		slog.String("user_id", req.UserID),
		slog.String("added_by", addingUserID))
	return nil
}

// ListTeams implements portssvc.TeamSvcFacade.
func (s *teamService) ListTeams(ctx context.Context, companyID string, requestingUserID string) ([]domain.ApproverTeam, error) {
	hasAccess, err := s.userRepo.HasCompanyAccess(ctx, requestingUserID, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check company access", slog.String("user_id", requestingUserID))
		return nil, fmt.Errorf("failed to check company access: %w", err)
	}
	if !hasAccess {
		return nil, fmt.Errorf("%w: user %s has no access to company %s", apperrors.ErrForbidden, requestingUserID, companyID)
	}

	teams, err := s.teamRepo.ListTeamsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list teams", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}
