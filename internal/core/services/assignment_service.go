package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
)

// assignmentService resolves the next assignee for a (company, role category)
// pair: round-robin rotation over the preferred team, then a role-based
// fallback without rotation.
type assignmentService struct {
	BaseService
	teamRepo portsrepo.TeamRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewAssignmentService creates a new assignment resolver service.
func NewAssignmentService(teamRepo portsrepo.TeamRepositoryFacade, userRepo portsrepo.UserReader) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// NextAssignee implements portssvc.AssignmentSvcFacade.
func (s *assignmentService) NextAssignee(ctx context.Context, companyID string, roleCategory domain.UserRole) (*string, error) {
	team, err := s.teamRepo.FindActiveTeam(ctx, companyID, roleCategory)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load team for assignment",
			slog.String("company_id", companyID),
			slog.String("role_category", string(roleCategory)))
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	if team != nil {
		members, err := s.teamRepo.ListActiveMembers(ctx, team.TeamID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list team members for assignment",
				slog.String("team_id", team.TeamID))
			return nil, fmt.Errorf("failed to list members of team %s: %w", team.TeamID, err)
		}

		if len(members) > 0 {
			// The cursor read-increment-write is a single atomic update in
			// the repository; two concurrent callers can never select the
			// same index.
			idx, err := s.teamRepo.AdvanceRotationCursor(ctx, team.TeamID, len(members))
			if err != nil {
				s.LogError(ctx, err, "Failed to advance rotation cursor",
					slog.String("team_id", team.TeamID))
				return nil, fmt.Errorf("failed to advance cursor of team %s: %w", team.TeamID, err)
			}

			selected := members[idx].UserID
			s.LogDebug(ctx, "Assignee resolved from team rotation",
				slog.String("team_id", team.TeamID),
				slog.String("user_id", selected),
				slog.Int("member_index", idx))
			return &selected, nil
		}

		s.LogDebug(ctx, "Team has no eligible members, falling back to role lookup",
			slog.String("team_id", team.TeamID))
	}

	// Fallback: first active role holder in the company, no rotation. This
	// mirrors the historical behavior; changing it would alter the observable
	// assignment distribution.
	user, err := s.userRepo.FindFirstActiveUserWithRole(ctx, companyID, roleCategory)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No fallback user found, leaving unassigned",
				slog.String("company_id", companyID),
				slog.String("role_category", string(roleCategory)))
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up fallback assignee",
			slog.String("company_id", companyID),
			slog.String("role_category", string(roleCategory)))
		return nil, fmt.Errorf("failed to look up fallback assignee: %w", err)
	}

	s.LogDebug(ctx, "Assignee resolved from role fallback",
		slog.String("user_id", user.UserID),
		slog.String("role_category", string(roleCategory)))
	return &user.UserID, nil
}
