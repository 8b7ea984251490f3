package repositories

import (
	"context"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
)

// TeamReader defines read operations for approver teams
type TeamReader interface {
	// FindActiveTeam returns the active team for (company, role category) with
	// the lowest priority value, ties broken by team ID. apperrors.ErrNotFound
	// when no such team exists.
	FindActiveTeam(ctx context.Context, companyID string, roleCategory domain.UserRole) (*domain.ApproverTeam, error)

	// ListActiveMembers returns the team's active members whose underlying
	// user is also active, ordered by member priority then join time.
	ListActiveMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error)

	// ListTeamsByCompany returns all teams of a company.
	ListTeamsByCompany(ctx context.Context, companyID string) ([]domain.ApproverTeam, error)
}

// TeamWriter defines write operations for approver teams
type TeamWriter interface {
	// SaveTeam persists a new team.
	SaveTeam(ctx context.Context, team domain.ApproverTeam) error

	// AddTeamMember persists a new team membership.
	AddTeamMember(ctx context.Context, member domain.TeamMember) error

	// AdvanceRotationCursor atomically advances the team's round-robin cursor
	// by one modulo memberCount and returns the member index that was selected
	// (the cursor value before the advance, reduced modulo memberCount). The
	// read-increment-write happens in a single statement so concurrent callers
	// can never observe the same cursor value.
	AdvanceRotationCursor(ctx context.Context, teamID string, memberCount int) (int, error)
}

// TeamRepositoryFacade combines all team-related repository interfaces
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
}
