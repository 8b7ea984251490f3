package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	"github.com/irodasoft/docuflow_app/internal/models"
)

type PgxTeamRepository struct {
	db *pgxpool.Pool
}

func newPgxTeamRepository(db *pgxpool.Pool) portsrepo.TeamRepositoryFacade {
	return &PgxTeamRepository{db: db}
}

// Ensure PgxTeamRepository implements portsrepo.TeamRepositoryFacade
var _ portsrepo.TeamRepositoryFacade = (*PgxTeamRepository)(nil)

// Helper to convert models.ApproverTeam to domain.ApproverTeam
func toDomainTeam(m models.ApproverTeam) domain.ApproverTeam {
	return domain.ApproverTeam{
		TeamID:           m.TeamID,
		CompanyID:        m.CompanyID,
		Name:             m.Name,
		RoleCategory:     domain.UserRole(m.RoleCategory),
		Priority:         m.Priority,
		RoundRobinCursor: m.RoundRobinCursor,
		IsActive:         m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const teamColumns = `team_id, company_id, name, role_category, priority, round_robin_cursor, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanTeam(row pgx.Row) (models.ApproverTeam, error) {
	var m models.ApproverTeam
	err := row.Scan(
		&m.TeamID,
		&m.CompanyID,
		&m.Name,
		&m.RoleCategory,
		&m.Priority,
		&m.RoundRobinCursor,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTeamRepository) SaveTeam(ctx context.Context, team domain.ApproverTeam) error {
	query := `
        INSERT INTO approver_teams (` + teamColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		team.TeamID,
		team.CompanyID,
		team.Name,
		string(team.RoleCategory),
		team.Priority,
		team.RoundRobinCursor,
		team.IsActive,
		team.CreatedAt,
		team.CreatedBy,
		team.LastUpdatedAt,
		team.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (r *PgxTeamRepository) FindActiveTeam(ctx context.Context, companyID string, roleCategory domain.UserRole) (*domain.ApproverTeam, error) {
	query := `
        SELECT ` + teamColumns + `
        FROM approver_teams
        WHERE company_id = $1 AND role_category = $2 AND is_active = TRUE
        ORDER BY priority ASC, team_id ASC
        LIMIT 1;
    `
	m, err := scanTeam(r.db.QueryRow(ctx, query, companyID, string(roleCategory)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active team for %s/%s: %w", companyID, roleCategory, err)
	}
	team := toDomainTeam(m)
	return &team, nil
}

func (r *PgxTeamRepository) ListActiveMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	query := `
        SELECT tm.team_id, tm.user_id, tm.priority, tm.is_active, tm.joined_at
        FROM team_members tm
        JOIN users u ON u.user_id = tm.user_id
        WHERE tm.team_id = $1
          AND tm.is_active = TRUE
          AND u.is_active = TRUE
          AND u.deleted_at IS NULL
        ORDER BY tm.priority ASC, tm.joined_at ASC;
    `
	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	members := []domain.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Priority, &m.IsActive, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team member row: %w", err)
		}
		members = append(members, domain.TeamMember{
			TeamID:   m.TeamID,
			UserID:   m.UserID,
			Priority: m.Priority,
			IsActive: m.IsActive,
			JoinedAt: m.JoinedAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating team member rows: %w", rows.Err())
	}
	return members, nil
}

func (r *PgxTeamRepository) ListTeamsByCompany(ctx context.Context, companyID string) ([]domain.ApproverTeam, error) {
	query := `
        SELECT ` + teamColumns + `
        FROM approver_teams
        WHERE company_id = $1
        ORDER BY priority ASC, name ASC;
    `
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []domain.ApproverTeam{}
	for rows.Next() {
		m, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, toDomainTeam(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", rows.Err())
	}
	return teams, nil
}

func (r *PgxTeamRepository) AddTeamMember(ctx context.Context, member domain.TeamMember) error {
	query := `
        INSERT INTO team_members (team_id, user_id, priority, is_active, joined_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (team_id, user_id) DO UPDATE SET
            priority = EXCLUDED.priority,
            is_active = EXCLUDED.is_active;
    `
	_, err := r.db.Exec(ctx, query,
		member.TeamID,
		member.UserID,
		member.Priority,
		member.IsActive,
		member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

// AdvanceRotationCursor advances the cursor in one atomic statement. The
// returned value is the member index selected by this call: the cursor as it
// stood before the advance, reduced modulo memberCount.
func (r *PgxTeamRepository) AdvanceRotationCursor(ctx context.Context, teamID string, memberCount int) (int, error) {
	if memberCount <= 0 {
		return 0, fmt.Errorf("%w: member count must be positive", apperrors.ErrValidation)
	}

	var newCursor int
	err := r.db.QueryRow(ctx, `
        UPDATE approver_teams
        SET round_robin_cursor = mod(round_robin_cursor + 1, $2)
        WHERE team_id = $1
        RETURNING round_robin_cursor;
    `, teamID, memberCount).Scan(&newCursor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to advance rotation cursor of team %s: %w", teamID, err)
	}

	// The pre-advance cursor may exceed memberCount if members were removed
	// since the last advance; normalize into [0, memberCount).
	selected := ((newCursor-1)%memberCount + memberCount) % memberCount
	return selected, nil
}
