package models

import "time"

// ApproverTeam mirrors the approver_teams table.
type ApproverTeam struct {
	TeamID           string `db:"team_id"`
	CompanyID        string `db:"company_id"`
	Name             string `db:"name"`
	RoleCategory     string `db:"role_category"`
	Priority         int    `db:"priority"`
	RoundRobinCursor int    `db:"round_robin_cursor"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}

// TeamMember mirrors the team_members table.
type TeamMember struct {
	TeamID   string    `db:"team_id"`
	UserID   string    `db:"user_id"`
	Priority int       `db:"priority"`
	IsActive bool      `db:"is_active"`
	JoinedAt time.Time `db:"joined_at"`
}
