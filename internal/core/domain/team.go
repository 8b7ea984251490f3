package domain

import "time"

// ApproverTeam is a named group of users that receives documents for one role
// category within one company. Lower Priority wins when several active teams
// exist for the same (company, role category) pair.
type ApproverTeam struct {
	TeamID           string   `json:"teamID"` // Primary Key (e.g., UUID)
	CompanyID        string   `json:"companyID"`
	Name             string   `json:"name"`
	RoleCategory     UserRole `json:"roleCategory"`
	Priority         int      `json:"priority"`
	RoundRobinCursor int      `json:"roundRobinCursor"` // Always in [0, memberCount)
	IsActive         bool     `json:"isActive"`
	AuditFields
}

// TeamMember is one user's membership in an approver team. Only active members
// of active teams participate in rotation; ordering is by Priority, then JoinedAt.
type TeamMember struct {
	TeamID   string    `json:"teamID"` // FK -> approver_teams.team_id
	UserID   string    `json:"userID"` // FK -> users.user_id
	Priority int       `json:"priority"`
	IsActive bool      `json:"isActive"`
	JoinedAt time.Time `json:"joinedAt"`
}
