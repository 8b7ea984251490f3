package dto

import (
	"time"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
)

// --- Team DTOs ---

// CreateTeamRequest defines data for creating an approver team.
type CreateTeamRequest struct {
	Name         string `json:"name" binding:"required"`
	RoleCategory string `json:"roleCategory" binding:"required,oneof=APPROVER ELEVATED_APPROVER ACCOUNTANT"`
	Priority     int    `json:"priority"`
}

// AddTeamMemberRequest defines data for adding a member to a team.
type AddTeamMemberRequest struct {
	UserID   string `json:"userID" binding:"required"`
	Priority int    `json:"priority"`
}

// TeamResponse defines data returned for an approver team.
type TeamResponse struct {
	TeamID           string    `json:"teamID"`
	CompanyID        string    `json:"companyID"`
	Name             string    `json:"name"`
	RoleCategory     string    `json:"roleCategory"`
	Priority         int       `json:"priority"`
	RoundRobinCursor int       `json:"roundRobinCursor"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToTeamResponse converts domain.ApproverTeam to DTO.
func ToTeamResponse(t *domain.ApproverTeam) TeamResponse {
	return TeamResponse{
		TeamID:           t.TeamID,
		CompanyID:        t.CompanyID,
		Name:             t.Name,
		RoleCategory:     string(t.RoleCategory),
		Priority:         t.Priority,
		RoundRobinCursor: t.RoundRobinCursor,
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
	}
}

// ListTeamsResponse wraps a list of teams.
type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// ToListTeamsResponse converts a slice of domain.ApproverTeam to DTO.
func ToListTeamsResponse(ts []domain.ApproverTeam) ListTeamsResponse {
	list := make([]TeamResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTeamResponse(&t)
	}
	return ListTeamsResponse{Teams: list}
}
