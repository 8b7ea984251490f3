package services

import (
	"context"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

// TeamSvcFacade covers approver team management.
type TeamSvcFacade interface {
	CreateTeam(ctx context.Context, companyID string, req dto.CreateTeamRequest, creatorUserID string) (*domain.ApproverTeam, error)
	AddTeamMember(ctx context.Context, teamID string, req dto.AddTeamMemberRequest, addingUserID string) error
	ListTeams(ctx context.Context, companyID string, requestingUserID string) ([]domain.ApproverTeam, error)
}
