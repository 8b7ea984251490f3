package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	clock := NewSystemClock()

	// Permission and assignment come first since the workflow engine depends
	// on both.
	container.Permission = NewPermissionEvaluator(repos.UserRepo)
	container.Assignment = NewAssignmentService(repos.TeamRepo, repos.UserRepo)

	container.ArchiveNumber = NewArchiveNumberService(
		repos.DocumentRepo,
		repos.CompanyRepo,
		clock,
		cfg.ArchiveMaxAttempts,
	)

	container.Workflow = NewWorkflowService(
		repos.DocumentRepo,
		repos.UserRepo,
		container.Permission,
		container.Assignment,
		clock,
		decimal.NewFromInt(cfg.ElevatedApprovalThresholdHUF),
	)

	container.Document = NewDocumentService(
		repos.DocumentRepo,
		repos.UserRepo,
		repos.AuditRepo,
		repos.CommentRepo,
		container.ArchiveNumber,
		clock,
	)

	container.User = NewUserService(repos.UserRepo, repos.CompanyRepo, clock)
	container.Team = NewTeamService(repos.TeamRepo, repos.UserRepo, clock)

	return container
}
