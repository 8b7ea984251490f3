package services

import (
	"context"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

// WorkflowSvcFacade is the workflow engine's four action entry points.
// Business-rule rejections come back as typed apperrors sentinels with no
// state mutated; success means the full transition committed atomically.
type WorkflowSvcFacade interface {
	// Advance moves the document to its next status, branching on document
	// type and gross amount.
	Advance(ctx context.Context, documentID string, actorUserID string, req dto.AdvanceDocumentRequest) (*dto.WorkflowResult, error)

	// Reject terminates the document with a mandatory reason, reassigning it
	// to its creator.
	Reject(ctx context.Context, documentID string, actorUserID string, req dto.RejectDocumentRequest) (*dto.WorkflowResult, error)

	// Delegate hands the document to another user without changing status.
	Delegate(ctx context.Context, documentID string, actorUserID string, req dto.DelegateDocumentRequest) (*dto.WorkflowResult, error)

	// StepBack returns the document to the previous status along the fixed
	// reverse map.
	StepBack(ctx context.Context, documentID string, actorUserID string, req dto.StepBackDocumentRequest) (*dto.WorkflowResult, error)
}

// PermissionSvcFacade decides whether an actor may invoke a workflow action
// on a document in its current state.
type PermissionSvcFacade interface {
	// CanAct returns a bare boolean; callers translate false into an
	// authorization failure without further detail.
	CanAct(ctx context.Context, document *domain.Document, actorUserID string) (bool, error)
}

// AssignmentSvcFacade picks the user to receive a document next.
type AssignmentSvcFacade interface {
	// NextAssignee resolves via round-robin team rotation with a role-based
	// fallback. Returns nil with no error when nothing resolves; the caller
	// leaves the document unassigned.
	NextAssignee(ctx context.Context, companyID string, roleCategory domain.UserRole) (*string, error)
}

// ArchiveNumberSvcFacade allocates globally unique archive numbers.
type ArchiveNumberSvcFacade interface {
	// Allocate returns a free archive number for (company, document type) on
	// the current day, or apperrors.ErrAllocationExhausted.
	Allocate(ctx context.Context, companyID string, documentTypeCode string) (string, error)
}
