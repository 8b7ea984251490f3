package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/core/ports"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

// workflowService orchestrates document transitions: permission check, next
// status computation, assignee resolution and atomic persistence of the
// status + assignment + audit set.
type workflowService struct {
	BaseService
	documentRepo  portsrepo.DocumentRepositoryFacade
	userRepo      portsrepo.UserReader
	permissionSvc portssvc.PermissionSvcFacade
	assignmentSvc portssvc.AssignmentSvcFacade
	clock         ports.Clock

	// elevatedThreshold is the HUF gross amount above which non-invoice
	// documents require elevated approval, and the upper bound of the
	// value gate into the accountant step.
	elevatedThreshold decimal.Decimal
}

// NewWorkflowService creates the workflow engine.
func NewWorkflowService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	userRepo portsrepo.UserReader,
	permissionSvc portssvc.PermissionSvcFacade,
	assignmentSvc portssvc.AssignmentSvcFacade,
	clock ports.Clock,
	elevatedThreshold decimal.Decimal,
) portssvc.WorkflowSvcFacade {
	return &workflowService{
		documentRepo:      documentRepo,
		userRepo:          userRepo,
		permissionSvc:     permissionSvc,
		assignmentSvc:     assignmentSvc,
		clock:             clock,
		elevatedThreshold: elevatedThreshold,
	}
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// loadAndAuthorize fetches the document and runs the permission evaluator.
func (s *workflowService) loadAndAuthorize(ctx context.Context, documentID string, actorUserID string) (*domain.Document, error) {
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load document", slog.String("document_id", documentID))
		}
		return nil, fmt.Errorf("failed to load document %s: %w", documentID, err)
	}

	allowed, err := s.permissionSvc.CanAct(ctx, document, actorUserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.LogWarn(ctx, "Workflow action denied",
			slog.String("document_id", documentID),
			slog.String("actor_user_id", actorUserID),
			slog.String("status", string(document.Status)))
		return nil, fmt.Errorf("%w: user %s may not act on document %s", apperrors.ErrForbidden, actorUserID, documentID)
	}
	return document, nil
}

// nextStatus computes the advance target for the document's current status,
// branching on document type and gross amount.
func (s *workflowService) nextStatus(document *domain.Document) domain.DocumentStatus {
	switch document.Status {
	case domain.StatusDraft:
		return domain.StatusPendingApproval
	case domain.StatusPendingApproval:
		// Invoices never skip elevated review.
		if document.IsInvoice() {
			return domain.StatusElevatedApproval
		}
		if document.GrossAmount != nil && document.GrossAmount.GreaterThan(s.elevatedThreshold) {
			return domain.StatusElevatedApproval
		}
		return domain.StatusDone
	case domain.StatusElevatedApproval:
		if document.IsInvoice() {
			return domain.StatusAccountant
		}
		return domain.StatusDone
	case domain.StatusAccountant:
		return domain.StatusDone
	default:
		return document.Status
	}
}

// Advance implements portssvc.WorkflowSvcFacade.
func (s *workflowService) Advance(ctx context.Context, documentID string, actorUserID string, req dto.AdvanceDocumentRequest) (*dto.WorkflowResult, error) {
	document, err := s.loadAndAuthorize(ctx, documentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !document.Status.CanAdvance() {
		return nil, fmt.Errorf("%w: cannot advance from %s", apperrors.ErrInvalidState, document.Status.DisplayLabel())
	}

	next := s.nextStatus(document)
	if next == document.Status {
		return nil, fmt.Errorf("%w: document is stuck in %s", apperrors.ErrNoTransition, document.Status.DisplayLabel())
	}

	// Value gate into bookkeeping: an invoice must carry a validated,
	// positive gross amount within the elevated threshold before it may
	// reach the accountant.
	if document.IsInvoice() && document.Status == domain.StatusElevatedApproval && next == domain.StatusAccountant {
		if document.GrossAmount == nil || !document.GrossAmount.IsPositive() {
			return nil, fmt.Errorf("%w: invoice gross amount must be a positive value before accountant review", apperrors.ErrValidation)
		}
		if document.GrossAmount.GreaterThan(s.elevatedThreshold) {
			return nil, fmt.Errorf("%w: invoice gross amount %s exceeds the elevated approval threshold", apperrors.ErrValidation, document.GrossAmount.String())
		}
	}

	assignee, err := s.resolveAssignee(ctx, document, req.AssignToUserID, next, true)
	if err != nil {
		return nil, err
	}

	return s.commitTransition(ctx, document, actorUserID, next, assignee, req.Comment, nil)
}

// Reject implements portssvc.WorkflowSvcFacade.
func (s *workflowService) Reject(ctx context.Context, documentID string, actorUserID string, req dto.RejectDocumentRequest) (*dto.WorkflowResult, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	document, err := s.loadAndAuthorize(ctx, documentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !document.Status.CanReject() {
		return nil, fmt.Errorf("%w: cannot reject from %s", apperrors.ErrInvalidState, document.Status.DisplayLabel())
	}

	// Rejection always returns the document to its creator.
	creator := document.CreatedBy
	return s.commitTransition(ctx, document, actorUserID, domain.StatusRejected, &creator, nil, &req.Reason)
}

// Delegate implements portssvc.WorkflowSvcFacade.
func (s *workflowService) Delegate(ctx context.Context, documentID string, actorUserID string, req dto.DelegateDocumentRequest) (*dto.WorkflowResult, error) {
	if req.TargetUserID == "" {
		return nil, fmt.Errorf("%w: delegation target user is required", apperrors.ErrValidation)
	}

	document, err := s.loadAndAuthorize(ctx, documentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !document.Status.CanDelegate() {
		return nil, fmt.Errorf("%w: cannot delegate from %s", apperrors.ErrInvalidState, document.Status.DisplayLabel())
	}

	eligible, err := s.isEligibleAssignee(ctx, req.TargetUserID, document.CompanyID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, fmt.Errorf("%w: user %s is inactive or has no access to the document's company", apperrors.ErrInvalidTarget, req.TargetUserID)
	}

	now := s.clock.Now()
	updated := *document
	updated.AssignedToUserID = &req.TargetUserID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorUserID

	entry := domain.AuditEntry{
		EntryID:     uuid.NewString(),
		DocumentID:  document.DocumentID,
		ActorUserID: actorUserID,
		Action:      domain.AuditDelegated,
		OldValue:    document.AssignedToUserID,
		NewValue:    &req.TargetUserID,
		Comment:     req.Comment,
		CreatedAt:   now,
	}

	if err := s.documentRepo.SaveTransition(ctx, domain.Transition{
		Document:     updated,
		AuditEntries: []domain.AuditEntry{entry},
	}); err != nil {
		s.LogError(ctx, err, "Failed to persist delegation", slog.String("document_id", document.DocumentID))
		return nil, fmt.Errorf("%w: failed to persist delegation", apperrors.ErrInternal)
	}

	s.LogInfo(ctx, "Document delegated",
		slog.String("document_id", document.DocumentID),
		slog.String("target_user_id", req.TargetUserID))
	return &dto.WorkflowResult{
		Success:          true,
		Message:          fmt.Sprintf("Document delegated to user %s", req.TargetUserID),
		Status:           updated.Status,
		StatusLabel:      updated.Status.DisplayLabel(),
		AssignedToUserID: updated.AssignedToUserID,
	}, nil
}

// StepBack implements portssvc.WorkflowSvcFacade.
func (s *workflowService) StepBack(ctx context.Context, documentID string, actorUserID string, req dto.StepBackDocumentRequest) (*dto.WorkflowResult, error) {
	document, err := s.loadAndAuthorize(ctx, documentID, actorUserID)
	if err != nil {
		return nil, err
	}

	target, ok := document.Status.StepBackTarget()
	if !ok {
		return nil, fmt.Errorf("%w: cannot step back from %s", apperrors.ErrInvalidState, document.Status.DisplayLabel())
	}

	// Step-back never force-assigns to the creator.
	assignee, err := s.resolveAssignee(ctx, document, req.AssignToUserID, target, false)
	if err != nil {
		return nil, err
	}

	return s.commitTransition(ctx, document, actorUserID, target, assignee, req.Comment, nil)
}

// resolveAssignee picks the next assignee for a status change:
// explicit target (ignored with a warning when ineligible), then the creator
// for completed documents when forceCreatorOnDone is set, then the assignment
// resolver for the target status's role category, then unassigned.
func (s *workflowService) resolveAssignee(ctx context.Context, document *domain.Document, explicit *string, next domain.DocumentStatus, forceCreatorOnDone bool) (*string, error) {
	if explicit != nil && *explicit != "" {
		eligible, err := s.isEligibleAssignee(ctx, *explicit, document.CompanyID)
		if err != nil {
			return nil, err
		}
		if eligible {
			return explicit, nil
		}
		// Ineligible explicit targets fall through to auto-assignment
		// instead of failing the action.
		s.LogWarn(ctx, "Explicit assignee ignored: inactive or no company access",
			slog.String("document_id", document.DocumentID),
			slog.String("requested_user_id", *explicit))
	}

	if forceCreatorOnDone && next == domain.StatusDone {
		creator := document.CreatedBy
		return &creator, nil
	}

	roleCategory, ok := domain.RequiredRoleForStatus(next)
	if !ok {
		return nil, nil
	}

	// The rotation cursor advances here, before the transition commits; a
	// failed commit skips one rotation slot.
	// TODO: move assignee resolution into the transition tx so a failed
	// commit does not consume the slot.
	assignee, err := s.assignmentSvc.NextAssignee(ctx, document.CompanyID, roleCategory)
	if err != nil {
		return nil, err
	}
	return assignee, nil
}

// isEligibleAssignee reports whether the user exists, is active and has
// access to the company.
func (s *workflowService) isEligibleAssignee(ctx context.Context, userID string, companyID string) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to load candidate assignee", slog.String("user_id", userID))
		return false, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if !user.IsActive {
		return false, nil
	}

	hasAccess, err := s.userRepo.HasCompanyAccess(ctx, userID, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check company access",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return false, fmt.Errorf("failed to check company access for user %s: %w", userID, err)
	}
	return hasAccess, nil
}

// commitTransition builds the audit set for a status change and persists the
// whole transition atomically. rejectionReason is non-nil only for Reject.
func (s *workflowService) commitTransition(ctx context.Context, document *domain.Document, actorUserID string, next domain.DocumentStatus, assignee *string, comment *string, rejectionReason *string) (*dto.WorkflowResult, error) {
	now := s.clock.Now()

	updated := *document
	updated.Status = next
	updated.AssignedToUserID = assignee
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorUserID

	oldStatus := string(document.Status)
	newStatus := string(next)

	entries := []domain.AuditEntry{{
		EntryID:     uuid.NewString(),
		DocumentID:  document.DocumentID,
		ActorUserID: actorUserID,
		Action:      domain.AuditStatusChanged,
		OldValue:    &oldStatus,
		NewValue:    &newStatus,
		Comment:     comment,
		CreatedAt:   now,
	}}

	if rejectionReason != nil {
		entries = append(entries, domain.AuditEntry{
			EntryID:     uuid.NewString(),
			DocumentID:  document.DocumentID,
			ActorUserID: actorUserID,
			Action:      domain.AuditRejected,
			OldValue:    &oldStatus,
			NewValue:    &newStatus,
			Comment:     rejectionReason,
			CreatedAt:   now,
		})
	}

	if assignmentChanged(document.AssignedToUserID, assignee) {
		entries = append(entries, domain.AuditEntry{
			EntryID:     uuid.NewString(),
			DocumentID:  document.DocumentID,
			ActorUserID: actorUserID,
			Action:      domain.AuditAssigned,
			OldValue:    document.AssignedToUserID,
			NewValue:    assignee,
			CreatedAt:   now,
		})
	}

	transition := domain.Transition{
		Document:     updated,
		AuditEntries: entries,
	}

	if rejectionReason != nil {
		// The rejection marker is the only comment the engine ever writes.
		transition.Comment = &domain.Comment{
			CommentID:    uuid.NewString(),
			DocumentID:   document.DocumentID,
			AuthorUserID: actorUserID,
			Body:         fmt.Sprintf("Rejected: %s", *rejectionReason),
			CreatedAt:    now,
		}
	}

	if err := s.documentRepo.SaveTransition(ctx, transition); err != nil {
		s.LogError(ctx, err, "Failed to persist transition",
			slog.String("document_id", document.DocumentID),
			slog.String("old_status", oldStatus),
			slog.String("new_status", newStatus))
		return nil, fmt.Errorf("%w: failed to persist transition", apperrors.ErrInternal)
	}

	s.LogInfo(ctx, "Document transitioned",
		slog.String("document_id", document.DocumentID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
		slog.String("actor_user_id", actorUserID))

	return &dto.WorkflowResult{
		Success:          true,
		Message:          fmt.Sprintf("Document moved from %s to %s", document.Status.DisplayLabel(), next.DisplayLabel()),
		Status:           next,
		StatusLabel:      next.DisplayLabel(),
		AssignedToUserID: assignee,
	}, nil
}

func assignmentChanged(old, new *string) bool {
	if old == nil && new == nil {
		return false
	}
	if old == nil || new == nil {
		return true
	}
	return *old != *new
}
