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

// permissionEvaluator decides whether an actor may act on a document.
// Rules are evaluated in order; the first match wins:
//  1. admins act unconditionally
//  2. the current assignee acts
//  3. the creator acts while the document is still in Draft
//  4. anyone holding the role mapped to the current status acts
type permissionEvaluator struct {
	BaseService
	userRepo portsrepo.UserReader
}

// NewPermissionEvaluator creates a new permission evaluator service.
func NewPermissionEvaluator(userRepo portsrepo.UserReader) portssvc.PermissionSvcFacade {
	return &permissionEvaluator{userRepo: userRepo}
}

var _ portssvc.PermissionSvcFacade = (*permissionEvaluator)(nil)

// CanAct implements portssvc.PermissionSvcFacade.
func (s *permissionEvaluator) CanAct(ctx context.Context, document *domain.Document, actorUserID string) (bool, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to load actor for permission check",
			slog.String("actor_user_id", actorUserID),
			slog.String("document_id", document.DocumentID))
		return false, fmt.Errorf("failed to load actor %s: %w", actorUserID, err)
	}

	if !actor.IsActive {
		return false, nil
	}

	if actor.IsAdmin() {
		return true, nil
	}

	if document.AssignedToUserID != nil && *document.AssignedToUserID == actorUserID {
		return true, nil
	}

	if document.CreatedBy == actorUserID && document.Status == domain.StatusDraft {
		return true, nil
	}

	requiredRole, ok := domain.RequiredRoleForStatus(document.Status)
	if !ok {
		return false, nil
	}
	return actor.HasRole(requiredRole), nil
}
