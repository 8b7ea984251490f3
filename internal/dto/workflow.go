package dto

import (
	"github.com/irodasoft/docuflow_app/internal/core/domain"
)

// --- Workflow action DTOs ---

// AdvanceDocumentRequest carries the optional payload for advancing a document.
type AdvanceDocumentRequest struct {
	AssignToUserID *string `json:"assignToUserID,omitempty"`
	Comment        *string `json:"comment,omitempty"`
}

// RejectDocumentRequest carries the mandatory rejection reason.
type RejectDocumentRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}

// DelegateDocumentRequest carries the mandatory delegation target.
type DelegateDocumentRequest struct {
	TargetUserID string  `json:"targetUserID" binding:"required"`
	Comment      *string `json:"comment,omitempty"`
}

// StepBackDocumentRequest carries the optional payload for stepping a document back.
type StepBackDocumentRequest struct {
	AssignToUserID *string `json:"assignToUserID,omitempty"`
	Comment        *string `json:"comment,omitempty"`
}

// WorkflowResult reports the outcome of a successful workflow action.
type WorkflowResult struct {
	Success          bool                  `json:"success"`
	Message          string                `json:"message"`
	Status           domain.DocumentStatus `json:"status"`
	StatusLabel      string                `json:"statusLabel"`
	AssignedToUserID *string               `json:"assignedToUserID,omitempty"`
}
