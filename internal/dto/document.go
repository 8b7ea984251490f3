package dto

import (
	"time"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Document DTOs ---

// CreateDocumentRequest defines data for registering a new document.
type CreateDocumentRequest struct {
	DocumentTypeCode string           `json:"documentTypeCode" binding:"required"`
	GrossAmount      *decimal.Decimal `json:"grossAmount,omitempty"`
	CurrencyCode     string           `json:"currencyCode" binding:"required,iso4217"`
}

// DocumentResponse defines data returned for a document.
type DocumentResponse struct {
	DocumentID       string           `json:"documentID"`
	ArchiveNumber    string           `json:"archiveNumber"`
	DocumentTypeCode string           `json:"documentTypeCode"`
	Status           string           `json:"status"`
	StatusLabel      string           `json:"statusLabel"`
	GrossAmount      *decimal.Decimal `json:"grossAmount,omitempty"`
	CurrencyCode     string           `json:"currencyCode"`
	CompanyID        string           `json:"companyID"`
	AssignedToUserID *string          `json:"assignedToUserID,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	CreatedBy        string           `json:"createdBy"`
	LastUpdatedAt    time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy    string           `json:"lastUpdatedBy"`
}

// ToDocumentResponse converts domain.Document to DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       d.DocumentID,
		ArchiveNumber:    d.ArchiveNumber,
		DocumentTypeCode: d.DocumentTypeCode,
		Status:           string(d.Status),
		StatusLabel:      d.Status.DisplayLabel(),
		GrossAmount:      d.GrossAmount,
		CurrencyCode:     d.CurrencyCode,
		CompanyID:        d.CompanyID,
		AssignedToUserID: d.AssignedToUserID,
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
		LastUpdatedAt:    d.LastUpdatedAt,
		LastUpdatedBy:    d.LastUpdatedBy,
	}
}

// ListDocumentsParams holds filters for listing documents.
type ListDocumentsParams struct {
	Status           *domain.DocumentStatus
	AssignedToUserID *string
	Limit            int
	Offset           int
}

// ListDocumentsResponse wraps a list of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToListDocumentsResponse converts a slice of domain.Document to DTO.
func ToListDocumentsResponse(ds []domain.Document) ListDocumentsResponse {
	list := make([]DocumentResponse, len(ds))
	for i, d := range ds {
		list[i] = ToDocumentResponse(&d)
	}
	return ListDocumentsResponse{Documents: list}
}

// --- Audit history DTOs ---

// AuditEntryResponse defines data returned for one audit trail entry.
type AuditEntryResponse struct {
	EntryID     string    `json:"entryID"`
	DocumentID  string    `json:"documentID"`
	ActorUserID string    `json:"actorUserID"`
	Action      string    `json:"action"`
	OldValue    *string   `json:"oldValue,omitempty"`
	NewValue    *string   `json:"newValue,omitempty"`
	Comment     *string   `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToAuditEntryResponses converts a slice of domain.AuditEntry to DTOs.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	list := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		list[i] = AuditEntryResponse{
			EntryID:     e.EntryID,
			DocumentID:  e.DocumentID,
			ActorUserID: e.ActorUserID,
			Action:      string(e.Action),
			OldValue:    e.OldValue,
			NewValue:    e.NewValue,
			Comment:     e.Comment,
			CreatedAt:   e.CreatedAt,
		}
	}
	return list
}

// DocumentHistoryResponse wraps a document's audit trail.
type DocumentHistoryResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// --- Comment thread DTOs ---

// CommentResponse defines data returned for one comment.
type CommentResponse struct {
	CommentID    string    `json:"commentID"`
	DocumentID   string    `json:"documentID"`
	AuthorUserID string    `json:"authorUserID"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToCommentResponses converts a slice of domain.Comment to DTOs.
func ToCommentResponses(comments []domain.Comment) []CommentResponse {
	list := make([]CommentResponse, len(comments))
	for i, c := range comments {
		list[i] = CommentResponse{
			CommentID:    c.CommentID,
			DocumentID:   c.DocumentID,
			AuthorUserID: c.AuthorUserID,
			Body:         c.Body,
			CreatedAt:    c.CreatedAt,
		}
	}
	return list
}

// DocumentCommentsResponse wraps a document's comment thread.
type DocumentCommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}
