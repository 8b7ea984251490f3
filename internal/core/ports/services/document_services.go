package services

import (
	"context"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

// DocumentSvcFacade covers document intake and read paths around the
// workflow engine.
type DocumentSvcFacade interface {
	// CreateDocument allocates an archive number and registers the document
	// in Draft, owned by the creator.
	CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)

	// GetDocumentByID retrieves a document scoped to a company.
	GetDocumentByID(ctx context.Context, companyID string, documentID string, requestingUserID string) (*domain.Document, error)

	// ListDocuments retrieves documents for a company with optional filters.
	ListDocuments(ctx context.Context, companyID string, requestingUserID string, params dto.ListDocumentsParams) ([]domain.Document, error)

	// GetDocumentHistory returns the document's audit trail, oldest first.
	GetDocumentHistory(ctx context.Context, companyID string, documentID string, requestingUserID string) ([]domain.AuditEntry, error)

	// GetDocumentComments returns the document's comment thread, oldest
	// first, including the rejection markers written by the workflow engine.
	GetDocumentComments(ctx context.Context, companyID string, documentID string, requestingUserID string) ([]domain.Comment, error)
}
