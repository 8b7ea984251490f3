package repositories

import (
	"context"
	"time"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
)

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves a specific document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByCompany retrieves documents for a company, optionally
	// filtered by status and/or assignee.
	ListDocumentsByCompany(ctx context.Context, companyID string, status *domain.DocumentStatus, assignedToUserID *string, limit int, offset int) ([]domain.Document, error)

	// ArchiveNumberExists reports whether any document already carries the archive number.
	ArchiveNumberExists(ctx context.Context, archiveNumber string) (bool, error)

	// CountDocumentsForDay counts documents created on the given day for a
	// company and document type. Seeds archive number probing.
	CountDocumentsForDay(ctx context.Context, companyID string, documentTypeCode string, day time.Time) (int, error)
}

// DocumentWriter defines write operations for document data
type DocumentWriter interface {
	// SaveDocument persists a new document.
	SaveDocument(ctx context.Context, document domain.Document) error

	// SaveTransition persists a workflow transition atomically: the document's
	// new status and assignment, every audit entry, and the optional comment
	// commit as one unit or not at all.
	SaveTransition(ctx context.Context, transition domain.Transition) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
