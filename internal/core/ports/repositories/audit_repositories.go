package repositories

import (
	"context"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
)

// AuditAppender defines the append-only write side of the audit trail.
// Entries are never updated or deleted once written.
type AuditAppender interface {
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}

// AuditReader defines the read side of the audit trail, consumed by the
// history endpoint only, never by the workflow engine.
type AuditReader interface {
	ListAuditEntriesByDocument(ctx context.Context, documentID string) ([]domain.AuditEntry, error)
}

// AuditRepositoryFacade combines the audit trail interfaces
type AuditRepositoryFacade interface {
	AuditAppender
	AuditReader
}

// CommentAppender defines the append-only write side of the comment stream.
type CommentAppender interface {
	AppendComment(ctx context.Context, comment domain.Comment) error
}

// CommentReader defines the read side of the comment stream.
type CommentReader interface {
	ListCommentsByDocument(ctx context.Context, documentID string) ([]domain.Comment, error)
}

// CommentRepositoryFacade combines the comment stream interfaces
type CommentRepositoryFacade interface {
	CommentAppender
	CommentReader
}
