package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document mirrors the documents table.
type Document struct {
	DocumentID       string           `db:"document_id"`
	ArchiveNumber    string           `db:"archive_number"`
	DocumentTypeCode string           `db:"document_type_code"`
	Status           string           `db:"status"`
	GrossAmount      *decimal.Decimal `db:"gross_amount"`
	CurrencyCode     string           `db:"currency_code"`
	CompanyID        string           `db:"company_id"`
	AssignedToUserID *string          `db:"assigned_to_user_id"`
	AuditFields
}

// AuditEntry mirrors the document_audit_log table.
type AuditEntry struct {
	EntryID     string    `db:"entry_id"`
	DocumentID  string    `db:"document_id"`
	ActorUserID string    `db:"actor_user_id"`
	Action      string    `db:"action"`
	OldValue    *string   `db:"old_value"`
	NewValue    *string   `db:"new_value"`
	Comment     *string   `db:"comment"`
	CreatedAt   time.Time `db:"created_at"`
}

// Comment mirrors the document_comments table.
type Comment struct {
	CommentID    string    `db:"comment_id"`
	DocumentID   string    `db:"document_id"`
	AuthorUserID string    `db:"author_user_id"`
	Body         string    `db:"body"`
	CreatedAt    time.Time `db:"created_at"`
}
