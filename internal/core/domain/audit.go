package domain

import "time"

// AuditAction tags an audit entry with the kind of change it records.
type AuditAction string

const (
	AuditCreated       AuditAction = "CREATED"
	AuditStatusChanged AuditAction = "STATUS_CHANGED"
	AuditAssigned      AuditAction = "ASSIGNED"
	AuditRejected      AuditAction = "REJECTED"
	AuditDelegated     AuditAction = "DELEGATED"
)

// AuditEntry is one immutable record of a state or assignment change.
// Entries are append-only; the engine never reads them back.
type AuditEntry struct {
	EntryID     string      `json:"entryID"` // Primary Key (e.g., UUID)
	DocumentID  string      `json:"documentID"`
	ActorUserID string      `json:"actorUserID"`
	Action      AuditAction `json:"action"`
	OldValue    *string     `json:"oldValue,omitempty"`
	NewValue    *string     `json:"newValue,omitempty"`
	Comment     *string     `json:"comment,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Comment is one entry in a document's comment thread. The workflow engine
// writes comments only when rejecting, quoting the rejection reason.
type Comment struct {
	CommentID    string    `json:"commentID"` // Primary Key (e.g., UUID)
	DocumentID   string    `json:"documentID"`
	AuthorUserID string    `json:"authorUserID"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Transition is the full effect of one workflow action: the document with its
// new status/assignment applied, the audit entries describing the change, and
// for rejections the synthetic comment. Persisted as a single unit.
type Transition struct {
	Document     Document
	AuditEntries []AuditEntry
	Comment      *Comment
}
