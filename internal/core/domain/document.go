package domain

import "github.com/shopspring/decimal"

// DocumentStatus is the state of a document in the approval pipeline.
type DocumentStatus string

const (
	StatusDraft            DocumentStatus = "DRAFT"
	StatusPendingApproval  DocumentStatus = "PENDING_APPROVAL"
	StatusElevatedApproval DocumentStatus = "ELEVATED_APPROVAL"
	StatusAccountant       DocumentStatus = "ACCOUNTANT"
	StatusDone             DocumentStatus = "DONE"
	StatusRejected         DocumentStatus = "REJECTED"
)

// DocumentTypeInvoice is the type code that forces elevated review and the
// accountant step regardless of amount.
const DocumentTypeInvoice = "INVOICE"

// stepBackTargets maps each status to the status a step-back returns to.
// Draft and the terminal statuses have no step-back target.
var stepBackTargets = map[DocumentStatus]DocumentStatus{
	StatusPendingApproval:  StatusDraft,
	StatusElevatedApproval: StatusPendingApproval,
	StatusAccountant:       StatusElevatedApproval,
}

// statusRoleRequirements maps a status to the role that may act on documents
// sitting in it (beyond the assignee and admins).
var statusRoleRequirements = map[DocumentStatus]UserRole{
	StatusPendingApproval:  RoleApprover,
	StatusElevatedApproval: RoleElevatedApprover,
	StatusAccountant:       RoleAccountant,
}

var statusDisplayLabels = map[DocumentStatus]string{
	StatusDraft:            "Draft",
	StatusPendingApproval:  "Pending approval",
	StatusElevatedApproval: "Elevated approval",
	StatusAccountant:       "Accountant review",
	StatusDone:             "Done",
	StatusRejected:         "Rejected",
}

// IsValid reports whether s is one of the defined statuses.
func (s DocumentStatus) IsValid() bool {
	_, ok := statusDisplayLabels[s]
	return ok
}

// IsTerminal reports whether no further workflow action is legal from s.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusRejected
}

// CanAdvance reports whether a document in s may move forward.
func (s DocumentStatus) CanAdvance() bool {
	return s.IsValid() && !s.IsTerminal()
}

// CanReject reports whether a document in s may be rejected.
func (s DocumentStatus) CanReject() bool {
	return s.IsValid() && !s.IsTerminal()
}

// CanDelegate reports whether a document in s may be handed to another user.
func (s DocumentStatus) CanDelegate() bool {
	return s.IsValid() && !s.IsTerminal()
}

// StepBackTarget returns the status a step-back from s lands on.
// The second return is false when s has no step-back target.
func (s DocumentStatus) StepBackTarget() (DocumentStatus, bool) {
	target, ok := stepBackTargets[s]
	return target, ok
}

// RequiredRoleForStatus returns the role that may act on documents in s.
// The second return is false for statuses with no role mapping (Draft and the
// terminal statuses).
func RequiredRoleForStatus(s DocumentStatus) (UserRole, bool) {
	role, ok := statusRoleRequirements[s]
	return role, ok
}

// DisplayLabel returns the user-facing label for s. Carries no behavioral weight.
func (s DocumentStatus) DisplayLabel() string {
	if label, ok := statusDisplayLabels[s]; ok {
		return label
	}
	return string(s)
}

// Document is a business document moving through the approval pipeline.
// The workflow engine mutates only Status and AssignedToUserID; content
// fields belong to the upload/edit flows.
type Document struct {
	DocumentID       string           `json:"documentID"` // Primary Key (e.g., UUID)
	ArchiveNumber    string           `json:"archiveNumber"`
	DocumentTypeCode string           `json:"documentTypeCode"`
	Status           DocumentStatus   `json:"status"`
	GrossAmount      *decimal.Decimal `json:"grossAmount"` // Nullable until value-validated
	CurrencyCode     string           `json:"currencyCode"`
	CompanyID        string           `json:"companyID"`
	AssignedToUserID *string          `json:"assignedToUserID"`
	AuditFields                       // CreatedBy is the uploading user
}

// IsInvoice reports whether the document is invoice-typed.
func (d *Document) IsInvoice() bool {
	return d.DocumentTypeCode == DocumentTypeInvoice
}
