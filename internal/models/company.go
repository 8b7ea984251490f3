package models

// Company mirrors the companies table.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Initial   string `db:"initial"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
