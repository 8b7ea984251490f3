package domain

import "time"

// Company represents an isolated tenant owning documents and approver teams.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (e.g., UUID)
	Name      string `json:"name"`
	Initial   string `json:"initial"` // Short code used in archive numbers, e.g. "A"
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// ArchivePrefix returns the company component of archive numbers. Falls back
// to the first character of the name when no initial is configured.
func (c *Company) ArchivePrefix() string {
	if c.Initial != "" {
		return c.Initial
	}
	if c.Name == "" {
		return "X"
	}
	return string([]rune(c.Name)[0:1])
}

// UserCompany represents the membership of a User in a Company.
type UserCompany struct {
	UserID    string    `json:"userID"`    // FK -> users.user_id
	CompanyID string    `json:"companyID"` // FK -> companies.company_id
	JoinedAt  time.Time `json:"joinedAt"`
}
