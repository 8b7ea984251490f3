package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	"github.com/irodasoft/docuflow_app/internal/models"
)

type PgxCompanyRepository struct {
	db *pgxpool.Pool
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{db: db}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func toDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Initial:   m.Initial,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
        SELECT company_id, name, initial, is_active, created_at, created_by, last_updated_at, last_updated_by
        FROM companies
        WHERE company_id = $1;
    `
	var m models.Company
	err := r.db.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.Name,
		&m.Initial,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}
	company := toDomainCompany(m)
	return &company, nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
        INSERT INTO companies (company_id, name, initial, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (company_id) DO UPDATE SET
            name = EXCLUDED.name,
            initial = EXCLUDED.initial,
            is_active = EXCLUDED.is_active,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.Initial,
		company.IsActive,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}
