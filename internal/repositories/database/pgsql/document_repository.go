package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	"github.com/irodasoft/docuflow_app/internal/models"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{BaseRepository{Pool: db}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryWithTx
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

// Helper to convert domain.Document to models.Document
func toModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:       d.DocumentID,
		ArchiveNumber:    d.ArchiveNumber,
		DocumentTypeCode: d.DocumentTypeCode,
		Status:           string(d.Status),
		GrossAmount:      d.GrossAmount,
		CurrencyCode:     d.CurrencyCode,
		CompanyID:        d.CompanyID,
		AssignedToUserID: d.AssignedToUserID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Document to domain.Document
func toDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:       m.DocumentID,
		ArchiveNumber:    m.ArchiveNumber,
		DocumentTypeCode: m.DocumentTypeCode,
		Status:           domain.DocumentStatus(m.Status),
		GrossAmount:      m.GrossAmount,
		CurrencyCode:     m.CurrencyCode,
		CompanyID:        m.CompanyID,
		AssignedToUserID: m.AssignedToUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const documentColumns = `document_id, archive_number, document_type_code, status, gross_amount, currency_code, company_id, assigned_to_user_id, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.ArchiveNumber,
		&m.DocumentTypeCode,
		&m.Status,
		&m.GrossAmount,
		&m.CurrencyCode,
		&m.CompanyID,
		&m.AssignedToUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	m := toModelDocument(document)
	query := `
        INSERT INTO documents (` + documentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.ArchiveNumber,
		m.DocumentTypeCode,
		m.Status,
		m.GrossAmount,
		m.CurrencyCode,
		m.CompanyID,
		m.AssignedToUserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: archive number %s already taken", apperrors.ErrDuplicate, m.ArchiveNumber)
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by ID %s: %w", documentID, err)
	}
	d := toDomainDocument(m)
	return &d, nil
}

func (r *PgxDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, status *domain.DocumentStatus, assignedToUserID *string, limit int, offset int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1`
	args := []any{companyID}
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if assignedToUserID != nil {
		args = append(args, *assignedToUserID)
		query += fmt.Sprintf(" AND assigned_to_user_id = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	documents := []domain.Document{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		documents = append(documents, toDomainDocument(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}
	return documents, nil
}

func (r *PgxDocumentRepository) ArchiveNumberExists(ctx context.Context, archiveNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE archive_number = $1);`,
		archiveNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to probe archive number %s: %w", archiveNumber, err)
	}
	return exists, nil
}

func (r *PgxDocumentRepository) CountDocumentsForDay(ctx context.Context, companyID string, documentTypeCode string, day time.Time) (int, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	var count int
	err := r.Pool.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM documents
        WHERE company_id = $1
          AND document_type_code = $2
          AND created_at >= $3
          AND created_at < $4;
    `, companyID, documentTypeCode, dayStart, dayStart.AddDate(0, 0, 1)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents for day: %w", err)
	}
	return count, nil
}

// SaveTransition persists the document update, the audit entries and the
// optional comment within a single DB transaction.
func (r *PgxDocumentRepository) SaveTransition(ctx context.Context, transition domain.Transition) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction is committed successfully.
	defer r.Rollback(ctx, tx)

	m := toModelDocument(transition.Document)
	tag, err := tx.Exec(ctx, `
        UPDATE documents
        SET status = $2,
            assigned_to_user_id = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE document_id = $1;
    `,
		m.DocumentID,
		m.Status,
		m.AssignedToUserID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s", apperrors.ErrNotFound, m.DocumentID)
	}

	batch := &pgx.Batch{}
	auditQuery := `
        INSERT INTO document_audit_log (entry_id, document_id, actor_user_id, action, old_value, new_value, comment, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	for _, entry := range transition.AuditEntries {
		batch.Queue(auditQuery,
			entry.EntryID,
			entry.DocumentID,
			entry.ActorUserID,
			string(entry.Action),
			entry.OldValue,
			entry.NewValue,
			entry.Comment,
			entry.CreatedAt,
		)
	}
	if transition.Comment != nil {
		batch.Queue(`
            INSERT INTO document_comments (comment_id, document_id, author_user_id, body, created_at)
            VALUES ($1, $2, $3, $4, $5);
        `,
			transition.Comment.CommentID,
			transition.Comment.DocumentID,
			transition.Comment.AuthorUserID,
			transition.Comment.Body,
			transition.Comment.CreatedAt,
		)
	}
	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert transition record %d for document %s: %w", i, m.DocumentID, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close transition batch: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}
