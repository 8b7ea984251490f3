package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	"github.com/irodasoft/docuflow_app/internal/models"
)

type PgxAuditRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{db: db}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func toDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:     m.EntryID,
		DocumentID:  m.DocumentID,
		ActorUserID: m.ActorUserID,
		Action:      domain.AuditAction(m.Action),
		OldValue:    m.OldValue,
		NewValue:    m.NewValue,
		Comment:     m.Comment,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *PgxAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	query := `
        INSERT INTO document_audit_log (entry_id, document_id, actor_user_id, action, old_value, new_value, comment, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		entry.EntryID,
		entry.DocumentID,
		entry.ActorUserID,
		string(entry.Action),
		entry.OldValue,
		entry.NewValue,
		entry.Comment,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditEntriesByDocument(ctx context.Context, documentID string) ([]domain.AuditEntry, error) {
	query := `
        SELECT entry_id, document_id, actor_user_id, action, old_value, new_value, comment, created_at
        FROM document_audit_log
        WHERE document_id = $1
        ORDER BY created_at ASC, entry_id ASC;
    `
	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.DocumentID,
			&m.ActorUserID,
			&m.Action,
			&m.OldValue,
			&m.NewValue,
			&m.Comment,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		entries = append(entries, toDomainAuditEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit entry rows: %w", rows.Err())
	}
	return entries, nil
}
