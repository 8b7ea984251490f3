package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	"github.com/irodasoft/docuflow_app/internal/models"
)

type PgxCommentRepository struct {
	db *pgxpool.Pool
}

func newPgxCommentRepository(db *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{db: db}
}

// Ensure PgxCommentRepository implements portsrepo.CommentRepositoryFacade
var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

func (r *PgxCommentRepository) AppendComment(ctx context.Context, comment domain.Comment) error {
	query := `
        INSERT INTO document_comments (comment_id, document_id, author_user_id, body, created_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.db.Exec(ctx, query,
		comment.CommentID,
		comment.DocumentID,
		comment.AuthorUserID,
		comment.Body,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append comment: %w", err)
	}
	return nil
}

func (r *PgxCommentRepository) ListCommentsByDocument(ctx context.Context, documentID string) ([]domain.Comment, error) {
	query := `
        SELECT comment_id, document_id, author_user_id, body, created_at
        FROM document_comments
        WHERE document_id = $1
        ORDER BY created_at ASC, comment_id ASC;
    `
	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var m models.Comment
		if err := rows.Scan(&m.CommentID, &m.DocumentID, &m.AuthorUserID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, domain.Comment{
			CommentID:    m.CommentID,
			DocumentID:   m.DocumentID,
			AuthorUserID: m.AuthorUserID,
			Body:         m.Body,
			CreatedAt:    m.CreatedAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", rows.Err())
	}
	return comments, nil
}
