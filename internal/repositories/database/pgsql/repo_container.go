package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo: newPgxDocumentRepository(dbPool),
		TeamRepo:     newPgxTeamRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
		CommentRepo:  newPgxCommentRepository(dbPool),
	}
}
