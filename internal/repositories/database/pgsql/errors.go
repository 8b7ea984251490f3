package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes we care about.
const (
	uniqueViolationCode = "23505"
)

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
