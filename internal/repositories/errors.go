package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint violations surfaced by the persistence layer.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateConstraint maps postgres constraint errors onto the repository
// sentinels so services never have to inspect driver error codes.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrUniqueViolation
		case pgForeignKeyViolation:
			return ErrForeignKeyViolation
		}
	}
	return err
}
