package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports a 23505. With constraint names, only those constraints match.
func IsUniqueViolation(err error, constraints ...string) bool {
	return hasCode(err, UniqueViolation, constraints)
}

// IsForeignKeyViolation reports a 23503. With constraint names, only those constraints match.
func IsForeignKeyViolation(err error, constraints ...string) bool {
	return hasCode(err, ForeignKeyViolation, constraints)
}

// IsCheckViolation reports a 23514. With constraint names, only those constraints match.
func IsCheckViolation(err error, constraints ...string) bool {
	return hasCode(err, CheckViolation, constraints)
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func hasCode(err error, code string, constraints []string) bool {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
