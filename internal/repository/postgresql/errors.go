package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes mapped to domain errors.
const (
	uniqueViolation           = "23505"
	checkViolation            = "23514"
	invalidTextRepresentation = "22P02"
)

// isNotFound treats a missing row and an id that does not parse as a uuid
// the same way.
func isNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
