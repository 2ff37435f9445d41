package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"wikitree/internal/domain/repositories"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgSerializationError checks if error is a serialization failure.
// Concurrent writers under REPEATABLE READ get this instead of a lost update.
func IsPgSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 40001 = serialization_failure
		return pgErr.Code == "40001"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// mapError tags uniqueness and serialization failures with their
// repositories sentinels.
func mapError(err error) error {
	switch {
	case IsPgDuplicateError(err):
		return fmt.Errorf("%w: %w", repositories.ErrUniqueViolation, err)
	case IsPgSerializationError(err):
		return fmt.Errorf("%w: %w", repositories.ErrSerializationFailure, err)
	}
	return err
}
