package sqlite

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"wikitree/internal/domain/repositories"
)

// IsUniqueViolation checks if err is a UNIQUE or PRIMARY KEY constraint failure
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// mapError tags uniqueness failures with repositories.ErrUniqueViolation.
func mapError(err error) error {
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", repositories.ErrUniqueViolation, err)
	}
	return err
}
