package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("database: not found")
	// ErrConstraintConflict indicates an insert collided with a uniqueness constraint.
	ErrConstraintConflict = errors.New("database: constraint conflict")
	// ErrStoreFailure indicates the store rejected a statement for any other reason.
	ErrStoreFailure = errors.New("database: store failure")
	// ErrInvariantViolation indicates stored data contradicts an invariant the
	// caller cannot resolve on its own, e.g. an ambiguous file move.
	ErrInvariantViolation = errors.New("database: invariant violation")
)

// classify maps a driver error onto the package sentinels, keeping op and
// the original error in the chain.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrConstraintConflict, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
}
