// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// uniqueViolation reports whether err is a unique constraint failure from
// either driver. detail names the violated index or column where the
// driver reports one.
func uniqueViolation(err error) (detail string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint, pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Error(), liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return "", false
}

// writeError turns a unique violation from an insert or update that lost a
// race past the name check into ErrConflict. Anything else is wrapped.
func writeError(op string, err error) error {
	if _, ok := uniqueViolation(err); ok {
		return ErrConflict
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// userWriteError is writeError for the users table, which has two unique
// columns
func userWriteError(err error) error {
	detail, ok := uniqueViolation(err)
	switch {
	case !ok:
		return fmt.Errorf("failed to insert user: %w", err)
	case strings.Contains(detail, "email"):
		return ErrEmailTaken
	default:
		return ErrUsernameTaken
	}
}
