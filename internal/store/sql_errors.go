package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// uniqueViolation maps a unique constraint failure on users to
// ErrEmailTaken or ErrUsernameTaken. It returns nil for any other error.
func uniqueViolation(err error) error {
	var constraint string

	var pgErr *pgconn.PgError
	var sqliteErr sqlite3.Error
	switch {
	case errors.As(err, &pgErr):
		if pgErr.Code != pgerrcode.UniqueViolation {
			return nil
		}
		constraint = pgErr.ConstraintName
	case errors.As(err, &sqliteErr):
		if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
			return nil
		}
		constraint = sqliteErr.Error()
	default:
		return nil
	}

	switch {
	case strings.Contains(constraint, "email"):
		return ErrEmailTaken
	case strings.Contains(constraint, "username"):
		return ErrUsernameTaken
	}

	return nil
}
