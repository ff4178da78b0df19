package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a lookup by email, username, id or token
	// hash matches no row.
	ErrNotFound = errors.New("record was not found")

	// ErrEmailTaken is returned when an insert or update collides with the
	// unique email constraint.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUsernameTaken is returned when an insert or update collides with the
	// case-insensitive unique username index.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrTokenAlreadyUsed is returned by redemption when the conditional
	// update matched no unused, unexpired token.
	ErrTokenAlreadyUsed = errors.New("token already used or expired")

	// ErrTokenExpired is returned by verification redemption for a token
	// past its expiry. The row is deleted.
	ErrTokenExpired = errors.New("token expired")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrUnsupportedDriver is returned for an unknown database driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
