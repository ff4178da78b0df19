package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. Queries are rendered by squirrel with the placeholder
// format of the connection's dialect.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "FindUserByEmail", sq.Eq{"email": email})
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "FindUserByUsername", sq.Expr("lower(username) = lower(?)", username))
}

func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "FindUserByID", sq.Eq{"id": userID})
}

func (r *userRepository) findOne(ctx context.Context, caller string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.withReadRetry(ctx, func() error {
		var scanErr error
		user, scanErr = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository."+caller).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// CreateUser inserts the account and returns it with the assigned id.
//
// Error handling:
//   - unique violation on email → [ErrEmailTaken].
//   - unique violation on lower(username) → [ErrUsernameTaken].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(usersTable).
		Columns("email", "username", "name", "password_hash", "role", "email_verified", "failed_logins", "password_changed_at", "created_at").
		Values(user.Email, user.Username, user.Name, user.PasswordHash, string(user.Role), nullTime(user.EmailVerified), 0, user.PasswordChangedAt.UTC(), user.CreatedAt.UTC()).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if taken := uniqueViolation(err); taken != nil {
			return models.User{}, taken
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// RecordFailedLogin increments failed_logins in a single UPDATE ... RETURNING
// so concurrent failures cannot overwrite each other.
func (r *userRepository) RecordFailedLogin(ctx context.Context, userID int64, threshold int, lockUntil time.Time) (models.LoginFailures, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(usersTable).
		Set("failed_logins", sq.Expr("failed_logins + 1")).
		Set("locked_until", sq.Expr(lockOnThreshold, threshold, lockUntil.UTC())).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING failed_logins, locked_until").
		ToSql()
	if err != nil {
		return models.LoginFailures{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		failures    models.LoginFailures
		lockedUntil dbTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&failures.FailedLogins, &lockedUntil)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.LoginFailures{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.RecordFailedLogin").Msg("error recording failed login")
		return models.LoginFailures{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	failures.LockedUntil = lockedUntil.Ptr()

	return failures, nil
}

func (r *userRepository) ResetLoginFailures(ctx context.Context, userID int64) error {
	query, args, err := r.db.builder.
		Update(usersTable).
		Set("failed_logins", 0).
		Set("locked_until", nil).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "ResetLoginFailures", query, args)
}

// UpdateProfile writes the non-nil fields with a single UPDATE and returns
// the stored record. An empty update only reads the record back.
func (r *userRepository) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	if update.Empty() {
		return r.FindUserByID(ctx, update.UserID)
	}

	log := logger.FromContext(ctx)

	builder := r.db.builder.Update(usersTable)
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
	}
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.PasswordHash != nil {
		builder = builder.
			Set("password_hash", *update.PasswordHash).
			Set("password_changed_at", update.PasswordChangedAt.UTC())
	}

	query, args, err := builder.
		Where(sq.Eq{"id": update.UserID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNotFound
	case err != nil:
		if taken := uniqueViolation(err); taken != nil {
			return models.User{}, taken
		}
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error updating profile")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

func (r *userRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// execOne executes a statement that must touch exactly one user row.
func (r *userRepository) execOne(ctx context.Context, caller, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository."+caller).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
