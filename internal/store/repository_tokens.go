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

// queryRower is satisfied by *DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// tokenTable implements the storage shared by password reset and email
// verification tokens. Both tables have the same shape and the same
// "one unused token per user" rule.
type tokenTable struct {
	db    *DB
	table string
}

// replace deletes the owner's unused tokens and inserts token, in one
// transaction.
func (t tokenTable) replace(ctx context.Context, token models.OneTimeToken) (models.OneTimeToken, error) {
	deleteQuery, deleteArgs, err := t.db.builder.
		Delete(t.table).
		Where(sq.Eq{"user_id": token.UserID}).
		Where(sq.Eq{"used_at": nil}).
		ToSql()
	if err != nil {
		return models.OneTimeToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	insertQuery, insertArgs, err := t.db.builder.
		Insert(t.table).
		Columns("token_hash", "user_id", "expires").
		Values(token.TokenHash, token.UserID, token.Expires.UTC()).
		Suffix("RETURNING " + strings.Join(tokenColumns, ", ")).
		ToSql()
	if err != nil {
		return models.OneTimeToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.OneTimeToken
	err = t.db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		var scanErr error
		created, scanErr = scanToken(tx.QueryRowContext(ctx, insertQuery, insertArgs...))
		if scanErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
		}
		return nil
	})
	if err != nil {
		return models.OneTimeToken{}, err
	}

	return created, nil
}

func (t tokenTable) findByHash(ctx context.Context, runner queryRower, tokenHash string) (models.OneTimeToken, error) {
	query, args, err := t.db.builder.
		Select(tokenColumns...).
		From(t.table).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return models.OneTimeToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	token, err := scanToken(runner.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.OneTimeToken{}, ErrNotFound
	case err != nil:
		return models.OneTimeToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return token, nil
}

func (t tokenTable) delete(ctx context.Context, tokenID int64) error {
	query, args, err := t.db.builder.
		Delete(t.table).
		Where(sq.Eq{"id": tokenID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// consume marks the token used only while it is unused and unexpired.
func (t tokenTable) consume(ctx context.Context, tx *sql.Tx, token models.OneTimeToken, now time.Time) error {
	query, args, err := t.db.builder.
		Update(t.table).
		Set("used_at", now.UTC()).
		Where(sq.Eq{"id": token.ID}).
		Where(sq.Eq{"user_id": token.UserID}).
		Where(sq.Eq{"used_at": nil}).
		Where(sq.Gt{"expires": now.UTC()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTokenAlreadyUsed
	}

	return nil
}

// sweepSiblings deletes the owner's other unused tokens.
func (t tokenTable) sweepSiblings(ctx context.Context, tx *sql.Tx, token models.OneTimeToken) error {
	query, args, err := t.db.builder.
		Delete(t.table).
		Where(sq.Eq{"user_id": token.UserID}).
		Where(sq.Eq{"used_at": nil}).
		Where(sq.NotEq{"id": token.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// markEmailVerified stamps email_verified unless it is already set.
func markEmailVerified(ctx context.Context, db *DB, tx *sql.Tx, userID int64, now time.Time) error {
	query, args, err := db.builder.
		Update(usersTable).
		Set("email_verified", sq.Expr("COALESCE(email_verified, ?)", now.UTC())).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// passwordResetRepository implements [PasswordResetRepository].
type passwordResetRepository struct {
	tokens tokenTable
	logger *logger.Logger
}

// NewPasswordResetRepository constructs a [PasswordResetRepository].
func NewPasswordResetRepository(db *DB, logger *logger.Logger) PasswordResetRepository {
	logger.Debug().Msg("creating password reset repository")
	return &passwordResetRepository{
		tokens: tokenTable{db: db, table: passwordResetTable},
		logger: logger,
	}
}

func (r *passwordResetRepository) CreateResetToken(ctx context.Context, token models.OneTimeToken) (models.OneTimeToken, error) {
	created, err := r.tokens.replace(ctx, token)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*passwordResetRepository.CreateResetToken").Int64("user_id", token.UserID).Msg("error creating reset token")
		return models.OneTimeToken{}, err
	}

	return created, nil
}

func (r *passwordResetRepository) FindResetTokenByHash(ctx context.Context, tokenHash string) (models.OneTimeToken, error) {
	var token models.OneTimeToken
	err := r.tokens.db.withReadRetry(ctx, func() error {
		var err error
		token, err = r.tokens.findByHash(ctx, r.tokens.db, tokenHash)
		return err
	})
	if err != nil {
		return models.OneTimeToken{}, err
	}

	return token, nil
}

func (r *passwordResetRepository) DeleteResetToken(ctx context.Context, tokenID int64) error {
	return r.tokens.delete(ctx, tokenID)
}

// RedeemResetToken consumes the token, replaces the password hash, clears
// the lockout, stamps email_verified when unset and deletes the owner's
// other unused tokens. All of it commits or none of it does.
func (r *passwordResetRepository) RedeemResetToken(ctx context.Context, redemption models.PasswordRedemption) error {
	db := r.tokens.db
	now := redemption.Now.UTC()

	token := models.OneTimeToken{ID: redemption.TokenID, UserID: redemption.UserID}

	updateUser, updateArgs, err := db.builder.
		Update(usersTable).
		Set("password_hash", redemption.PasswordHash).
		Set("password_changed_at", now).
		Set("failed_logins", 0).
		Set("locked_until", nil).
		Set("email_verified", sq.Expr("COALESCE(email_verified, ?)", now)).
		Where(sq.Eq{"id": redemption.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		if err := r.tokens.consume(ctx, tx, token, now); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, updateUser, updateArgs...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrNotFound
		}

		return r.tokens.sweepSiblings(ctx, tx, token)
	})
	if err != nil && !errors.Is(err, ErrTokenAlreadyUsed) {
		logger.FromContext(ctx).Err(err).Str("func", "*passwordResetRepository.RedeemResetToken").Int64("user_id", redemption.UserID).Msg("error redeeming reset token")
	}

	return err
}

// verificationTokenRepository implements [VerificationTokenRepository].
type verificationTokenRepository struct {
	tokens tokenTable
	logger *logger.Logger
}

// NewVerificationTokenRepository constructs a [VerificationTokenRepository].
func NewVerificationTokenRepository(db *DB, logger *logger.Logger) VerificationTokenRepository {
	logger.Debug().Msg("creating verification token repository")
	return &verificationTokenRepository{
		tokens: tokenTable{db: db, table: emailVerificationsTable},
		logger: logger,
	}
}

func (r *verificationTokenRepository) CreateVerificationToken(ctx context.Context, token models.OneTimeToken) (models.OneTimeToken, error) {
	created, err := r.tokens.replace(ctx, token)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*verificationTokenRepository.CreateVerificationToken").Int64("user_id", token.UserID).Msg("error creating verification token")
		return models.OneTimeToken{}, err
	}

	return created, nil
}

// RedeemVerificationToken returns [ErrNotFound], [ErrTokenAlreadyUsed] or
// [ErrTokenExpired] for tokens that cannot be redeemed. Expired tokens are
// deleted.
func (r *verificationTokenRepository) RedeemVerificationToken(ctx context.Context, tokenHash string, now time.Time) (int64, error) {
	db := r.tokens.db
	now = now.UTC()

	var token models.OneTimeToken
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		token, err = r.tokens.findByHash(ctx, tx, tokenHash)
		if err != nil {
			return err
		}

		if token.UsedAt != nil {
			return ErrTokenAlreadyUsed
		}
		if !token.Usable(now) {
			return ErrTokenExpired
		}

		if err = r.tokens.consume(ctx, tx, token, now); err != nil {
			return err
		}
		if err = markEmailVerified(ctx, db, tx, token.UserID, now); err != nil {
			return err
		}

		return r.tokens.sweepSiblings(ctx, tx, token)
	})

	if errors.Is(err, ErrTokenExpired) {
		if delErr := r.tokens.delete(ctx, token.ID); delErr != nil {
			logger.FromContext(ctx).Err(delErr).Str("func", "*verificationTokenRepository.RedeemVerificationToken").Msg("error deleting expired token")
		}
		return 0, err
	}
	if err != nil {
		return 0, err
	}

	return token.UserID, nil
}
