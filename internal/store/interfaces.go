package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-dashboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: account lookup, registration,
// lockout counters and profile writes.
type UserRepository interface {
	// FindUserByEmail matches the lowercase email exactly.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByUsername matches the username case-insensitively.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// CreateUser returns ErrEmailTaken or ErrUsernameTaken on collisions.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// RecordFailedLogin atomically increments the failure counter and sets
	// locked_until to lockUntil when the new count reaches threshold.
	RecordFailedLogin(ctx context.Context, userID int64, threshold int, lockUntil time.Time) (models.LoginFailures, error)
	// ResetLoginFailures zeroes the counter and clears locked_until.
	ResetLoginFailures(ctx context.Context, userID int64) error
	// UpdateProfile writes the non-nil fields of the update, including a
	// new password hash, in one statement.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)
	// Ping checks database reachability.
	Ping(ctx context.Context) error
}

// PasswordResetRepository persists hashed password reset tokens.
type PasswordResetRepository interface {
	// CreateResetToken deletes the owner's unused tokens and inserts the new
	// one in a single transaction.
	CreateResetToken(ctx context.Context, token models.OneTimeToken) (models.OneTimeToken, error)
	FindResetTokenByHash(ctx context.Context, tokenHash string) (models.OneTimeToken, error)
	DeleteResetToken(ctx context.Context, tokenID int64) error
	// RedeemResetToken consumes the token and replaces the password in one
	// transaction. A token that is already used or expired yields
	// ErrTokenAlreadyUsed and leaves the password untouched.
	RedeemResetToken(ctx context.Context, redemption models.PasswordRedemption) error
}

// VerificationTokenRepository persists hashed email verification tokens.
type VerificationTokenRepository interface {
	// CreateVerificationToken deletes the owner's unused tokens and inserts
	// the new one in a single transaction.
	CreateVerificationToken(ctx context.Context, token models.OneTimeToken) (models.OneTimeToken, error)
	// RedeemVerificationToken consumes the token and stamps email_verified
	// in one transaction, returning the owner's id.
	RedeemVerificationToken(ctx context.Context, tokenHash string, now time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
