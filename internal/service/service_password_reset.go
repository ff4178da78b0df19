package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-dashboard/internal/adapter"
	"github.com/MKhiriev/go-dashboard/internal/audit"
	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/internal/validators"
	"github.com/MKhiriev/go-dashboard/models"
)

// passwordResetService only ever stores and compares token hashes.
type passwordResetService struct {
	users     store.UserRepository
	tokens    store.PasswordResetRepository
	mailer    adapter.Mailer
	audit     audit.Publisher
	validator validators.Validator

	ttl        time.Duration
	bcryptCost int
	baseURL    string

	now    func() time.Time
	logger *logger.Logger
}

func NewPasswordResetService(
	users store.UserRepository,
	tokens store.PasswordResetRepository,
	mailer adapter.Mailer,
	publisher audit.Publisher,
	validator validators.Validator,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) PasswordResetService {
	return &passwordResetService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		audit:      publisher,
		validator:  validator,
		ttl:        cfg.Auth.ResetTokenTTL,
		bcryptCost: cfg.App.BcryptCost,
		baseURL:    cfg.App.BaseURL,
		now:        time.Now,
		logger:     logger,
	}
}

// CreatePasswordResetToken replaces the user's unused tokens with a fresh one.
func (s *passwordResetService) CreatePasswordResetToken(ctx context.Context, userID int64) (models.IssuedToken, error) {
	issued, record, err := newOneTimeToken(userID, s.now(), s.ttl)
	if err != nil {
		return models.IssuedToken{}, err
	}

	if _, err = s.tokens.CreateResetToken(ctx, record); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error storing reset token")
		return models.IssuedToken{}, fmt.Errorf("error storing reset token: %w", err)
	}

	return issued, nil
}

// FindValidPasswordResetToken deletes the record as a side effect when it
// has expired.
func (s *passwordResetService) FindValidPasswordResetToken(ctx context.Context, rawToken string) (models.OneTimeToken, error) {
	log := logger.FromContext(ctx)

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return models.OneTimeToken{}, ErrTokenInvalid
	}

	token, err := s.tokens.FindResetTokenByHash(ctx, utils.HashToken(rawToken))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return models.OneTimeToken{}, ErrTokenInvalid
	case err != nil:
		log.Err(err).Msg("error looking up reset token")
		return models.OneTimeToken{}, fmt.Errorf("error looking up reset token: %w", err)
	}

	if token.UsedAt != nil {
		return models.OneTimeToken{}, ErrTokenInvalid
	}

	if !s.now().Before(token.Expires) {
		if err = s.tokens.DeleteResetToken(ctx, token.ID); err != nil {
			log.Err(err).Int64("token_id", token.ID).Msg("error deleting expired reset token")
		}
		return models.OneTimeToken{}, ErrTokenInvalid
	}

	return token, nil
}

func (s *passwordResetService) RequestPasswordReset(ctx context.Context, req models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := findUserByIdentifier(ctx, s.users, req.Identifier)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info().Msg("password reset requested for unknown identifier")
		return nil
	case err != nil:
		log.Err(err).Msg("user lookup failed during password reset request")
		return nil
	}

	issued, err := s.CreatePasswordResetToken(ctx, user.UserID)
	if err != nil {
		return nil
	}

	err = s.mailer.SendEmail(ctx, user.Email, adapter.TemplatePasswordReset, adapter.EmailData{
		Name:      user.Name,
		Link:      link(s.baseURL, "/auth/reset-password", issued.RawToken),
		ExpiresIn: humanDuration(s.ttl),
	})
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error sending password reset email")
		return nil
	}

	s.audit.Publish(ctx, models.AuditEvent{Type: models.AuditPasswordResetSent, UserID: user.UserID, At: s.now().UTC()})
	return nil
}

// ResetPassword redeems the token and replaces the password in one store
// transaction. A concurrent redemption of the same token loses with
// ErrTokenInvalid.
func (s *passwordResetService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		if errors.Is(err, validators.ErrEmptyToken) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	token, err := s.FindValidPasswordResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	err = s.tokens.RedeemResetToken(ctx, models.PasswordRedemption{
		TokenID:      token.ID,
		UserID:       token.UserID,
		PasswordHash: hash,
		Now:          s.now().UTC(),
	})
	switch {
	case errors.Is(err, store.ErrTokenAlreadyUsed), errors.Is(err, store.ErrNotFound):
		return ErrTokenInvalid
	case err != nil:
		log.Err(err).Int64("user_id", token.UserID).Msg("error redeeming reset token")
		return fmt.Errorf("error redeeming reset token: %w", err)
	}

	s.audit.Publish(ctx, models.AuditEvent{Type: models.AuditPasswordReset, UserID: token.UserID, At: s.now().UTC()})
	return nil
}
