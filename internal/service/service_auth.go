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
	"github.com/MKhiriev/go-dashboard/internal/ratelimit"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/internal/validators"
	"github.com/MKhiriev/go-dashboard/models"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	users         store.UserRepository
	verifications store.VerificationTokenRepository
	limiter       ratelimit.LoginLimiter
	sessions      SessionService
	mailer        adapter.Mailer
	audit         audit.Publisher
	validator     validators.Validator

	// dummyHash is compared against when no usable account matched, so
	// every rejection pays for one bcrypt comparison.
	dummyHash string

	bcryptCost       int
	lockoutThreshold int
	lockoutDuration  time.Duration
	verificationTTL  time.Duration
	baseURL          string

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService. It precomputes the dummy hash at
// the configured bcrypt cost, which is the only way construction can fail.
func NewAuthService(
	users store.UserRepository,
	verifications store.VerificationTokenRepository,
	limiter ratelimit.LoginLimiter,
	sessions SessionService,
	mailer adapter.Mailer,
	publisher audit.Publisher,
	validator validators.Validator,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (AuthService, error) {
	seed, err := utils.GenerateRawToken()
	if err != nil {
		return nil, err
	}
	dummyHash, err := utils.HashPassword(seed, cfg.App.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error computing dummy hash: %w", err)
	}

	return &authService{
		users:            users,
		verifications:    verifications,
		limiter:          limiter,
		sessions:         sessions,
		mailer:           mailer,
		audit:            publisher,
		validator:        validator,
		dummyHash:        dummyHash,
		bcryptCost:       cfg.App.BcryptCost,
		lockoutThreshold: cfg.Auth.LockoutThreshold,
		lockoutDuration:  cfg.Auth.LockoutDuration,
		verificationTTL:  cfg.Auth.VerificationTokenTTL,
		baseURL:          cfg.App.BaseURL,
		now:              time.Now,
		logger:           logger,
	}, nil
}

// Login runs the rate limiter before anything touches the credential store.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, ip string) (models.Session, error) {
	log := logger.FromContext(ctx)

	limit := a.limiter.CheckLoginRateLimit(ctx, ip)
	if !limit.Allowed {
		log.Warn().Str("ip", ip).Time("reset_at", limit.ResetAt).Msg("login rate limited")
		a.audit.Publish(ctx, models.AuditEvent{Type: models.AuditLoginRateLimited, IP: ip, At: a.now().UTC()})
		return models.Session{}, ErrRateLimited
	}

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	identity, err := a.VerifyCredentials(ctx, req.Identifier, req.Password, req.RememberMe)
	if err != nil {
		return models.Session{}, err
	}

	session, err := a.sessions.Mint(ctx, identity)
	if err != nil {
		return models.Session{}, err
	}

	a.audit.Publish(ctx, models.AuditEvent{Type: models.AuditLoginSucceeded, UserID: identity.UserID, IP: ip, At: a.now().UTC()})
	return session, nil
}

// VerifyCredentials implements the lockout-aware credential check.
//
// Unknown identifiers and locked accounts are compared against the dummy
// hash, so every rejection costs one bcrypt comparison. Locked attempts do
// not count toward the lockout.
func (a *authService) VerifyCredentials(ctx context.Context, identifier, password string, rememberMe bool) (models.Identity, error) {
	log := logger.FromContext(ctx)
	now := a.now()

	user, err := findUserByIdentifier(ctx, a.users, identifier)
	found := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Err(err).Msg("user lookup failed during login")
		return models.Identity{}, fmt.Errorf("user lookup failed: %w", err)
	}

	locked := found && user.IsLocked(now)

	hash := a.dummyHash
	if found && !locked {
		hash = user.PasswordHash
	}

	match, err := utils.CheckPassword(hash, password)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("stored password hash is unusable")
		match = false
	}

	switch {
	case !found:
		a.rejected(ctx, 0, identifier, "unknown identifier")
		return models.Identity{}, ErrInvalidCredentials
	case locked:
		a.rejected(ctx, user.UserID, identifier, "account locked")
		return models.Identity{}, ErrInvalidCredentials
	case !match:
		a.recordFailure(ctx, user, now)
		a.rejected(ctx, user.UserID, identifier, "wrong password")
		return models.Identity{}, ErrInvalidCredentials
	}

	if user.EmailVerified == nil {
		log.Info().Int64("user_id", user.UserID).Msg("login with unverified email")
		return models.Identity{}, &EmailNotVerifiedError{Email: user.Email}
	}

	if user.FailedLogins > 0 || user.LockedUntil != nil {
		if err = a.users.ResetLoginFailures(ctx, user.UserID); err != nil {
			log.Err(err).Int64("user_id", user.UserID).Msg("error resetting login failures")
			return models.Identity{}, fmt.Errorf("error resetting login failures: %w", err)
		}
	}

	return user.Identity(rememberMe), nil
}

func (a *authService) recordFailure(ctx context.Context, user models.User, now time.Time) {
	failures, err := a.users.RecordFailedLogin(ctx, user.UserID, a.lockoutThreshold, now.Add(a.lockoutDuration))
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Msg("error recording failed login")
		return
	}

	if failures.LockedUntil != nil && failures.LockedUntil.After(now) && failures.FailedLogins >= a.lockoutThreshold {
		logger.FromContext(ctx).Warn().Int64("user_id", user.UserID).Time("locked_until", *failures.LockedUntil).Msg("account locked")
		a.audit.Publish(ctx, models.AuditEvent{Type: models.AuditAccountLocked, UserID: user.UserID, At: now.UTC()})
	}
}

func (a *authService) rejected(ctx context.Context, userID int64, identifier, reason string) {
	logger.FromContext(ctx).Info().Int64("user_id", userID).Str("reason", reason).Msg("login rejected")
	a.audit.Publish(ctx, models.AuditEvent{
		Type:       models.AuditLoginFailed,
		UserID:     userID,
		Identifier: strings.TrimSpace(identifier),
		Reason:     reason,
		At:         a.now().UTC(),
	})
}

// Register creates an unverified STANDARD account and emails the
// verification link. A delivery failure is returned as ErrDeliveryFailed;
// the account stays and the user can ask for a new link.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	now := a.now().UTC()
	user, err := a.users.CreateUser(ctx, models.User{
		Email:             normalizeEmail(req.Email),
		Username:          strings.TrimSpace(req.Username),
		Name:              strings.TrimSpace(req.Name),
		PasswordHash:      hash,
		Role:              models.RoleStandard,
		PasswordChangedAt: now,
		CreatedAt:         now,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) || errors.Is(err, store.ErrUsernameTaken) {
			return models.User{}, err
		}
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.audit.Publish(ctx, models.AuditEvent{Type: models.AuditUserRegistered, UserID: user.UserID, At: now})

	if err = a.sendVerification(ctx, user); err != nil {
		return user, err
	}

	return user, nil
}

func (a *authService) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error {
	if err := a.validator.Validate(ctx, req); err != nil {
		return ErrTokenInvalid
	}

	userID, err := a.verifications.RedeemVerificationToken(ctx, utils.HashToken(strings.TrimSpace(req.Token)), a.now())
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrTokenAlreadyUsed), errors.Is(err, store.ErrTokenExpired):
		return ErrTokenInvalid
	case err != nil:
		logger.FromContext(ctx).Err(err).Msg("error redeeming verification token")
		return fmt.Errorf("error redeeming verification token: %w", err)
	}

	a.audit.Publish(ctx, models.AuditEvent{Type: models.AuditEmailVerified, UserID: userID, At: a.now().UTC()})
	return nil
}

func (a *authService) ResendVerification(ctx context.Context, req models.ResendVerificationRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByEmail(ctx, normalizeEmail(req.Email))
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info().Msg("verification resend for unknown email")
		return nil
	case err != nil:
		log.Err(err).Msg("user lookup failed during verification resend")
		return nil
	case user.EmailVerified != nil:
		log.Info().Int64("user_id", user.UserID).Msg("verification resend for verified email")
		return nil
	}

	if err = a.sendVerification(ctx, user); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("verification resend failed")
	}
	return nil
}

func (a *authService) sendVerification(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	issued, record, err := newOneTimeToken(user.UserID, a.now(), a.verificationTTL)
	if err != nil {
		return err
	}
	if _, err = a.verifications.CreateVerificationToken(ctx, record); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error storing verification token")
		return fmt.Errorf("error storing verification token: %w", err)
	}

	err = a.mailer.SendEmail(ctx, user.Email, adapter.TemplateVerifyEmail, adapter.EmailData{
		Name:      user.Name,
		Link:      link(a.baseURL, "/auth/verify-email", issued.RawToken),
		ExpiresIn: humanDuration(a.verificationTTL),
	})
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error sending verification email")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	return nil
}
