package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-dashboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService verifies credentials and manages account registration.
type AuthService interface {
	// Login consults the rate limiter, verifies the credentials and mints a
	// session. It returns ErrRateLimited, ErrInvalidCredentials or an
	// *EmailNotVerifiedError for rejected attempts.
	Login(ctx context.Context, req models.LoginRequest, ip string) (models.Session, error)

	// VerifyCredentials checks an identifier (email or username) and
	// password pair and maintains the lockout counters.
	VerifyCredentials(ctx context.Context, identifier, password string, rememberMe bool) (models.Identity, error)

	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error

	// ResendVerification never reveals whether the address is registered.
	ResendVerification(ctx context.Context, req models.ResendVerificationRequest) error
}

// SessionService mints and refreshes signed session tokens.
type SessionService interface {
	Mint(ctx context.Context, identity models.Identity) (models.Session, error)

	// Refresh validates the token, enforces the idle limit, resyncs the
	// identity fields from the user record when they are stale and stamps
	// the activity time. Any rejection is ErrSessionExpired.
	Refresh(ctx context.Context, token string) (models.Session, error)

	IdleLimit(rememberMe bool) time.Duration
}

// PasswordResetService implements the reset token lifecycle.
type PasswordResetService interface {
	CreatePasswordResetToken(ctx context.Context, userID int64) (models.IssuedToken, error)
	FindValidPasswordResetToken(ctx context.Context, rawToken string) (models.OneTimeToken, error)

	// RequestPasswordReset emails a reset link when the identifier matches an
	// account. It returns nil whether or not it does.
	RequestPasswordReset(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// AccountService reads and updates the signed-in user's account.
type AccountService interface {
	GetAccount(ctx context.Context, userID int64) (models.User, error)
	UpdateAccount(ctx context.Context, userID int64, req models.AccountUpdateRequest) (models.User, error)
}

// WeatherService backs the dashboard weather widget.
type WeatherService interface {
	CurrentWeather(ctx context.Context, city string) (models.Weather, error)
}

// AppInfoService reports the build and the health of dependencies.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	BuildInfo(ctx context.Context) models.VersionResponse
	Health(ctx context.Context) error
}
