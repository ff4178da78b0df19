package service

import (
	"errors"

	"github.com/MKhiriev/go-dashboard/internal/store"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrRateLimited is returned by Login when the client IP exhausted its
	// attempt budget.
	ErrRateLimited = errors.New("too many login attempts")

	// ErrInvalidCredentials covers unknown identifiers, wrong passwords and
	// locked accounts alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotVerified is matched by [*EmailNotVerifiedError].
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrTokenInvalid covers missing, expired and already used one-time tokens.
	ErrTokenInvalid = errors.New("token is invalid or expired")

	// ErrSessionExpired means the session token must be treated as absent.
	ErrSessionExpired = errors.New("session expired")

	// ErrDeliveryFailed is returned when a required email could not be sent.
	ErrDeliveryFailed = errors.New("email delivery failed")

	ErrEmailTaken    = store.ErrEmailTaken
	ErrUsernameTaken = store.ErrUsernameTaken

	ErrCityNotFound          = errors.New("city not found")
	ErrWeatherUnavailable    = errors.New("weather service unavailable")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrUnhealthy             = errors.New("dependency is unhealthy")
)

// EmailNotVerifiedError is returned when the password matched but the
// address was never confirmed. It carries the address so the client can
// offer to resend the verification email.
type EmailNotVerifiedError struct {
	Email string
}

func (e *EmailNotVerifiedError) Error() string {
	return ErrEmailNotVerified.Error()
}

// Is makes errors.Is(err, ErrEmailNotVerified) match.
func (e *EmailNotVerifiedError) Is(target error) bool {
	return target == ErrEmailNotVerified
}
