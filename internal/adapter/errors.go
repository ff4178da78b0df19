package adapter

import "errors"

var (
	// ErrDeliveryFailed wraps every mailer failure.
	ErrDeliveryFailed = errors.New("email delivery failed")
	// ErrUnknownTemplate is returned for an unregistered subject key.
	ErrUnknownTemplate = errors.New("unknown email template")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)
