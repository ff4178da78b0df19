package ratelimit

import "errors"

var (
	// ErrRedisUnavailable wraps backend failures before the limiter fails open.
	ErrRedisUnavailable = errors.New("rate limiter redis unavailable")

	// ErrUnexpectedReply is returned when the window script answers with an
	// unknown shape.
	ErrUnexpectedReply = errors.New("unexpected rate limiter reply")
)
