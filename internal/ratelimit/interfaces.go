package ratelimit

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/ratelimit_mock.go -package=mock

// LoginLimiter decides whether a login attempt from ip may proceed.
// Implementations never return an error; backend failures allow the attempt.
type LoginLimiter interface {
	CheckLoginRateLimit(ctx context.Context, ip string) Result
}
