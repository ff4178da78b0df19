// Package ratelimit implements the login rate limiter: a Redis sliding
// window of accepted attempts keyed by client IP.
//
// # Window semantics
//
// Every accepted attempt is a member of the sorted set "login:<ip>" scored
// by its timestamp in milliseconds. Members older than the window are
// trimmed before counting, so only attempts in the trailing interval count
// toward the limit. Rejected attempts are not recorded.
//
// # Degraded mode
//
// The limiter fails open: when Redis is not configured, unreachable, or
// slower than the configured timeout, the attempt is allowed and a warning
// is logged.
package ratelimit
