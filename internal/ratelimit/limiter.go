package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
)

const loginKeyPrefix = "login:"

// slidingWindowScript trims the window, records the attempt when there is
// room and reports {allowed, count, resetAtMs}.
//
// KEYS[1] window key
// ARGV[1] now (ms), ARGV[2] window (ms), ARGV[3] limit, ARGV[4] member
const slidingWindowScript = `
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", now - window)

local count = redis.call("ZCARD", KEYS[1])
local allowed = 0
if count < limit then
  redis.call("ZADD", KEYS[1], now, ARGV[4])
  count = count + 1
  allowed = 1
end
redis.call("PEXPIRE", KEYS[1], window)

local reset = now + window
local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
if oldest[2] then
  reset = tonumber(oldest[2]) + window
end

return {allowed, count, reset}
`

var slidingWindowLua = redis.NewScript(slidingWindowScript)

// Result is the outcome of a single limiter check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter is the Redis implementation of [LoginLimiter].
type Limiter struct {
	redis   redis.UniversalClient
	limit   int
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
	logger  *logger.Logger
}

// Option customizes a [Limiter].
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a [Limiter]. A nil client yields a limiter that always allows.
func New(client redis.UniversalClient, cfg config.RateLimit, log *logger.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		redis:   client,
		limit:   cfg.LoginLimit,
		window:  cfg.LoginWindow,
		timeout: cfg.Timeout,
		now:     time.Now,
		logger:  log,
	}
	for _, opt := range opts {
		opt(l)
	}

	if client == nil {
		log.Warn().Str("func", "ratelimit.New").Msg("redis is not configured, login rate limiting is disabled")
	}

	return l
}

// NewRedisClient returns nil when no address is configured.
func NewRedisClient(cfg config.Redis) redis.UniversalClient {
	if cfg.Address == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// CheckLoginRateLimit implements [LoginLimiter].
func (l *Limiter) CheckLoginRateLimit(ctx context.Context, ip string) Result {
	now := l.now()

	if l.redis == nil {
		return l.open(now)
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	result, err := l.check(ctx, loginKeyPrefix+ip, now)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*Limiter.CheckLoginRateLimit").Str("ip", ip).Msg("rate limiter unavailable, allowing login attempt")
		return l.open(now)
	}

	return result
}

func (l *Limiter) check(ctx context.Context, key string, now time.Time) (Result, error) {
	nowMs := now.UnixMilli()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	reply, err := slidingWindowLua.Run(ctx, l.redis, []string{key},
		strconv.FormatInt(nowMs, 10),
		strconv.FormatInt(l.window.Milliseconds(), 10),
		strconv.Itoa(l.limit),
		member,
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	if len(reply) != 3 {
		return Result{}, fmt.Errorf("%w: %v", ErrUnexpectedReply, reply)
	}

	remaining := l.limit - int(reply[1])
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   reply[0] == 1,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   time.UnixMilli(reply[2]).UTC(),
	}, nil
}

func (l *Limiter) open(now time.Time) Result {
	return Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit,
		ResetAt:   now.Add(l.window),
	}
}
