package config

import "time"

// Defaults applied before any configuration source is merged.
const (
	DefaultDriver                = DriverPostgres
	DefaultTokenIssuer           = "go-dashboard"
	DefaultBcryptCost            = 12
	DefaultLockoutThreshold      = 10
	DefaultLockoutDuration       = 15 * time.Minute
	DefaultIdleTimeout           = 30 * time.Minute
	DefaultRememberMeIdleTimeout = 24 * time.Hour
	DefaultRoleSyncInterval      = 5 * time.Second
	DefaultResetTokenTTL         = 30 * time.Minute
	DefaultVerificationTokenTTL  = 24 * time.Hour
	DefaultLoginLimit            = 5
	DefaultLoginWindow           = 10 * time.Minute
	DefaultRateLimitTimeout      = 300 * time.Millisecond
	DefaultHTTPAddress           = "localhost:8080"
	DefaultRequestTimeout        = 30 * time.Second
	DefaultAuditTopic            = "auth-audit"
)

// Supported values of [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer: DefaultTokenIssuer,
			BcryptCost:  DefaultBcryptCost,
		},
		Auth: Auth{
			LockoutThreshold:      DefaultLockoutThreshold,
			LockoutDuration:       DefaultLockoutDuration,
			IdleTimeout:           DefaultIdleTimeout,
			RememberMeIdleTimeout: DefaultRememberMeIdleTimeout,
			RoleSyncInterval:      DefaultRoleSyncInterval,
			ResetTokenTTL:         DefaultResetTokenTTL,
			VerificationTokenTTL:  DefaultVerificationTokenTTL,
		},
		Storage: Storage{
			DB: DB{Driver: DefaultDriver},
		},
		RateLimit: RateLimit{
			LoginLimit:  DefaultLoginLimit,
			LoginWindow: DefaultLoginWindow,
			Timeout:     DefaultRateLimitTimeout,
		},
		Mailer: Mailer{
			RequestTimeout: 10 * time.Second,
			RatePerSecond:  5,
		},
		Weather: Weather{
			BaseURL:        "https://api.openweathermap.org",
			CacheTTL:       10 * time.Minute,
			RequestTimeout: 5 * time.Second,
			RatePerSecond:  1,
		},
		Audit: Audit{
			Topic: DefaultAuditTopic,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}
