package service

import (
	"github.com/MKhiriev/go-dashboard/internal/adapter"
	"github.com/MKhiriev/go-dashboard/internal/audit"
	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/ratelimit"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/validators"
	"github.com/MKhiriev/go-dashboard/models"
)

type Services struct {
	AuthService          AuthService
	SessionService       SessionService
	PasswordResetService PasswordResetService
	AccountService       AccountService
	WeatherService       WeatherService
	AppInfoService       AppInfoService
}

// Dependencies are the collaborators the services are built from.
type Dependencies struct {
	Storages     *store.Storages
	Limiter      ratelimit.LoginLimiter
	Mailer       adapter.Mailer
	Weather      adapter.WeatherProvider
	Audit        audit.Publisher
	HealthChecks []HealthCheck
	BuildInfo    models.AppBuildInfo
}

func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	validator := validators.NewAuthValidator()
	users := deps.Storages.UserRepository

	sessions := NewSessionService(users, cfg, logger)

	auth, err := NewAuthService(users, deps.Storages.VerificationTokenRepository, deps.Limiter, sessions, deps.Mailer, deps.Audit, validator, cfg, logger)
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, deps.BuildInfo, deps.HealthChecks, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:          auth,
		SessionService:       sessions,
		PasswordResetService: NewPasswordResetService(users, deps.Storages.PasswordResetRepository, deps.Mailer, deps.Audit, validator, cfg, logger),
		AccountService:       NewAccountService(users, validator, cfg.App, logger),
		WeatherService:       NewWeatherService(deps.Weather, logger),
		AppInfoService:       appInfo,
	}, nil
}
