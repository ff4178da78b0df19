package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/models"
)

// HealthCheck is a named dependency probe.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type appInfoService struct {
	appVersion string
	buildInfo  models.AppBuildInfo
	checks     []HealthCheck

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, checks []HealthCheck, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		buildInfo:  buildInfo,
		checks:     checks,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) BuildInfo(ctx context.Context) models.VersionResponse {
	resp := s.buildInfo.VersionResponse()
	resp.Version = s.appVersion
	return resp
}

// Health returns the first failing dependency.
func (s *appInfoService) Health(ctx context.Context) error {
	for _, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			logger.FromContext(ctx).Err(err).Str("dependency", check.Name).Msg("health check failed")
			return fmt.Errorf("%w: %s: %w", ErrUnhealthy, check.Name, err)
		}
	}
	return nil
}
