package http

import (
	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/service"
)

type Handler struct {
	services *service.Services

	// secureCookies marks the session cookie Secure.
	secureCookies bool
	// trustProxyHeaders installs middleware.RealIP.
	trustProxyHeaders bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Bool("trust_proxy_headers", cfg.Server.TrustProxyHeaders).Msg("http handler created")
	return &Handler{
		services:          services,
		secureCookies:     cfg.App.SecureCookies,
		trustProxyHeaders: cfg.Server.TrustProxyHeaders,
		logger:            logger,
	}
}
