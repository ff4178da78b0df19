package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-dashboard/internal/adapter"
	"github.com/MKhiriev/go-dashboard/internal/audit"
	"github.com/MKhiriev/go-dashboard/internal/cache"
	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/handler"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/ratelimit"
	"github.com/MKhiriev/go-dashboard/internal/server"
	"github.com/MKhiriev/go-dashboard/internal/service"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/workers"
	"github.com/MKhiriev/go-dashboard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const healthProbeInterval = 10 * time.Second

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("go-dashboard")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("error reading .env file")
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	redisClient := ratelimit.NewRedisClient(cfg.Storage.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	mailer, err := adapter.NewMailer(cfg.Mailer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}

	weatherCache := cache.NewTTL[string, models.Weather](cfg.Weather.CacheTTL, time.Now)
	weather, err := adapter.NewWeatherProvider(cfg.Weather, weatherCache, time.Now, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating weather provider")
	}

	publisher := audit.NewPublisher(cfg.Audit, log)
	defer publisher.Close()

	services, err := service.NewServices(service.Dependencies{
		Storages:     storages,
		Limiter:      ratelimit.New(redisClient, cfg.RateLimit, log),
		Mailer:       mailer,
		Weather:      weather,
		Audit:        publisher,
		HealthChecks: healthChecks(storages, redisClient),
		BuildInfo:    buildInfo,
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	var bg []workers.Worker
	if cfg.Weather.CacheTTL > 0 {
		bg = append(bg, workers.Periodic("weather-cache-sweep", cfg.Weather.CacheTTL, func(context.Context) {
			if n := weatherCache.Purge(); n > 0 {
				log.Debug().Int("evicted", n).Msg("weather cache swept")
			}
		}, log))
	}
	if handlers.GRPC != nil {
		bg = append(bg, workers.Periodic("grpc-health-probe", healthProbeInterval, handlers.GRPC.ProbeHealth, log))
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(log, bg...), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// healthChecks lists the dependencies /healthz and the gRPC health service
// report on. Redis is included only when configured; the limiter fails open
// without it, so its absence is not an outage.
func healthChecks(storages *store.Storages, redisClient redis.UniversalClient) []service.HealthCheck {
	checks := []service.HealthCheck{
		{Name: "database", Ping: storages.UserRepository.Ping},
	}
	if redisClient != nil {
		checks = append(checks, service.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	return checks
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
