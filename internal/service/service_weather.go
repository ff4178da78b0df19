package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-dashboard/internal/adapter"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/models"
)

type weatherService struct {
	provider adapter.WeatherProvider
	logger   *logger.Logger
}

func NewWeatherService(provider adapter.WeatherProvider, logger *logger.Logger) WeatherService {
	return &weatherService{provider: provider, logger: logger}
}

func (s *weatherService) CurrentWeather(ctx context.Context, city string) (models.Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" || len(city) > 100 {
		return models.Weather{}, ErrInvalidDataProvided
	}

	weather, err := s.provider.CurrentWeather(ctx, city)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return models.Weather{}, ErrCityNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("city", city).Msg("weather lookup failed")
		return models.Weather{}, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}

	return weather, nil
}
