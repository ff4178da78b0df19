package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-dashboard/internal/cache"
	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/models"
)

// openWeatherResponse is the subset of the /data/2.5/weather payload we read.
type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type openWeatherProvider struct {
	client *utils.HTTPClient
	apiKey string
	cache  *cache.TTL[string, models.Weather]
	now    func() time.Time
	logger *logger.Logger
}

// NewWeatherProvider returns an OpenWeatherMap [WeatherProvider] whose
// responses are kept in c. Pass nil for now to use time.Now.
func NewWeatherProvider(cfg config.Weather, c *cache.TTL[string, models.Weather], now func() time.Time, log *logger.Logger) (WeatherProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weather base url: %w", err)
	}
	if now == nil {
		now = time.Now
	}

	return &openWeatherProvider{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout, cfg.RatePerSecond),
		apiKey: cfg.APIKey,
		cache:  c,
		now:    now,
		logger: log,
	}, nil
}

// CurrentWeather implements [WeatherProvider]. Cities are cached
// case-insensitively.
func (p *openWeatherProvider) CurrentWeather(ctx context.Context, city string) (models.Weather, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	var payload openWeatherResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     city,
			"appid": p.apiKey,
			"units": "metric",
		}).
		SetResult(&payload).
		Get("/data/2.5/weather")
	if err != nil {
		return models.Weather{}, fmt.Errorf("weather request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*openWeatherProvider.CurrentWeather").Str("city", city).Msg("weather api returned an error")
		return models.Weather{}, err
	}

	weather := models.Weather{
		City:        payload.Name,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		FetchedAt:   p.now().UTC(),
	}
	if len(payload.Weather) > 0 {
		weather.Description = payload.Weather[0].Description
		weather.Icon = payload.Weather[0].Icon
	}

	p.cache.Set(key, weather)
	return weather, nil
}
