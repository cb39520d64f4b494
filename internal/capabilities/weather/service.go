package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assistant-agents/internal/common/database"
	"assistant-agents/internal/common/errors"
	httpclient "assistant-agents/internal/common/http"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
)

type ServiceDependencies struct {
	Logger logger.Logger
	Cache  *database.RedisClient // optional, nil disables caching
}

type Service struct {
	config *Config
	client *httpclient.Client
	cache  *database.RedisClient
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		client: httpclient.NewClient(config.Timeout),
		cache:  deps.Cache,
		logger: deps.Logger,
	}
}

// GetWeather returns the current report for a city. Cache first, then the
// live provider. Returns a ProviderUnavailable error when no provider is
// configured or the call fails; the handler decides the synthetic fallback.
func (s *Service) GetWeather(ctx context.Context, city string) (models.WeatherReport, error) {
	if report, ok := s.cached(ctx, city); ok {
		return report, nil
	}

	if !s.config.Configured() {
		return models.WeatherReport{}, errors.NewProviderUnavailableError("weather", nil)
	}

	report, err := s.fetch(ctx, city)
	if err != nil {
		return models.WeatherReport{}, errors.NewProviderUnavailableError("weather", err)
	}

	s.store(ctx, city, report)
	return report, nil
}

func (s *Service) fetch(ctx context.Context, city string) (models.WeatherReport, error) {
	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		strings.TrimRight(s.config.BaseURL, "/"),
		url.QueryEscape(city),
		s.config.APIKey,
	)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.client.DoWithContext(ctx, req)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherReport{}, fmt.Errorf("weather provider returned %d", resp.StatusCode)
	}

	var raw openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.WeatherReport{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return normalize(city, raw), nil
}

func normalize(city string, raw openWeatherResponse) models.WeatherReport {
	condition := "unknown"
	if len(raw.Weather) > 0 {
		condition = strings.ToLower(raw.Weather[0].Main)
	}

	return models.WeatherReport{
		City:          city,
		Temperature:   raw.Main.Temp,
		FeelsLike:     raw.Main.FeelsLike,
		Humidity:      raw.Main.Humidity,
		Precipitation: len(raw.Rain) > 0 || len(raw.Snow) > 0 || condition == "rain" || condition == "snow" || condition == "drizzle" || condition == "thunderstorm",
		Condition:     condition,
		WindSpeed:     raw.Wind.Speed,
	}
}

func (s *Service) cached(ctx context.Context, city string) (models.WeatherReport, bool) {
	if s.cache == nil {
		return models.WeatherReport{}, false
	}

	payload, err := s.cache.Get(ctx, cacheKey(city))
	if err != nil {
		return models.WeatherReport{}, false
	}

	var report models.WeatherReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		s.logger.Warn("corrupt weather cache entry dropped", map[string]interface{}{
			"city":  city,
			"error": err.Error(),
		})
		_ = s.cache.Del(ctx, cacheKey(city))
		return models.WeatherReport{}, false
	}
	return report, true
}

func (s *Service) store(ctx context.Context, city string, report models.WeatherReport) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(city), string(payload), s.config.CacheTTL); err != nil {
		s.logger.Warn("failed to cache weather report", map[string]interface{}{
			"city":  city,
			"error": err.Error(),
		})
	}
}

func cacheKey(city string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city))
}

// SyntheticReport builds a deterministic stand-in report when no provider is
// reachable. The same city always yields the same conditions so repeated
// queries stay coherent within a session.
func SyntheticReport(city string, now time.Time) models.WeatherReport {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(city)))
	h.Write([]byte(now.Format("2006-01-02")))
	seed := h.Sum32()

	conditions := []string{"clear", "clouds", "rain", "clear", "clouds"}
	condition := conditions[seed%uint32(len(conditions))]

	return models.WeatherReport{
		City:          city,
		Temperature:   10 + float64(seed%20), // 10..29 C
		FeelsLike:     10 + float64(seed%20),
		Humidity:      40 + int(seed%40),
		Precipitation: condition == "rain",
		Condition:     condition,
		WindSpeed:     float64(seed % 10),
		Synthetic:     true,
	}
}
