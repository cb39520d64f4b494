package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/database"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
)

const sampleResponse = `{
	"name": "Boston",
	"main": {"temp": 21.5, "feels_like": 22.0, "humidity": 55},
	"weather": [{"main": "Clear", "description": "clear sky"}],
	"wind": {"speed": 3.2}
}`

const rainyResponse = `{
	"name": "Seattle",
	"main": {"temp": 14.0, "feels_like": 12.5, "humidity": 88},
	"weather": [{"main": "Rain", "description": "light rain"}],
	"wind": {"speed": 5.0},
	"rain": {"1h": 0.8}
}`

func newTestHandler(t *testing.T, baseURL string, cache *database.RedisClient) *Handler {
	t.Helper()
	cfg := &Config{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Timeout:     2 * time.Second,
		CacheTTL:    5 * time.Minute,
		DefaultCity: "New York",
	}
	if baseURL == "" {
		cfg.APIKey = ""
	}
	return NewHandler(ServiceDependencies{Logger: logger.NewTestLogger(t), Cache: cache}, cfg)
}

func newCache(t *testing.T) *database.RedisClient {
	t.Helper()
	mr := miniredis.RunT(t)
	return &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
}

func TestExecute_LiveProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Boston", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		fmt.Fprint(w, sampleResponse)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	result := h.Execute(context.Background(), capability.Params{"city": "Boston"})

	require.True(t, result.Success)
	assert.False(t, result.Synthetic)

	report, ok := result.Data["report"].(models.WeatherReport)
	require.True(t, ok)
	assert.Equal(t, "Boston", report.City)
	assert.InDelta(t, 21.5, report.Temperature, 1e-9)
	assert.Equal(t, "clear", report.Condition)
	assert.False(t, report.Precipitation)
}

func TestExecute_RainDetected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rainyResponse)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	result := h.Execute(context.Background(), capability.Params{"city": "Seattle"})

	require.True(t, result.Success)
	report := result.Data["report"].(models.WeatherReport)
	assert.True(t, report.Precipitation)
	assert.Equal(t, "rain", report.Condition)
}

func TestExecute_UnconfiguredFallsBackToSynthetic(t *testing.T) {
	h := newTestHandler(t, "", nil)
	result := h.Execute(context.Background(), capability.Params{"city": "Boston"})

	require.True(t, result.Success, "missing provider degrades, never fails")
	assert.True(t, result.Synthetic)

	report := result.Data["report"].(models.WeatherReport)
	assert.True(t, report.Synthetic)
	assert.Equal(t, "Boston", report.City)
}

func TestExecute_ProviderErrorFallsBackToSynthetic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	result := h.Execute(context.Background(), capability.Params{"city": "Boston"})

	require.True(t, result.Success)
	assert.True(t, result.Synthetic)
}

func TestExecute_DefaultCityApplied(t *testing.T) {
	var requestedCity string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedCity = r.URL.Query().Get("q")
		fmt.Fprint(w, sampleResponse)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, nil)
	result := h.Execute(context.Background(), capability.Params{})

	require.True(t, result.Success)
	assert.Equal(t, "New York", requestedCity)
}

func TestExecute_CacheServesSecondCall(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, sampleResponse)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL, newCache(t))

	first := h.Execute(context.Background(), capability.Params{"city": "Boston"})
	require.True(t, first.Success)
	second := h.Execute(context.Background(), capability.Params{"city": "Boston"})
	require.True(t, second.Success)

	assert.Equal(t, 1, hits, "second lookup must hit the cache")
	assert.Equal(t, first.Data["temperature"], second.Data["temperature"])
}

func TestSyntheticReport_DeterministicPerDay(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(3 * time.Hour)

	a := SyntheticReport("Boston", now)
	b := SyntheticReport("Boston", later)
	assert.Equal(t, a, b, "same city and day must yield the same report")

	other := SyntheticReport("Chicago", now)
	assert.Equal(t, "Chicago", other.City)
	assert.True(t, other.Synthetic)
}
