package weather

import (
	"time"

	"assistant-agents/internal/common/config"
)

type Config struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	CacheTTL    time.Duration
	DefaultCity string
}

func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		BaseURL:     cfg.Providers.Weather.BaseURL,
		APIKey:      cfg.Providers.Weather.APIKey,
		Timeout:     cfg.Providers.Weather.Timeout,
		CacheTTL:    cfg.Providers.Weather.CacheTTL,
		DefaultCity: cfg.Router.DefaultCity,
	}
}

// Configured reports whether a live provider can be called.
func (c *Config) Configured() bool {
	return c.APIKey != "" && c.BaseURL != ""
}
