package email

import "assistant-agents/internal/common/config"

type Config struct {
	Region      string
	FromAddress string
}

func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Region:      cfg.Providers.Email.Region,
		FromAddress: cfg.Providers.Email.FromAddress,
	}
}

// Configured reports whether real delivery is possible.
func (c *Config) Configured() bool {
	return c.Region != "" && c.FromAddress != ""
}
