package social

import "assistant-agents/internal/common/config"

// MaxMessageLength bounds a single post.
const MaxMessageLength = 280

type Config struct {
	Region   string
	TopicARN string
}

func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Region:   cfg.Providers.Social.Region,
		TopicARN: cfg.Providers.Social.TopicARN,
	}
}

// Configured reports whether real publishing is possible.
func (c *Config) Configured() bool {
	return c.Region != "" && c.TopicARN != ""
}
