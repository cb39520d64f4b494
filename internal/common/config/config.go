// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig                   `mapstructure:"app"`
	Logging      LoggingConfig               `mapstructure:"logging"`
	Router       RouterConfig                `mapstructure:"router"`
	Fusion       FusionConfig                `mapstructure:"fusion"`
	Capabilities map[string]CapabilityConfig `mapstructure:"capabilities"`
	Providers    ProvidersConfig             `mapstructure:"providers"`
}

// --- Core App Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RouterConfig holds intent-routing settings.
type RouterConfig struct {
	DefaultCity string `mapstructure:"default_city"`
}

// FusionConfig holds decision-fusion settings.
type FusionConfig struct {
	EvaluatorTimeout time.Duration `mapstructure:"evaluator_timeout"`
	LookaheadHours   int           `mapstructure:"lookahead_hours"`
	HistorySize      int           `mapstructure:"history_size"`
}

// CapabilityConfig holds the core settings applicable to every capability.
type CapabilityConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// --- Provider Configuration ---

type ProvidersConfig struct {
	Weather       WeatherProviderConfig `mapstructure:"weather"`
	Calendar      CalendarConfig        `mapstructure:"calendar"`
	Email         EmailConfig           `mapstructure:"email"`
	Social        SocialConfig          `mapstructure:"social"`
	Redis         RedisConfig           `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig   `mapstructure:"elasticsearch"`
}

// WeatherProviderConfig configures the weather HTTP API. An empty APIKey
// switches the capability to synthetic data.
type WeatherProviderConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// CalendarConfig configures the event store. Postgres is optional; the
// in-memory store is used when Host is empty.
type CalendarConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// EmailConfig configures SES delivery. An empty Region or FromAddress
// degrades the email capability to preview mode.
type EmailConfig struct {
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
}

// SocialConfig configures SNS publishing. An empty TopicARN degrades the
// social capability to preview mode.
type SocialConfig struct {
	Region   string `mapstructure:"region"`
	TopicARN string `mapstructure:"topic_arn"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// Enabled reports whether the decision index is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return len(e.Addresses) > 0
}
