// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like WEATHER_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, ignored if not found
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from the locations the binary and tests run from.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig falls back to well-known environment variables for
// credentials that are commonly set outside the yaml files.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Providers.Weather.APIKey == "" {
		if val := os.Getenv("WEATHER_API_KEY"); val != "" {
			cfg.Providers.Weather.APIKey = val
		}
	}
	if cfg.Providers.Email.FromAddress == "" {
		if val := os.Getenv("ASSISTANT_FROM_ADDRESS"); val != "" {
			cfg.Providers.Email.FromAddress = val
		}
	}
	if cfg.Providers.Social.TopicARN == "" {
		if val := os.Getenv("SOCIAL_TOPIC_ARN"); val != "" {
			cfg.Providers.Social.TopicARN = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "assistant-agents"
	}
	if cfg.App.MetricsAddr == "" {
		cfg.App.MetricsAddr = ":9402"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Router.DefaultCity == "" {
		cfg.Router.DefaultCity = "New York"
	}
	if cfg.Fusion.EvaluatorTimeout <= 0 {
		cfg.Fusion.EvaluatorTimeout = 10 * time.Second
	}
	if cfg.Fusion.LookaheadHours <= 0 {
		cfg.Fusion.LookaheadHours = 48
	}
	if cfg.Fusion.HistorySize <= 0 {
		cfg.Fusion.HistorySize = 50
	}
	if cfg.Providers.Weather.BaseURL == "" {
		cfg.Providers.Weather.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if cfg.Providers.Weather.Timeout <= 0 {
		cfg.Providers.Weather.Timeout = 10 * time.Second
	}
	if cfg.Providers.Weather.CacheTTL <= 0 {
		cfg.Providers.Weather.CacheTTL = 5 * time.Minute
	}
	if cfg.Providers.Elasticsearch.Index == "" {
		cfg.Providers.Elasticsearch.Index = "assistant-decisions"
	}

	if cfg.Capabilities == nil {
		cfg.Capabilities = map[string]CapabilityConfig{}
	}
	for _, name := range []string{"weather", "calendar", "email", "social", "conversational"} {
		cc, ok := cfg.Capabilities[name]
		if !ok {
			cc = CapabilityConfig{Enabled: true}
		}
		if cc.Timeout <= 0 {
			cc.Timeout = 15 * time.Second
		}
		cfg.Capabilities[name] = cc
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Fusion.EvaluatorTimeout < time.Second {
		return fmt.Errorf("fusion.evaluator_timeout must be at least 1s, got %s", cfg.Fusion.EvaluatorTimeout)
	}
	for name, cc := range cfg.Capabilities {
		if cc.Enabled && cc.Timeout < time.Second {
			return fmt.Errorf("capabilities.%s.timeout must be at least 1s, got %s", name, cc.Timeout)
		}
	}
	if cfg.Providers.Calendar.Postgres.Host != "" && cfg.Providers.Calendar.Postgres.Database == "" {
		return fmt.Errorf("providers.calendar.postgres.database is required when a host is set")
	}
	return nil
}
