package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config covers process level configuration read from SCHEDULE_* environment
// variables. Command-line flags override these values in main.
type Config struct {
	Environment string
	LogLevel    string
	APIBaseURL  string        // Scheduling backend, e.g. https://admin.example.org/api
	APIToken    string        // Bearer token sent with every backend request
	HTTPTimeout time.Duration // Per-request timeout for backend calls
	MetricsBind string
}

// Load reads the configuration from the environment.
// Priority: environment variable > default.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("env", "development")
	v.SetDefault("log_level", "")
	v.SetDefault("api_url", "")
	v.SetDefault("api_token", "")
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("metrics_bind", "")

	v.SetEnvPrefix("SCHEDULE")
	v.AutomaticEnv()

	cfg := &Config{
		Environment: v.GetString("env"),
		LogLevel:    v.GetString("log_level"),
		APIBaseURL:  strings.TrimRight(v.GetString("api_url"), "/"),
		APIToken:    v.GetString("api_token"),
		HTTPTimeout: time.Duration(v.GetInt("http_timeout_seconds")) * time.Second,
		MetricsBind: v.GetString("metrics_bind"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values main cannot run without.
func (c *Config) Validate() error {
	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("SCHEDULE_API_URL must be an absolute URL (got %q)", c.APIBaseURL)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("SCHEDULE_HTTP_TIMEOUT_SECONDS must be positive")
	}
	return nil
}
