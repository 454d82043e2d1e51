// Package config loads the server configuration from defaults, an optional
// YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dendik/mcp-google-map/pkg/maps"
)

// EnvPrefix prefixes every environment override: MAPSMCP_SERVER_ADDR sets
// server.addr.
const EnvPrefix = "MAPSMCP"

// APIKeyEnv is the conventional variable MCP clients set for the credential.
const APIKeyEnv = "GOOGLE_MAPS_API_KEY"

// Transports the server can speak.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config holds all application configuration.
type Config struct {
	Google    GoogleConfig    `mapstructure:"google"`
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type GoogleConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	Language      string        `mapstructure:"language"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MapsBaseURL   string        `mapstructure:"maps_base_url"`
	PlacesBaseURL string        `mapstructure:"places_base_url"`
	RoutesBaseURL string        `mapstructure:"routes_base_url"`
}

type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Addr      string `mapstructure:"addr"`
	BaseURL   string `mapstructure:"base_url"`
}

// MetricsConfig enables the Prometheus listener when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConfigError is one invalid or missing setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads configuration. path names an explicit config file; when empty
// ./config.yaml is read if present. overrides are applied last, typically
// from command-line flags, and a nil or empty value leaves the key alone.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.language", maps.DefaultLanguage)
	v.SetDefault("google.timeout", maps.DefaultTimeout)
	v.SetDefault("google.maps_base_url", maps.DefaultMapsBaseURL)
	v.SetDefault("google.places_base_url", maps.DefaultPlacesBaseURL)
	v.SetDefault("google.routes_base_url", maps.DefaultRoutesBaseURL)
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_url", "")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", "mcp-google-map")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: MAPSMCP_GOOGLE_LANGUAGE → google.language
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("google.api_key", EnvPrefix+"_GOOGLE_API_KEY", APIKeyEnv); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	for key, value := range overrides {
		if !isZero(value) {
			v.Set(key, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isZero(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	}
	return false
}

// Validate reports every problem at once, each as a *ConfigError.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Google.APIKey) == "" {
		invalid("google.api_key", "Google Maps API key is required (set %s)", APIKeyEnv)
	}
	if c.Google.Timeout <= 0 {
		invalid("google.timeout", "must be positive, got %s", c.Google.Timeout)
	}
	switch c.Server.Transport {
	case TransportStdio:
	case TransportSSE:
		if c.Server.Addr == "" {
			invalid("server.addr", "is required for the %s transport", TransportSSE)
		}
	default:
		invalid("server.transport", "must be %s or %s, got %q", TransportStdio, TransportSSE, c.Server.Transport)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		invalid("telemetry.endpoint", "is required when telemetry is enabled")
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		invalid("log.level", "must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		invalid("log.format", "must be text or json, got %q", c.Log.Format)
	}

	return errors.Join(errs...)
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevel returns the configured slog level, info when unrecognized.
func (c *Config) LogLevel() slog.Level {
	if lvl, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// MapsConfig returns the provider adapter configuration.
func (c *Config) MapsConfig(logger *slog.Logger) maps.Config {
	return maps.Config{
		APIKey:        c.Google.APIKey,
		Language:      c.Google.Language,
		Timeout:       c.Google.Timeout,
		MapsBaseURL:   c.Google.MapsBaseURL,
		PlacesBaseURL: c.Google.PlacesBaseURL,
		RoutesBaseURL: c.Google.RoutesBaseURL,
		Logger:        logger,
	}
}
