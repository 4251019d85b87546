package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Server   ServerConfig   `mapstructure:"server"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
	Export   ExportConfig   `mapstructure:"export"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty logs to stderr
}

// CalendarConfig represents calendar configuration
type CalendarConfig struct {
	FestivalsFile string `mapstructure:"festivals_file"` // empty uses the built-in book
	Language      string `mapstructure:"language"`       // "zh" or "en"
}

// CacheConfig represents the optional shared month cache
type CacheConfig struct {
	RedisURL string `mapstructure:"redis_url"` // e.g. redis://localhost:6379/0, empty disables
	TTL      string `mapstructure:"ttl"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	Metrics         bool   `mapstructure:"metrics"`
	RateLimit       int    `mapstructure:"rate_limit"` // requests per window per IP, 0 disables
	RateWindow      string `mapstructure:"rate_window"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

// DaemonConfig represents daemon mode configuration
type DaemonConfig struct {
	SystemTray    bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
	RolloverCheck string `mapstructure:"rollover_check"`
}

// ExportConfig represents iCalendar export configuration
type ExportConfig struct {
	ProdID string `mapstructure:"prodid"`
	Name   string `mapstructure:"name"`
}

const envPrefix = "LUNAR"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("calendar.language", "zh")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.metrics", true)
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("server.rate_window", "1m")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("daemon.system_tray", false)
	v.SetDefault("daemon.rollover_check", "1m")
}

// Load loads configuration from file.
// Without an explicit path a missing config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.lunar-calendar")
		v.AddConfigPath("/etc/lunar-calendar")
	}

	// Read environment variables, e.g. LUNAR_SERVER_ADDRESS
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}

	switch c.Calendar.Language {
	case "zh", "en":
	default:
		return fmt.Errorf("calendar.language must be 'zh' or 'en', got '%s'", c.Calendar.Language)
	}

	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}

	for key, value := range map[string]string{
		"cache.ttl":               c.Cache.TTL,
		"server.rate_window":      c.Server.RateWindow,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"daemon.rollover_check":   c.Daemon.RolloverCheck,
	} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration, got '%s'", key, value)
		}
	}

	if c.Cache.RedisURL != "" && !strings.HasPrefix(c.Cache.RedisURL, "redis://") && !strings.HasPrefix(c.Cache.RedisURL, "rediss://") {
		return fmt.Errorf("cache.redis_url must start with redis:// or rediss://")
	}

	return nil
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

// GetTTL returns the shared cache entry lifetime
func (c *CacheConfig) GetTTL() time.Duration {
	return parseDuration(c.TTL, 24*time.Hour)
}

// GetRateWindow returns the rate limiting window
func (c *ServerConfig) GetRateWindow() time.Duration {
	return parseDuration(c.RateWindow, time.Minute)
}

// GetShutdownTimeout returns how long graceful shutdown may take
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	return parseDuration(c.ShutdownTimeout, 10*time.Second)
}

// GetRolloverCheck returns how often the daemon looks for a new day
func (c *DaemonConfig) GetRolloverCheck() time.Duration {
	return parseDuration(c.RolloverCheck, time.Minute)
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.Calendar.FestivalsFile = os.ExpandEnv(c.Calendar.FestivalsFile)
	c.Cache.RedisURL = os.ExpandEnv(c.Cache.RedisURL)
}
