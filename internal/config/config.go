package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/electronjoe/PhotoMap/internal/maplink"
	"github.com/electronjoe/PhotoMap/internal/photo"
)

const (
	DefaultConfigPath = ".photomap/config.json"
	envPrefix         = "PHOTOMAP"
)

// Config represents the JSON config structure.
type Config struct {
	MapBaseURL  string         `mapstructure:"map_base_url"`
	MaxFileSize int64          `mapstructure:"max_file_size"`
	OpenBrowser bool           `mapstructure:"open_browser"`
	Log         LogConfig      `mapstructure:"log"`
	Geocoder    GeocoderConfig `mapstructure:"geocoder"`
	Cache       CacheConfig    `mapstructure:"cache"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// GeocoderConfig selects the optional reverse geocoding provider used by
// the batch scanner. An empty Provider disables lookups.
type GeocoderConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	RateLimit int    `mapstructure:"rate_limit"`
	UserAgent string `mapstructure:"user_agent"`
}

// CacheConfig controls the batch scanner's result cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultPath returns ~/.photomap/config.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultConfigPath), nil
}

// Read loads the config from the default location.
func Read() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads the JSON config at path, layering PHOTOMAP_* environment
// variables (and a .env file in the working directory) on top of the
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("json")

	v.SetDefault("map_base_url", maplink.DefaultBaseURL)
	v.SetDefault("max_file_size", photo.DefaultMaxFileSize)
	v.SetDefault("open_browser", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("geocoder.provider", "")
	v.SetDefault("geocoder.api_key", "")
	v.SetDefault("geocoder.rate_limit", 1)
	v.SetDefault("geocoder.user_agent", "PhotoMap/1.0 (https://github.com/electronjoe/PhotoMap)")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = photo.DefaultMaxFileSize
	}
	if cfg.MapBaseURL == "" {
		cfg.MapBaseURL = maplink.DefaultBaseURL
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(filepath.Dir(path), "location_cache.json")
	}

	return &cfg, nil
}

// NewLogger creates a slog.Logger writing to w based on the configuration.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
