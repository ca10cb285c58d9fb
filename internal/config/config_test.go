package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electronjoe/PhotoMap/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(filepath.Join(dir, "config.json"))

	require.NoError(t, err)
	assert.Equal(t, "http://www.google.com/maps/place", cfg.MapBaseURL)
	assert.Equal(t, int64(64<<20), cfg.MaxFileSize)
	assert.True(t, cfg.OpenBrowser)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Geocoder.Provider)
	assert.Equal(t, 1, cfg.Geocoder.RateLimit)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, "location_cache.json"), cfg.Cache.Path)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `{
		"map_base_url": "https://www.openstreetmap.org/search",
		"max_file_size": 1048576,
		"open_browser": false,
		"log": {"level": "debug", "format": "json"},
		"geocoder": {"provider": "nominatim", "rate_limit": 2},
		"cache": {"enabled": false, "path": "/tmp/cache.json"}
	}`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://www.openstreetmap.org/search", cfg.MapBaseURL)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.False(t, cfg.OpenBrowser)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "nominatim", cfg.Geocoder.Provider)
	assert.Equal(t, 2, cfg.Geocoder.RateLimit)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/cache.json", cfg.Cache.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"open_browser": true}`)
	t.Setenv("PHOTOMAP_OPEN_BROWSER", "false")
	t.Setenv("PHOTOMAP_MAX_FILE_SIZE", "2048")
	t.Setenv("PHOTOMAP_GEOCODER_PROVIDER", "google")
	t.Setenv("PHOTOMAP_GEOCODER_API_KEY", "testAPIKey")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.False(t, cfg.OpenBrowser)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, "google", cfg.Geocoder.Provider)
	assert.Equal(t, "testAPIKey", cfg.Geocoder.APIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		path := writeConfig(t, `{"map_base_url": `)

		_, err := config.Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("non-positive size falls back to default", func(t *testing.T) {
		path := writeConfig(t, `{"max_file_size": 0, "map_base_url": ""}`)

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, int64(64<<20), cfg.MaxFileSize)
		assert.Equal(t, "http://www.google.com/maps/place", cfg.MapBaseURL)
	})
}

func TestConfig_NewLogger(t *testing.T) {
	t.Run("json at warn", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := &config.Config{Log: config.LogConfig{Level: "warn", Format: "json"}}

		logger := cfg.NewLogger(&buf)
		logger.Info("hidden")
		logger.Warn("shown", "path", "a.jpg")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
		assert.Contains(t, buf.String(), `"path":"a.jpg"`)
	})

	t.Run("text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := &config.Config{Log: config.LogConfig{Level: "DEBUG", Format: "text"}}

		cfg.NewLogger(&buf).Debug("details")

		assert.Contains(t, buf.String(), "msg=details")
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := &config.Config{Log: config.LogConfig{Level: "loud"}}

		logger := cfg.NewLogger(&buf)
		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
