// Package geocode turns a decimal coordinate pair into a human-friendly
// place name.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"

	"github.com/electronjoe/PhotoMap/internal/coords"
)

// Provider reverse geocodes a coordinate pair.
type Provider interface {
	Reverse(ctx context.Context, at coords.Decimal) (string, error)
}

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeNone disables reverse geocoding.
	ProviderTypeNone ProviderType = ""
	// ProviderTypeNominatim represents OpenStreetMap Nominatim.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeGoogle represents the Google Maps Geocoding API.
	ProviderTypeGoogle ProviderType = "google"
)

// ErrEmptyResponse is returned when a provider has no place for the point.
var ErrEmptyResponse = errors.New("geocoding provider returned no results")

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType
	APIKey    string // required by Google
	RateLimit int    // requests per second
	UserAgent string // required by the Nominatim usage policy
	Logger    *slog.Logger
}

// NewProvider creates the provider named by config.Type. ProviderTypeNone
// yields a nil Provider and no error.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeNone:
		return nil, nil
	case ProviderTypeNominatim:
		return newNominatimProvider(config), nil
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newNominatimProvider(config ProviderConfig) Provider {
	if config.RateLimit <= 0 {
		config.RateLimit = 1
	}
	return NewNominatimProvider(config.UserAgent, config.RateLimit, config.Logger)
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
