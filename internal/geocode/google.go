package geocode

import (
	"context"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"

	"github.com/electronjoe/PhotoMap/internal/coords"
)

// GoogleAPIClient is the subset of *maps.Client the provider uses.
type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleProvider reverse geocodes with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Reverse returns the formatted address of the best match.
func (gp *GoogleProvider) Reverse(ctx context.Context, at coords.Decimal) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps", "at", at.String())

	req := maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: at.Latitude, Lng: at.Longitude},
	}
	results, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode %s: %w", at, err)
	}
	if len(results) == 0 {
		return "", ErrEmptyResponse
	}
	return results[0].FormattedAddress, nil
}
