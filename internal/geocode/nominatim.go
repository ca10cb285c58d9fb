package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/electronjoe/PhotoMap/internal/coords"
)

const nominatimReverseURL = "https://nominatim.openstreetmap.org/reverse"

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NominatimProvider reverse geocodes with OpenStreetMap's Nominatim API.
// The public endpoint allows one request per second.
type NominatimProvider struct {
	client    HTTPClient
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	log       *slog.Logger
}

type nominatimReverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
	Address     struct {
		Village string `json:"village"`
		Town    string `json:"town"`
		City    string `json:"city"`
		County  string `json:"county"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// NewNominatimProvider creates a provider for the public Nominatim endpoint.
func NewNominatimProvider(userAgent string, rateLimit int, log *slog.Logger) *NominatimProvider {
	const timeout = 10 * time.Second
	return NewNominatimProviderWithClient(
		&http.Client{Timeout: timeout},
		nominatimReverseURL,
		userAgent,
		rate.NewLimiter(rate.Limit(rateLimit), 1),
		log,
	)
}

// NewNominatimProviderWithClient creates a provider with injected collaborators.
func NewNominatimProviderWithClient(
	client HTTPClient,
	baseURL string,
	userAgent string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   baseURL,
		userAgent: userAgent,
		limiter:   limiter,
		log:       log,
	}
}

// Reverse returns a short place name, falling back to the full display name.
func (np *NominatimProvider) Reverse(ctx context.Context, at coords.Decimal) (string, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
	query.Set("format", "json")
	query.Set("zoom", "14")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	np.log.DebugContext(ctx, "Nominatim request", "url", reqURL.String())

	resp, err := np.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute reverse geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result nominatimReverseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if result.Error != "" || result.DisplayName == "" {
		return "", ErrEmptyResponse
	}

	return friendlyName(result), nil
}

func friendlyName(r nominatimReverseResponse) string {
	place := r.Address.Village
	if place == "" {
		place = r.Address.Town
	}
	if place == "" {
		place = r.Address.City
	}
	if place == "" {
		place = r.Address.County
	}
	if place == "" {
		return r.DisplayName
	}
	if region := r.Address.State; region != "" {
		return place + ", " + region
	}
	if r.Address.Country != "" {
		return place + ", " + r.Address.Country
	}
	return place
}
