// Package catalog extracts locations for whole album trees and records
// them in a metadata.json file per album.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/electronjoe/PhotoMap/internal/coords"
	"github.com/electronjoe/PhotoMap/internal/extract"
	"github.com/electronjoe/PhotoMap/internal/geocode"
	"github.com/electronjoe/PhotoMap/internal/metrics"
	"github.com/electronjoe/PhotoMap/internal/photo"
)

// MetadataFileName is written into every album directory.
const MetadataFileName = "metadata.json"

const defaultGeocodeTimeout = 15 * time.Second

// ImageMetadata holds the metadata for an image.
type ImageMetadata struct {
	// FriendlyLocation is a human-friendly geographic name (e.g. "Zion National Park")
	FriendlyLocation string  `json:"friendly_location"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	DateTime         string  `json:"date_time,omitempty"`
}

// Extractor is satisfied by *extract.Extractor.
type Extractor interface {
	Extract(path string) extract.Result
}

// Options configures a Scanner. Every field is optional.
type Options struct {
	Geocoder       geocode.Provider
	ProviderName   string // metrics label for Geocoder
	CachePath      string // empty disables the cache
	GeocodeTimeout time.Duration
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
}

// Summary counts what a scan did.
type Summary struct {
	Albums  int
	Photos  int
	Located int
	Cached  int
}

// Scanner walks album directories sequentially.
type Scanner struct {
	extractor Extractor
	geocoder  geocode.Provider
	provider  string
	timeout   time.Duration
	metrics   *metrics.Metrics
	log       *slog.Logger

	cachePath string
	cache     *locationCache
	dirty     bool
}

// NewScanner loads the cache at opts.CachePath, if any.
func NewScanner(extractor Extractor, opts Options) (*Scanner, error) {
	s := &Scanner{
		extractor: extractor,
		geocoder:  opts.Geocoder,
		provider:  opts.ProviderName,
		timeout:   opts.GeocodeTimeout,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		cachePath: opts.CachePath,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.timeout <= 0 {
		s.timeout = defaultGeocodeTimeout
	}
	if s.cachePath != "" {
		cache, err := loadCache(s.cachePath)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	return s, nil
}

// Scan processes each sub-directory of root as one album, then saves the
// cache with the entries for photos that vanished from root dropped.
func (s *Scanner) Scan(ctx context.Context, root string) (Summary, error) {
	var sum Summary

	root, err := filepath.Abs(root)
	if err != nil {
		return sum, fmt.Errorf("resolve root directory: %w", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return sum, fmt.Errorf("read root directory: %w", err)
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		albumDir := filepath.Join(root, entry.Name())
		s.log.Info("Processing album", "dir", albumDir)
		if err := s.scanAlbum(ctx, albumDir, seen, &sum); err != nil {
			s.log.Error("Failed to write album metadata", "dir", albumDir, "error", err)
			continue
		}
		sum.Albums++
	}

	if s.cache.pruneUnder(root, seen) {
		s.dirty = true
	}
	if s.cache != nil && s.dirty {
		if err := s.cache.save(s.cachePath); err != nil {
			return sum, err
		}
		s.dirty = false
	}
	return sum, nil
}

func (s *Scanner) scanAlbum(ctx context.Context, dir string, seen map[string]struct{}, sum *Summary) error {
	metadataMap := make(map[string]ImageMetadata)

	for _, p := range photo.Load([]string{dir}, s.log) {
		seen[p.FilePath] = struct{}{}
		sum.Photos++

		entry, hit := s.cache.get(p.FilePath, p.ModTime)
		if hit {
			sum.Cached++
		} else {
			entry = entryFromResult(s.extractor.Extract(p.FilePath))
		}
		if entry.Outcome != extract.OutcomeSuccess.String() {
			if !hit {
				s.cache.set(p.FilePath, p.ModTime, entry)
				s.dirty = true
			}
			continue
		}

		if entry.Place == "" && s.geocoder != nil {
			if place, ok := s.reverse(ctx, entry); ok {
				entry.Place = place
				hit = false
			}
		}
		if !hit {
			s.cache.set(p.FilePath, p.ModTime, entry)
			s.dirty = true
		}

		name, err := filepath.Rel(dir, p.FilePath)
		if err != nil {
			name = filepath.Base(p.FilePath)
		}
		metadataMap[filepath.ToSlash(name)] = ImageMetadata{
			FriendlyLocation: friendlyLocation(entry),
			Latitude:         entry.Latitude,
			Longitude:        entry.Longitude,
			DateTime:         entry.DateTime,
		}
		sum.Located++
	}

	return writeMetadata(dir, metadataMap)
}

func (s *Scanner) reverse(ctx context.Context, entry cacheEntry) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	place, err := s.geocoder.Reverse(ctx, entry.coordinates())
	status := "ok"
	switch {
	case errors.Is(err, geocode.ErrEmptyResponse):
		status = "empty"
	case err != nil:
		status = "error"
	}
	if s.metrics != nil {
		s.metrics.GeocodeRequests.WithLabelValues(s.provider, status).Inc()
	}
	if err != nil {
		s.log.Warn("Reverse geocoding failed", "decimal", entry.Decimal, "error", err)
		return "", false
	}
	return place, true
}

func writeMetadata(dir string, metadataMap map[string]ImageMetadata) error {
	jsonPath := filepath.Join(dir, MetadataFileName)
	jsonData, err := json.MarshalIndent(metadataMap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata for %s: %w", dir, err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("write metadata file %s: %w", jsonPath, err)
	}
	return nil
}

func entryFromResult(res extract.Result) cacheEntry {
	entry := cacheEntry{Outcome: res.Outcome.String()}
	if res.OK() {
		entry.Latitude = res.Coordinates.Latitude
		entry.Longitude = res.Coordinates.Longitude
		entry.Decimal = res.Decimal
		entry.DateTime = res.DateTime
	}
	return entry
}

func (e cacheEntry) coordinates() coords.Decimal {
	return coords.Decimal{Latitude: e.Latitude, Longitude: e.Longitude}
}

// friendlyLocation falls back to the coordinates when no place is known.
func friendlyLocation(entry cacheEntry) string {
	if entry.Place != "" {
		return entry.Place
	}
	return fmt.Sprintf("Location at (%s)", entry.Decimal)
}
