package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/electronjoe/PhotoMap/internal/extract"
)

const (
	// CacheFileName is the cache file kept next to config.json.
	CacheFileName = "location_cache.json"

	// cacheSchema 2 records the extraction outcome and the reverse geocoded
	// place of every photo, keyed by absolute path.
	cacheSchema = 2
)

// locationCache remembers what every photo under any scanned root
// produced, so an unchanged photo is neither decoded nor geocoded twice.
type locationCache struct {
	Schema int                   `json:"schema"`
	Photos map[string]cacheEntry `json:"photos"`
}

type cacheEntry struct {
	ModTime   int64   `json:"modTime"`
	Outcome   string  `json:"outcome"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Decimal   string  `json:"decimal,omitempty"`
	DateTime  string  `json:"dateTime,omitempty"`
	Place     string  `json:"place,omitempty"`
}

// valid reports whether e is something an extraction can produce. Only
// located photos carry a decimal pair or a place.
func (e cacheEntry) valid() bool {
	switch e.Outcome {
	case extract.OutcomeSuccess.String():
		return e.Decimal != ""
	case extract.OutcomeNoGPS.String(), extract.OutcomeNoMetadata.String():
		return e.Decimal == "" && e.Place == ""
	default:
		return false
	}
}

func newCache() *locationCache {
	return &locationCache{Schema: cacheSchema, Photos: make(map[string]cacheEntry)}
}

// loadCache reads the cache at path. A missing file or an older schema
// starts empty; entries that fail validation are dropped.
func loadCache(path string) (*locationCache, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return newCache(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read location cache: %w", err)
	}

	var stored locationCache
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal location cache: %w", err)
	}

	cache := newCache()
	if stored.Schema != cacheSchema {
		return cache, nil
	}
	for photoPath, entry := range stored.Photos {
		if entry.valid() {
			cache.Photos[photoPath] = entry
		}
	}
	return cache, nil
}

// save writes the cache through a temporary file in the same directory so
// a crash never leaves a truncated cache behind.
func (c *locationCache) save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal location cache: %w", err)
	}

	tmp, err := os.CreateTemp(dir, CacheFileName+".*")
	if err != nil {
		return fmt.Errorf("create temporary cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write location cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write location cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace location cache: %w", err)
	}
	return nil
}

// get returns the entry for path if it was recorded for the same
// modification time.
func (c *locationCache) get(path string, modTime time.Time) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}
	entry, ok := c.Photos[path]
	if !ok || entry.ModTime != modTime.UnixNano() {
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *locationCache) set(path string, modTime time.Time, entry cacheEntry) {
	if c == nil {
		return
	}
	entry.ModTime = modTime.UnixNano()
	c.Photos[path] = entry
}

// pruneUnder drops the entries below root that are not in seen. Entries
// recorded for other roots are kept.
func (c *locationCache) pruneUnder(root string, seen map[string]struct{}) bool {
	if c == nil {
		return false
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	changed := false
	for photoPath := range c.Photos {
		if !strings.HasPrefix(photoPath, prefix) {
			continue
		}
		if _, ok := seen[photoPath]; !ok {
			delete(c.Photos, photoPath)
			changed = true
		}
	}
	return changed
}
