// Package store persists geocoding results between pipeline runs. The
// upstream geocoding service is rate-limited, so every resolved pair is kept
// in a YAML file and reloaded on the next run.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/riccardo-malabarba/cost-of-living/internal/georesolver"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// cacheEntry is the YAML shape of one cached resolution. Coordinates are
// stored as strings to keep the file format independent of the decimal
// library's internals.
type cacheEntry struct {
	Resolved    bool   `yaml:"resolved"`
	City        string `yaml:"city,omitempty"`
	CountryCode string `yaml:"country_code,omitempty"`
	Latitude    string `yaml:"latitude,omitempty"`
	Longitude   string `yaml:"longitude,omitempty"`
	Reason      string `yaml:"reason,omitempty"`
	Detail      string `yaml:"detail,omitempty"`
}

// GeoCache is a YAML-backed implementation of georesolver.Cache.
type GeoCache struct {
	file string

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewGeoCache creates a cache persisted at the given file path. An empty path
// yields a purely in-memory cache.
func NewGeoCache(file string) *GeoCache {
	return &GeoCache{
		file:    file,
		entries: make(map[string]cacheEntry),
	}
}

// Load reads previously cached resolutions from disk. A missing file is not
// an error; the cache just starts empty.
func (c *GeoCache) Load() error {
	if c.file == "" {
		return nil
	}

	data, err := os.ReadFile(c.file)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Geocode cache file not found: %s", c.file)
			return nil
		}
		return fmt.Errorf("error reading geocode cache: %w", err)
	}

	entries := make(map[string]cacheEntry)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("error parsing geocode cache: %w", err)
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	log.Debugf("Loaded %d cached geocode results from %s", len(entries), c.file)
	return nil
}

// Save writes the cache back to disk, creating the parent directory if
// needed. A no-op for in-memory caches.
func (c *GeoCache) Save() error {
	if c.file == "" {
		return nil
	}

	c.mu.RLock()
	data, err := yaml.Marshal(c.entries)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("error marshaling geocode cache: %w", err)
	}

	if dir := filepath.Dir(c.file); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating cache directory: %w", err)
		}
	}

	if err := os.WriteFile(c.file, data, 0600); err != nil {
		return fmt.Errorf("error writing geocode cache: %w", err)
	}
	return nil
}

// Get returns the cached resolution for the key, if any.
func (c *GeoCache) Get(key string) (georesolver.Resolution, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return georesolver.Resolution{}, false
	}

	res := georesolver.Resolution{
		Resolved:    entry.Resolved,
		City:        entry.City,
		CountryCode: entry.CountryCode,
		Reason:      models.RejectReason(entry.Reason),
		Detail:      entry.Detail,
	}
	if entry.Resolved {
		lat, err := decimal.NewFromString(entry.Latitude)
		if err != nil {
			return georesolver.Resolution{}, false
		}
		lon, err := decimal.NewFromString(entry.Longitude)
		if err != nil {
			return georesolver.Resolution{}, false
		}
		res.Latitude = lat
		res.Longitude = lon
	}
	return res, true
}

// Put stores a resolution under the key.
func (c *GeoCache) Put(key string, res georesolver.Resolution) {
	entry := cacheEntry{
		Resolved:    res.Resolved,
		City:        res.City,
		CountryCode: res.CountryCode,
		Reason:      string(res.Reason),
		Detail:      res.Detail,
	}
	if res.Resolved {
		entry.Latitude = res.Latitude.String()
		entry.Longitude = res.Longitude.String()
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *GeoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
