package georesolver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riccardo-malabarba/cost-of-living/internal/logging"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeocoder answers lookups from fixed maps and counts its calls.
type fakeGeocoder struct {
	mu        sync.Mutex
	locations map[string]*Location
	addresses map[string]*Address
	forwardN  int
	reverseN  int
	err       error
}

func (f *fakeGeocoder) Forward(ctx context.Context, query string) (*Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forwardN++
	if f.err != nil {
		return nil, f.err
	}
	return f.locations[query], nil
}

func (f *fakeGeocoder) Reverse(ctx context.Context, lat, lon decimal.Decimal) (*Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reverseN++
	if f.err != nil {
		return nil, f.err
	}
	return f.addresses[lat.String()+","+lon.String()], nil
}

// memCache is a minimal in-memory Cache for resolver tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string]Resolution
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]Resolution)}
}

func (c *memCache) Get(key string) (Resolution, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[key]
	return res, ok
}

func (c *memCache) Put(key string, res Resolution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = res
}

func loc(lat, lon string) *Location {
	return &Location{
		Latitude:  decimal.RequireFromString(lat),
		Longitude: decimal.RequireFromString(lon),
	}
}

func surveyRow(city, country string) models.SurveyRecord {
	return models.SurveyRecord{City: city, Country: country}
}

func newTestResolver(geo Geocoder, cache Cache) *Resolver {
	return NewResolver(geo, cache, &logging.MockLogger{}, 2, time.Second)
}

func TestResolve_MapsSubdivisionToCanonicalCity(t *testing.T) {
	geo := &fakeGeocoder{
		locations: map[string]*Location{
			"Brooklyn, United States": loc("40.65", "-73.95"),
		},
		addresses: map[string]*Address{
			"40.65,-73.95": {City: "New York", Country: "United States", CountryCode: "us"},
		},
	}

	resolved, rejections := newTestResolver(geo, nil).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Brooklyn", "United States")})

	require.Len(t, resolved, 1)
	assert.Empty(t, rejections)
	assert.Equal(t, "Brooklyn", resolved[0].City)
	assert.Equal(t, "New York", resolved[0].CanonicalCity)
	assert.Equal(t, "us", resolved[0].CountryCode)
	assert.Equal(t, "40.65", resolved[0].Latitude.String())
}

func TestResolve_FallsBackToSubdivisionName(t *testing.T) {
	// Reverse lookup without a city component keeps the original name.
	geo := &fakeGeocoder{
		locations: map[string]*Location{
			"Vienna, Austria": loc("48.2", "16.37"),
		},
		addresses: map[string]*Address{
			"48.2,16.37": {Country: "Austria", CountryCode: "at"},
		},
	}

	resolved, _ := newTestResolver(geo, nil).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Vienna", "Austria")})

	require.Len(t, resolved, 1)
	assert.Equal(t, "Vienna", resolved[0].CanonicalCity)
}

func TestResolve_CountryMismatchRejected(t *testing.T) {
	geo := &fakeGeocoder{
		locations: map[string]*Location{
			"Paris, France": loc("33.66", "-95.55"),
		},
		addresses: map[string]*Address{
			"33.66,-95.55": {City: "Paris", Country: "United States", CountryCode: "us"},
		},
	}

	resolved, rejections := newTestResolver(geo, nil).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Paris", "France")})

	assert.Empty(t, resolved)
	require.Len(t, rejections, 1)
	assert.Equal(t, models.ReasonCountryMismatch, rejections[0].Reason)
	assert.Equal(t, "United States", rejections[0].Detail)
}

func TestResolve_CzechiaAliasAccepted(t *testing.T) {
	geo := &fakeGeocoder{
		locations: map[string]*Location{
			"Prague, Czech Republic": loc("50.09", "14.42"),
		},
		addresses: map[string]*Address{
			"50.09,14.42": {City: "Prague", Country: "Czechia", CountryCode: "cz"},
		},
	}

	resolved, rejections := newTestResolver(geo, nil).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Prague", "Czech Republic")})

	require.Len(t, resolved, 1)
	assert.Empty(t, rejections)
	assert.Equal(t, "Prague", resolved[0].CanonicalCity)
}

func TestResolve_NotFoundRejected(t *testing.T) {
	geo := &fakeGeocoder{locations: map[string]*Location{}}

	resolved, rejections := newTestResolver(geo, nil).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Atlantis", "Greece")})

	assert.Empty(t, resolved)
	require.Len(t, rejections, 1)
	assert.Equal(t, models.ReasonNotFound, rejections[0].Reason)
}

func TestResolve_LookupErrorRejectsRowsOnly(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("service unavailable")}

	resolved, rejections := newTestResolver(geo, nil).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Vienna", "Austria"), surveyRow("Graz", "Austria")})

	assert.Empty(t, resolved)
	require.Len(t, rejections, 2)
	for _, r := range rejections {
		assert.Equal(t, models.ReasonGeocodeFailed, r.Reason)
	}
}

func TestResolve_DistinctPairsLookedUpOnce(t *testing.T) {
	geo := &fakeGeocoder{
		locations: map[string]*Location{
			"Vienna, Austria": loc("48.2", "16.37"),
		},
		addresses: map[string]*Address{
			"48.2,16.37": {City: "Vienna", Country: "Austria", CountryCode: "at"},
		},
	}

	rows := []models.SurveyRecord{
		surveyRow("Vienna", "Austria"),
		surveyRow("Vienna", "Austria"),
		surveyRow("Vienna", "Austria"),
	}
	resolved, _ := newTestResolver(geo, nil).Resolve(context.Background(), rows)

	assert.Len(t, resolved, 3)
	assert.Equal(t, 1, geo.forwardN)
	assert.Equal(t, 1, geo.reverseN)
}

func TestResolve_CacheHitSkipsLookup(t *testing.T) {
	cache := newMemCache()
	cache.Put(CacheKey("Vienna", "Austria"), Resolution{
		Resolved:    true,
		City:        "Vienna",
		CountryCode: "at",
		Latitude:    decimal.RequireFromString("48.2"),
		Longitude:   decimal.RequireFromString("16.37"),
	})

	geo := &fakeGeocoder{}
	resolved, _ := newTestResolver(geo, cache).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Vienna", "Austria")})

	require.Len(t, resolved, 1)
	assert.Equal(t, "Vienna", resolved[0].CanonicalCity)
	assert.Equal(t, 0, geo.forwardN)
	assert.Equal(t, 0, geo.reverseN)
}

func TestResolve_DefinitiveOutcomesCached(t *testing.T) {
	cache := newMemCache()
	geo := &fakeGeocoder{
		locations: map[string]*Location{
			"Vienna, Austria": loc("48.2", "16.37"),
		},
		addresses: map[string]*Address{
			"48.2,16.37": {City: "Vienna", Country: "Austria", CountryCode: "at"},
		},
	}

	newTestResolver(geo, cache).Resolve(context.Background(), []models.SurveyRecord{
		surveyRow("Vienna", "Austria"),
		surveyRow("Atlantis", "Greece"),
	})

	_, ok := cache.Get(CacheKey("Vienna", "Austria"))
	assert.True(t, ok, "successful resolution should be cached")

	res, ok := cache.Get(CacheKey("Atlantis", "Greece"))
	assert.True(t, ok, "a definitive no-match should be cached")
	assert.Equal(t, models.ReasonNotFound, res.Reason)
}

func TestResolve_TransientFailuresNotCached(t *testing.T) {
	cache := newMemCache()
	geo := &fakeGeocoder{err: errors.New("timeout")}

	newTestResolver(geo, cache).Resolve(context.Background(),
		[]models.SurveyRecord{surveyRow("Vienna", "Austria")})

	_, ok := cache.Get(CacheKey("Vienna", "Austria"))
	assert.False(t, ok, "transient failures stay uncached so a later run can retry")
}

func TestCountryMatches(t *testing.T) {
	assert.True(t, countryMatches("Austria", "Austria"))
	assert.True(t, countryMatches("austria", "Austria"))
	assert.True(t, countryMatches("Czechia", "Czech Republic"))
	assert.False(t, countryMatches("Czech Republic", "Czechia"))
	assert.False(t, countryMatches("Germany", "Austria"))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "Vienna|Austria", CacheKey("Vienna", "Austria"))
}
