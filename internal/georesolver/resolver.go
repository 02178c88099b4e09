package georesolver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riccardo-malabarba/cost-of-living/internal/logging"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Resolution is the outcome of looking up one (subdivision, country) pair.
// Unresolved outcomes carry the reject reason instead of a location.
type Resolution struct {
	Resolved    bool
	City        string
	CountryCode string
	Latitude    decimal.Decimal
	Longitude   decimal.Decimal
	Reason      models.RejectReason
	Detail      string
}

// Cache stores resolutions keyed by CacheKey. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(key string) (Resolution, bool)
	Put(key string, res Resolution)
}

// CacheKey builds the cache key for a (subdivision, country) pair.
func CacheKey(city, country string) string {
	return city + "|" + country
}

// Resolver resolves survey rows to canonical city identities with bounded
// concurrency and a per-lookup timeout.
type Resolver struct {
	geo     Geocoder
	cache   Cache
	log     logging.Logger
	workers int
	timeout time.Duration
}

// NewResolver creates a Resolver. cache may be nil; workers below one is
// treated as one.
func NewResolver(geo Geocoder, cache Cache, logger logging.Logger, workers int, timeout time.Duration) *Resolver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if workers < 1 {
		workers = 1
	}
	return &Resolver{
		geo:     geo,
		cache:   cache,
		log:     logger,
		workers: workers,
		timeout: timeout,
	}
}

// Resolve looks up every distinct (subdivision, country) pair exactly once
// and maps the results back onto the rows. Lookup failures never abort the
// batch; the affected rows come back as rejections.
func (r *Resolver) Resolve(ctx context.Context, rows []models.SurveyRecord) ([]models.ResolvedRecord, []models.Rejection) {
	pairs := distinctPairs(rows)
	results := r.resolvePairs(ctx, pairs)

	var resolved []models.ResolvedRecord
	var rejections []models.Rejection
	for _, row := range rows {
		res := results[CacheKey(row.City, row.Country)]
		if !res.Resolved {
			rejections = append(rejections, models.Rejection{
				City:    row.City,
				Country: row.Country,
				Reason:  res.Reason,
				Detail:  res.Detail,
			})
			continue
		}
		resolved = append(resolved, models.ResolvedRecord{
			SurveyRecord:  row,
			CanonicalCity: res.City,
			CountryCode:   res.CountryCode,
			Latitude:      res.Latitude,
			Longitude:     res.Longitude,
		})
	}

	r.log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(resolved)},
		logging.Field{Key: logging.FieldDropped, Value: len(rejections)},
	).Info("Geo resolution finished")

	return resolved, rejections
}

type pair struct {
	city    string
	country string
}

func distinctPairs(rows []models.SurveyRecord) []pair {
	seen := make(map[pair]bool, len(rows))
	var pairs []pair
	for _, row := range rows {
		p := pair{city: row.City, country: row.Country}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].country != pairs[j].country {
			return pairs[i].country < pairs[j].country
		}
		return pairs[i].city < pairs[j].city
	})
	return pairs
}

func (r *Resolver) resolvePairs(ctx context.Context, pairs []pair) map[string]Resolution {
	results := make(map[string]Resolution, len(pairs))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for _, p := range pairs {
		p := p
		eg.Go(func() error {
			key := CacheKey(p.city, p.country)
			res, fromCache := r.lookupCached(egCtx, key, p)

			mu.Lock()
			results[key] = res
			mu.Unlock()

			if !fromCache {
				r.cachePut(key, res)
			}
			// Failures are row-local; never cancel the group.
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

func (r *Resolver) lookupCached(ctx context.Context, key string, p pair) (Resolution, bool) {
	if r.cache != nil {
		if res, ok := r.cache.Get(key); ok {
			r.log.WithFields(
				logging.Field{Key: logging.FieldCity, Value: p.city},
				logging.Field{Key: logging.FieldCountry, Value: p.country},
			).Debug("Geocode cache hit")
			return res, true
		}
	}
	return r.resolveOne(ctx, p.city, p.country), false
}

// cachePut stores definitive outcomes only. Transient lookup failures stay
// uncached so a later run can retry them.
func (r *Resolver) cachePut(key string, res Resolution) {
	if r.cache == nil || res.Reason == models.ReasonGeocodeFailed {
		return
	}
	r.cache.Put(key, res)
}

func (r *Resolver) resolveOne(ctx context.Context, city, country string) Resolution {
	query := fmt.Sprintf("%s, %s", city, country)

	loc, err := r.forward(ctx, query)
	if err != nil {
		r.log.WithError(err).WithField(logging.FieldQuery, query).Error("Forward geocoding failed")
		return unresolved(models.ReasonGeocodeFailed, err.Error())
	}
	if loc == nil {
		r.log.WithField(logging.FieldQuery, query).Warn("Location not found")
		return unresolved(models.ReasonNotFound, query)
	}

	addr, err := r.reverse(ctx, loc)
	if err != nil {
		r.log.WithError(err).WithField(logging.FieldQuery, query).Error("Reverse geocoding failed")
		return unresolved(models.ReasonGeocodeFailed, err.Error())
	}

	if !countryMatches(addr.Country, country) {
		r.log.WithFields(
			logging.Field{Key: logging.FieldCity, Value: city},
			logging.Field{Key: logging.FieldCountry, Value: addr.Country},
		).Warn("Reverse geocode returned a different country")
		return unresolved(models.ReasonCountryMismatch, addr.Country)
	}

	canonical := addr.City
	if canonical == "" {
		canonical = city
	} else if canonical != city {
		r.log.WithFields(
			logging.Field{Key: logging.FieldCity, Value: city},
			logging.Field{Key: "canonical_city", Value: canonical},
		).Info("Subdivision mapped to canonical city")
	}

	return Resolution{
		Resolved:    true,
		City:        canonical,
		CountryCode: addr.CountryCode,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
	}
}

func (r *Resolver) forward(ctx context.Context, query string) (*Location, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.geo.Forward(lookupCtx, query)
}

func (r *Resolver) reverse(ctx context.Context, loc *Location) (*Address, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.geo.Reverse(lookupCtx, loc.Latitude, loc.Longitude)
}

// countryMatches compares case-insensitively and accepts the one known alias
// pair the survey and the geocoder disagree on.
func countryMatches(got, want string) bool {
	if strings.EqualFold(got, want) {
		return true
	}
	return strings.EqualFold(got, "Czechia") && strings.EqualFold(want, "Czech Republic")
}

func unresolved(reason models.RejectReason, detail string) Resolution {
	return Resolution{Reason: reason, Detail: detail}
}
