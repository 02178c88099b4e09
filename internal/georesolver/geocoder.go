// Package georesolver canonicalizes survey subdivisions into city identities
// using an external geocoding service: a forward lookup to find the place,
// then a reverse lookup to read its structured address. Lookups are cached,
// rate-bounded and failure-tolerant; a row that cannot be resolved is dropped
// downstream, never fatal.
package georesolver

import (
	"context"

	"github.com/shopspring/decimal"
)

// Location is the coordinate pair of a forward-geocode match.
type Location struct {
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

// Address is the structured result of a reverse lookup.
type Address struct {
	City        string
	Country     string
	CountryCode string
}

// Geocoder is the external geocoding capability. Forward returns nil without
// error when the query has no match; both calls may fail or time out and the
// caller treats that as a recoverable per-row condition.
type Geocoder interface {
	Forward(ctx context.Context, query string) (*Location, error)
	Reverse(ctx context.Context, lat, lon decimal.Decimal) (*Address, error)
}
