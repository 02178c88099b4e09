package models

import (
	"github.com/shopspring/decimal"
)

// RawPriceRecord is one row of the raw survey export, untouched. Prices stay
// strings at this point so that missing cells remain distinguishable from
// zero values.
type RawPriceRecord struct {
	City        string
	Country     string
	Prices      [NumPriceFields]string
	DataQuality string
}

// TrustedQuality is the data_quality value marking a row the source
// considers reliable.
const TrustedQuality = "1"

// SurveyRecord is a quality-filtered survey row with prices parsed and
// converted to the target currency.
type SurveyRecord struct {
	City    string
	Country string
	PriceBasket
}

// ResolvedRecord is a SurveyRecord enriched with the geocoded identity of its
// subdivision: the canonical city it belongs to, the ISO country code and the
// coordinates of the forward-geocode match.
type ResolvedRecord struct {
	SurveyRecord
	CanonicalCity string
	CountryCode   string
	Latitude      decimal.Decimal
	Longitude     decimal.Decimal
}

// CanonicalCityRecord is one row of the processed dataset: a deduplicated
// city with every price averaged over the survey rows that resolved to it.
// City names are unique within a table and coordinates are always set.
type CanonicalCityRecord struct {
	City        string          `csv:"City"`
	Country     string          `csv:"Country"`
	CountryCode string          `csv:"CountryCode"`
	Latitude    decimal.Decimal `csv:"Latitude"`
	Longitude   decimal.Decimal `csv:"Longitude"`
	PriceBasket
}
