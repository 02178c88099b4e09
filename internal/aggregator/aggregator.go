// Package aggregator collapses resolved survey rows into one record per
// canonical city: every price becomes the arithmetic mean over the group and
// the representative row supplies country and coordinates.
package aggregator

import (
	"sort"

	"github.com/riccardo-malabarba/cost-of-living/internal/currencyutils"
	"github.com/riccardo-malabarba/cost-of-living/internal/logging"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// roundPlaces is the number of decimal places kept in the processed dataset.
const roundPlaces = 2

// Aggregate groups rows by canonical city and averages every price field.
// A group whose subdivision names never equal the canonical city has no
// unambiguous coordinates and is dropped with a rejection. Output is sorted
// by city name and contains no duplicate cities by construction.
func Aggregate(rows []models.ResolvedRecord) ([]models.CanonicalCityRecord, []models.Rejection) {
	groups := make(map[string][]models.ResolvedRecord)
	for _, row := range rows {
		groups[row.CanonicalCity] = append(groups[row.CanonicalCity], row)
	}

	cities := make([]string, 0, len(groups))
	for city := range groups {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	var records []models.CanonicalCityRecord
	var rejections []models.Rejection
	for _, city := range cities {
		group := groups[city]

		rep, ok := representative(group)
		if !ok {
			log.WithFields(logrus.Fields{
				logging.FieldCity:  city,
				logging.FieldCount: len(group),
			}).Warn("No self-named representative row, dropping city")
			rejections = append(rejections, models.Rejection{
				City:    city,
				Country: group[0].Country,
				Reason:  models.ReasonNoRepresentative,
			})
			continue
		}

		rec := models.CanonicalCityRecord{
			City:        city,
			Country:     rep.Country,
			CountryCode: rep.CountryCode,
			Latitude:    rep.Latitude.Round(roundPlaces),
			Longitude:   rep.Longitude.Round(roundPlaces),
			PriceBasket: meanBasket(group),
		}
		records = append(records, rec)
	}

	log.WithFields(logrus.Fields{
		logging.FieldCount:   len(records),
		logging.FieldDropped: len(rejections),
	}).Info("Aggregated rows into canonical cities")

	return records, rejections
}

// representative picks the row whose original subdivision name equals the
// canonical city name; it alone carries the group's country and coordinates.
func representative(group []models.ResolvedRecord) (models.ResolvedRecord, bool) {
	for _, row := range group {
		if row.City == row.CanonicalCity {
			return row, true
		}
	}
	return models.ResolvedRecord{}, false
}

func meanBasket(group []models.ResolvedRecord) models.PriceBasket {
	rowValues := make([][]decimal.Decimal, len(group))
	for j := range group {
		rowValues[j] = group[j].Values()
	}

	values := make([]decimal.Decimal, models.NumPriceFields)
	column := make([]decimal.Decimal, len(group))
	for i := 0; i < models.NumPriceFields; i++ {
		for j := range group {
			column[j] = rowValues[j][i]
		}
		values[i] = currencyutils.Mean(column).Round(roundPlaces)
	}

	var basket models.PriceBasket
	_ = basket.SetValues(values)
	return basket
}
