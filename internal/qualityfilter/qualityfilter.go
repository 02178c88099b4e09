// Package qualityfilter drops survey rows that cannot be trusted: rows with
// missing values, rows outside the country allow-list and rows the source
// flagged as low-confidence. Dropping is policy, not an error, and every drop
// is returned with its reason.
package qualityfilter

import (
	"strings"

	"github.com/riccardo-malabarba/cost-of-living/internal/logging"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Filter returns the rows passing all three predicates and a rejection per
// dropped row. The predicates are independent, so their evaluation order does
// not change the result; the first failing one is reported.
func Filter(rows []models.RawPriceRecord, allowedCountries []string) ([]models.RawPriceRecord, []models.Rejection) {
	allowed := make(map[string]bool, len(allowedCountries))
	for _, c := range allowedCountries {
		allowed[c] = true
	}

	var kept []models.RawPriceRecord
	var rejections []models.Rejection
	for _, row := range rows {
		if reason, detail := check(row, allowed); reason != "" {
			log.WithFields(logrus.Fields{
				logging.FieldCity:    row.City,
				logging.FieldCountry: row.Country,
				logging.FieldReason:  reason,
			}).Debug("Dropping raw survey row")
			rejections = append(rejections, models.Rejection{
				City:    row.City,
				Country: row.Country,
				Reason:  reason,
				Detail:  detail,
			})
			continue
		}
		kept = append(kept, row)
	}

	log.WithFields(logrus.Fields{
		logging.FieldCount:   len(kept),
		logging.FieldDropped: len(rejections),
	}).Info("Quality filter applied")

	return kept, rejections
}

func check(row models.RawPriceRecord, allowed map[string]bool) (models.RejectReason, string) {
	if missing(row.City) || missing(row.Country) || missing(row.DataQuality) {
		return models.ReasonMissingValue, "empty city, country or data_quality"
	}
	for i, price := range row.Prices {
		if missing(price) {
			return models.ReasonMissingValue, models.Schema[i].Name
		}
	}
	if !allowed[row.Country] {
		return models.ReasonCountryNotInList, row.Country
	}
	if row.DataQuality != models.TrustedQuality {
		return models.ReasonUntrusted, row.DataQuality
	}
	return "", ""
}

func missing(value string) bool {
	return strings.TrimSpace(value) == ""
}
