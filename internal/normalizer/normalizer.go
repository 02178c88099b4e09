// Package normalizer turns raw survey rows into typed SurveyRecords: the
// positional x1..x55 columns become the semantic price basket and every price
// is converted from USD to the target currency with a fixed rate.
//
// The conversion cannot be applied twice by accident: input and output are
// different types, and only this package crosses between them.
package normalizer

import (
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

// Normalize parses and converts every row. Rows with unparseable numeric
// cells are rejected rather than aborting the batch; city and country pass
// through unchanged.
func Normalize(rows []models.RawPriceRecord, usdToTargetRate decimal.Decimal) ([]models.SurveyRecord, []models.Rejection) {
	var records []models.SurveyRecord
	var rejections []models.Rejection

	for _, row := range rows {
		rec, reject, ok := normalizeRow(row, usdToTargetRate)
		if !ok {
			log.WithFields(logrus.Fields{
				logging.FieldCity:   row.City,
				logging.FieldReason: reject.Reason,
			}).Warn("Dropping row with invalid numeric value")
			rejections = append(rejections, reject)
			continue
		}
		records = append(records, rec)
	}

	log.WithFields(logrus.Fields{
		logging.FieldCount:   len(records),
		logging.FieldDropped: len(rejections),
	}).Info("Normalized survey rows")

	return records, rejections
}

func normalizeRow(row models.RawPriceRecord, rate decimal.Decimal) (models.SurveyRecord, models.Rejection, bool) {
	values := make([]decimal.Decimal, models.NumPriceFields)
	for i, raw := range row.Prices {
		amount, err := currencyutils.ParseAmount(raw)
		if err != nil {
			return models.SurveyRecord{}, models.Rejection{
				City:    row.City,
				Country: row.Country,
				Reason:  models.ReasonInvalidNumber,
				Detail:  models.Schema[i].Name,
			}, false
		}
		values[i] = amount.Div(rate)
	}

	rec := models.SurveyRecord{City: row.City, Country: row.Country}
	if err := rec.SetValues(values); err != nil {
		// Length is fixed by the array above, so this cannot happen.
		return models.SurveyRecord{}, models.Rejection{
			City:    row.City,
			Country: row.Country,
			Reason:  models.ReasonInvalidNumber,
			Detail:  err.Error(),
		}, false
	}
	return rec, models.Rejection{}, true
}
