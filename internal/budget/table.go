package budget

import (
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

// roundPlaces is the number of decimal places kept for display stability.
const roundPlaces = 2

// BuildTable applies the model to every canonical city with one shared
// configuration. This is the hot path of an interactive session: it runs on
// every configuration change, allocates one output row per city and performs
// no I/O.
func BuildTable(records []models.CanonicalCityRecord, cfg Configuration) []Record {
	table := make([]Record, len(records))
	for i, rec := range records {
		table[i] = Estimate(rec, cfg).rounded()
	}

	log.WithField(logging.FieldCount, len(table)).Debug("Budget table rebuilt")
	return table
}

// rounded returns a copy with every amount rounded to two decimal places.
func (r Record) rounded() Record {
	r.Latitude = r.Latitude.Round(roundPlaces)
	r.Longitude = r.Longitude.Round(roundPlaces)
	r.MonthlySalary = r.MonthlySalary.Round(roundPlaces)
	r.OtherIncome = r.OtherIncome.Round(roundPlaces)
	r.TotalIncome = r.TotalIncome.Round(roundPlaces)
	r.MealsOut = r.MealsOut.Round(roundPlaces)
	r.Groceries = r.Groceries.Round(roundPlaces)
	r.Clothing = r.Clothing.Round(roundPlaces)
	r.Social = r.Social.Round(roundPlaces)
	r.Transportation = r.Transportation.Round(roundPlaces)
	r.Household = r.Household.Round(roundPlaces)
	r.Internet = r.Internet.Round(roundPlaces)
	r.Leisure = r.Leisure.Round(roundPlaces)
	r.Sports = r.Sports.Round(roundPlaces)
	r.Rent = r.Rent.Round(roundPlaces)
	r.OtherExpenses = r.OtherExpenses.Round(roundPlaces)
	r.TotalExpenses = r.TotalExpenses.Round(roundPlaces)
	r.Savings = r.Savings.Round(roundPlaces)
	r.SavingsToIncome = r.SavingsToIncome.Round(roundPlaces)
	r.ExpensesToIncome = r.ExpensesToIncome.Round(roundPlaces)
	r.RentToIncome = r.RentToIncome.Round(roundPlaces)
	return r
}
