package budget

import (
	"testing"

	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cityRecord builds a canonical record with every price set to the same value,
// so expected amounts stay easy to derive by hand.
func cityRecord(price string) models.CanonicalCityRecord {
	values := make([]decimal.Decimal, models.NumPriceFields)
	for i := range values {
		values[i] = decimal.RequireFromString(price)
	}

	rec := models.CanonicalCityRecord{
		City:        "Vienna",
		Country:     "Austria",
		CountryCode: "at",
		Latitude:    decimal.RequireFromString("48.21"),
		Longitude:   decimal.RequireFromString("16.37"),
	}
	_ = rec.SetValues(values)
	return rec
}

func TestEstimate_DefaultConfiguration(t *testing.T) {
	rec := cityRecord("10")
	out := Estimate(rec, DefaultConfiguration())

	assert.Equal(t, "Vienna", out.City)
	assert.Equal(t, "Austria", out.Country)

	// Income comes from the city's average salary.
	assert.Equal(t, "10", out.MonthlySalary.String())
	assert.Equal(t, "10", out.TotalIncome.String())

	// 4 cheap meals at 10 plus 2 mid-range meals, each priced for two.
	assert.Equal(t, "50", out.MealsOut.String())

	// 4 trips, 16 staples at 10 each.
	assert.Equal(t, "640", out.Groceries.String())

	// 10 beers at the market-beer average of (10+10)/2.
	assert.Equal(t, "100", out.Social.String())

	// Public transport: the monthly pass.
	assert.Equal(t, "10", out.Transportation.String())

	assert.Equal(t, "10", out.Household.String())
	assert.Equal(t, "10", out.Internet.String())

	// 2 cinema seats plus 10 beers at the restaurant-beer average.
	assert.Equal(t, "120", out.Leisure.String())

	// Fitness fee plus 2 court rentals.
	assert.Equal(t, "30", out.Sports.String())

	// One outfit of four items amortized over 12 months.
	assert.Equal(t, "3.33", out.Clothing.Round(2).String())

	// Suburb one-bedroom.
	assert.Equal(t, "10", out.Rent.String())

	assert.Equal(t, "983.33", out.TotalExpenses.Round(2).String())

	// Expenses dwarf income here, so savings floor at zero.
	assert.True(t, out.Savings.IsZero())
	assert.True(t, out.SavingsToIncome.IsZero())
	assert.Equal(t, "100", out.RentToIncome.String())
}

func TestEstimate_CustomSalaryAndIncome(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Salary = SalaryCustom
	cfg.SalaryCustom = 3000
	cfg.OtherIncome = 500

	out := Estimate(cityRecord("10"), cfg)
	assert.Equal(t, "3000", out.MonthlySalary.String())
	assert.Equal(t, "500", out.OtherIncome.String())
	assert.Equal(t, "3500", out.TotalIncome.String())

	// Positive savings are not floored.
	assert.Equal(t, "2516.67", out.Savings.Round(2).String())
	// Savings and expense shares cover the whole income.
	assert.Equal(t, "100", out.SavingsToIncome.Add(out.ExpensesToIncome).Round(2).String())
}

func TestEstimate_ZeroIncomeRatios(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Salary = SalaryCustom
	cfg.SalaryCustom = 0

	out := Estimate(cityRecord("10"), cfg)
	assert.True(t, out.TotalIncome.IsZero())
	assert.True(t, out.SavingsToIncome.IsZero())
	assert.True(t, out.ExpensesToIncome.IsZero())
	assert.True(t, out.RentToIncome.IsZero())
}

func TestEstimate_TransportModes(t *testing.T) {
	rec := cityRecord("10")

	tests := []struct {
		mode     TransportMode
		expected string
	}{
		{TransportPublic, "10"},   // monthly pass
		{TransportPrivate, "400"}, // 40 litres of gasoline
		{TransportTaxi, "1200"},   // 20 starts plus 100 km
	}

	for _, tt := range tests {
		cfg := DefaultConfiguration()
		cfg.Transport = tt.mode
		out := Estimate(rec, cfg)
		assert.Equal(t, tt.expected, out.Transportation.String(), "mode %s", tt.mode)
	}
}

func TestEstimate_TransportSwitchOnlyMovesTransport(t *testing.T) {
	rec := cityRecord("10")

	public := Estimate(rec, DefaultConfiguration())
	cfg := DefaultConfiguration()
	cfg.Transport = TransportTaxi
	taxi := Estimate(rec, cfg)

	assert.Equal(t, public.MealsOut.String(), taxi.MealsOut.String())
	assert.Equal(t, public.Groceries.String(), taxi.Groceries.String())
	assert.Equal(t, public.Rent.String(), taxi.Rent.String())
	assert.NotEqual(t, public.Transportation.String(), taxi.Transportation.String())

	diff := taxi.TotalExpenses.Sub(public.TotalExpenses)
	assert.Equal(t, taxi.Transportation.Sub(public.Transportation).String(), diff.String())
}

func TestEstimate_ClothingTiers(t *testing.T) {
	rec := cityRecord("30") // outfit of four items costs 120

	tests := []struct {
		tier     ClothingTier
		expected string
	}{
		{ClothingLow, "10"},    // /12
		{ClothingMedium, "20"}, // /6
		{ClothingHigh, "40"},   // /3
	}

	for _, tt := range tests {
		cfg := DefaultConfiguration()
		cfg.ClothesShopping = tt.tier
		out := Estimate(rec, cfg)
		assert.Equal(t, tt.expected, out.Clothing.String(), "tier %s", tt.tier)
	}
}

func TestEstimate_RentModes(t *testing.T) {
	rec := cityRecord("10")
	centre := decimal.RequireFromString("900")
	suburbs := decimal.RequireFromString("600")
	rec.Apartment1BedroomCityCentre = centre
	rec.Apartment1BedroomOutsideCentre = suburbs

	cfg := DefaultConfiguration()
	assert.Equal(t, "600", Estimate(rec, cfg).Rent.String())

	cfg.Rent = RentCenter
	assert.Equal(t, "900", Estimate(rec, cfg).Rent.String())

	cfg.Rent = RentCustom
	cfg.RentCustom = 450.5
	assert.Equal(t, "450.5", Estimate(rec, cfg).Rent.String())
}

func TestEstimate_NoFitnessClub(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.FitnessClub = false
	cfg.PadelMatches = 3

	out := Estimate(cityRecord("10"), cfg)
	assert.Equal(t, "30", out.Sports.String())
}

func TestEstimate_ZeroCountsZeroExpenses(t *testing.T) {
	cfg := Configuration{
		Salary:          SalaryCustom,
		ClothesShopping: ClothingLow,
		Transport:       TransportPublic,
		Rent:            RentCustom,
	}
	require.NoError(t, cfg.Validate())

	rec := cityRecord("10")
	out := Estimate(rec, cfg)

	assert.True(t, out.MealsOut.IsZero())
	assert.True(t, out.Groceries.IsZero())
	assert.True(t, out.Social.IsZero())
	assert.True(t, out.Leisure.IsZero())
	assert.True(t, out.Sports.IsZero())
	assert.True(t, out.Rent.IsZero())
	// Utilities, internet, transport pass and clothing amortization remain.
	assert.Equal(t, "33.33", out.TotalExpenses.Round(2).String())
}

func TestEstimate_DoesNotMutateInputs(t *testing.T) {
	rec := cityRecord("10")
	before := rec.Values()

	_ = Estimate(rec, DefaultConfiguration())
	assert.Equal(t, before, rec.Values())
}
