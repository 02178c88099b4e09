package budget

import (
	"github.com/riccardo-malabarba/cost-of-living/internal/currencyutils"
	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/shopspring/decimal"
)

// Heuristic consumption constants behind the transport and clothing items.
// They are deliberate approximations carried over from the source model, not
// measured quantities.
const (
	// FuelLitresPerMonth approximates a private car's monthly fuel use.
	FuelLitresPerMonth = 40
	// TaxiRidesPerMonth is the assumed number of taxi rides (one flag-fall each).
	TaxiRidesPerMonth = 20
	// TaxiKilometresPerMonth is the assumed distance covered by those rides.
	TaxiKilometresPerMonth = 100
)

// clothingMonths maps the spend tier to the amortization period, in months,
// of one full outfit (jeans, dress, running shoes, leather shoes).
var clothingMonths = map[ClothingTier]int64{
	ClothingLow:    12,
	ClothingMedium: 6,
	ClothingHigh:   3,
}

// Record is the monthly budget derived for one city under one configuration.
// All amounts are in the canonical currency; the three trailing ratios are
// percentages of total income.
type Record struct {
	City      string          `csv:"City"`
	Country   string          `csv:"Country"`
	Latitude  decimal.Decimal `csv:"Latitude"`
	Longitude decimal.Decimal `csv:"Longitude"`

	MonthlySalary decimal.Decimal `csv:"Monthly Salary"`
	OtherIncome   decimal.Decimal `csv:"Other Monthly Income"`
	TotalIncome   decimal.Decimal `csv:"Total Monthly Income"`

	MealsOut       decimal.Decimal `csv:"Meals Out"`
	Groceries      decimal.Decimal `csv:"Groceries"`
	Clothing       decimal.Decimal `csv:"Clothing"`
	Social         decimal.Decimal `csv:"Social"`
	Transportation decimal.Decimal `csv:"Transportation"`
	Household      decimal.Decimal `csv:"Household"`
	Internet       decimal.Decimal `csv:"Internet"`
	Leisure        decimal.Decimal `csv:"Leisure"`
	Sports         decimal.Decimal `csv:"Sports"`
	Rent           decimal.Decimal `csv:"Rent"`
	OtherExpenses  decimal.Decimal `csv:"Other Monthly Expenses"`
	TotalExpenses  decimal.Decimal `csv:"Total Monthly Expenses"`

	Savings          decimal.Decimal `csv:"Monthly Savings"`
	SavingsToIncome  decimal.Decimal `csv:"Monthly Savings over Income"`
	ExpensesToIncome decimal.Decimal `csv:"Monthly Expenses over Income"`
	RentToIncome     decimal.Decimal `csv:"Monthly Rent over Income"`
}

var two = decimal.NewFromInt(2)

// Estimate computes the monthly budget for one city. It is a pure function:
// no I/O, no hidden state, neither input is mutated. The configuration must
// already be validated.
func Estimate(rec models.CanonicalCityRecord, cfg Configuration) Record {
	salary := rec.AverageMonthlyNetSalary
	if cfg.Salary == SalaryCustom {
		salary = decimal.NewFromFloat(cfg.SalaryCustom)
	}
	otherIncome := decimal.NewFromFloat(cfg.OtherIncome)
	totalIncome := salary.Add(otherIncome)

	// A mid-range meal is priced for two people, hence the halving.
	mealsOut := decimal.NewFromInt(int64(cfg.MealsOutCheap)).Mul(rec.MealInexpensiveRestaurant).
		Add(decimal.NewFromInt(int64(cfg.MealsOutExpensive)).Mul(rec.MealMidRangeRestaurant).Div(two))

	groceries := decimal.NewFromInt(int64(cfg.GroceryTrips)).Mul(basketCost(rec))

	social := decimal.NewFromInt(int64(cfg.SocialBeers)).
		Mul(rec.DomesticBeerMarket.Add(rec.ImportedBeerMarket)).Div(two)

	transportation := transportCost(rec, cfg.Transport)

	household := rec.UtilitiesMonthly
	internet := rec.Internet

	leisure := decimal.NewFromInt(int64(cfg.Cinemas)).Mul(rec.CinemaInternationalRelease).
		Add(decimal.NewFromInt(int64(cfg.SocialBeers)).
			Mul(rec.DomesticBeerRestaurant.Add(rec.ImportedBeerRestaurant)).Div(two))

	sports := decimal.NewFromInt(int64(cfg.PadelMatches)).Mul(rec.TennisCourtRent)
	if cfg.FitnessClub {
		sports = sports.Add(rec.FitnessClubMonthly)
	}

	outfit := rec.Jeans.Add(rec.SummerDress).Add(rec.NikeRunningShoes).Add(rec.MenLeatherShoes)
	clothing := outfit.Div(decimal.NewFromInt(clothingMonths[cfg.ClothesShopping]))

	rent := rentCost(rec, cfg)

	otherExpenses := decimal.NewFromFloat(cfg.OtherExpenses)

	totalExpenses := mealsOut.Add(groceries).Add(clothing).Add(social).Add(transportation).
		Add(household).Add(internet).Add(leisure).Add(sports).Add(rent).Add(otherExpenses)

	savings := totalIncome.Sub(totalExpenses)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return Record{
		City:      rec.City,
		Country:   rec.Country,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,

		MonthlySalary: salary,
		OtherIncome:   otherIncome,
		TotalIncome:   totalIncome,

		MealsOut:       mealsOut,
		Groceries:      groceries,
		Clothing:       clothing,
		Social:         social,
		Transportation: transportation,
		Household:      household,
		Internet:       internet,
		Leisure:        leisure,
		Sports:         sports,
		Rent:           rent,
		OtherExpenses:  otherExpenses,
		TotalExpenses:  totalExpenses,

		Savings:          savings,
		SavingsToIncome:  currencyutils.Ratio(savings, totalIncome),
		ExpensesToIncome: currencyutils.Ratio(totalExpenses, totalIncome),
		RentToIncome:     currencyutils.Ratio(rent, totalIncome),
	}
}

// basketCost prices one grocery trip: one base unit of each staple.
func basketCost(rec models.CanonicalCityRecord) decimal.Decimal {
	return rec.Milk.
		Add(rec.LoafOfBread).
		Add(rec.Rice).
		Add(rec.Eggs).
		Add(rec.LocalCheese).
		Add(rec.ChickenFillets).
		Add(rec.BeefRound).
		Add(rec.Apples).
		Add(rec.Banana).
		Add(rec.Oranges).
		Add(rec.Tomato).
		Add(rec.Potato).
		Add(rec.Onion).
		Add(rec.Lettuce).
		Add(rec.WaterMarket).
		Add(rec.WineMidRange)
}

func transportCost(rec models.CanonicalCityRecord, mode TransportMode) decimal.Decimal {
	switch mode {
	case TransportPrivate:
		return rec.Gasoline.Mul(decimal.NewFromInt(FuelLitresPerMonth))
	case TransportTaxi:
		return rec.TaxiStart.Mul(decimal.NewFromInt(TaxiRidesPerMonth)).
			Add(rec.Taxi1Km.Mul(decimal.NewFromInt(TaxiKilometresPerMonth)))
	default:
		return rec.MonthlyPassRegularPrice
	}
}

func rentCost(rec models.CanonicalCityRecord, cfg Configuration) decimal.Decimal {
	switch cfg.Rent {
	case RentCenter:
		return rec.Apartment1BedroomCityCentre
	case RentCustom:
		return decimal.NewFromFloat(cfg.RentCustom)
	default:
		return rec.Apartment1BedroomOutsideCentre
	}
}
