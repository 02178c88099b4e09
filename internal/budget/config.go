// Package budget derives a monthly household budget from a canonical city
// record and a set of lifestyle parameters. Estimation is a pure function;
// configurations are validated eagerly when they are built, never inside the
// model.
package budget

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SalaryMode selects where the monthly salary comes from.
type SalaryMode string

const (
	SalaryAverage SalaryMode = "Average"
	SalaryCustom  SalaryMode = "Custom"
)

// ClothingTier selects the clothing replacement cadence.
type ClothingTier string

const (
	ClothingLow    ClothingTier = "Low"
	ClothingMedium ClothingTier = "Medium"
	ClothingHigh   ClothingTier = "High"
)

// TransportMode selects how the household gets around.
type TransportMode string

const (
	TransportPublic  TransportMode = "Public"
	TransportPrivate TransportMode = "Private"
	TransportTaxi    TransportMode = "Taxi"
)

// RentMode selects the housing situation.
type RentMode string

const (
	RentSuburbs RentMode = "Suburbs"
	RentCenter  RentMode = "Center"
	RentCustom  RentMode = "Custom"
)

// Configuration is the full set of lifestyle parameters driving the budget
// model. Counts are per month; money amounts are in the canonical currency.
type Configuration struct {
	Salary            SalaryMode    `yaml:"salary" validate:"oneof=Average Custom"`
	SalaryCustom      float64       `yaml:"salary_custom" validate:"gte=0"`
	OtherIncome       float64       `yaml:"other_income" validate:"gte=0"`
	MealsOutCheap     int           `yaml:"meals_out_cheap" validate:"gte=0"`
	MealsOutExpensive int           `yaml:"meals_out_expensive" validate:"gte=0"`
	GroceryTrips      int           `yaml:"grocery_trips" validate:"gte=0"`
	ClothesShopping   ClothingTier  `yaml:"clothes_shopping" validate:"oneof=Low Medium High"`
	Transport         TransportMode `yaml:"transport" validate:"oneof=Public Private Taxi"`
	SocialBeers       int           `yaml:"social_beers" validate:"gte=0"`
	FitnessClub       bool          `yaml:"fitness_club"`
	Cinemas           int           `yaml:"cinemas" validate:"gte=0"`
	PadelMatches      int           `yaml:"padel_matches" validate:"gte=0"`
	Rent              RentMode      `yaml:"rent" validate:"oneof=Suburbs Center Custom"`
	RentCustom        float64       `yaml:"rent_custom" validate:"gte=0"`
	OtherExpenses     float64       `yaml:"other_expenses" validate:"gte=0"`
}

// DefaultConfiguration returns the documented default lifestyle: average
// salary, public transport, a suburb one-bedroom, low clothing spend.
func DefaultConfiguration() Configuration {
	return Configuration{
		Salary:            SalaryAverage,
		SalaryCustom:      0,
		OtherIncome:       0,
		MealsOutCheap:     4,
		MealsOutExpensive: 2,
		GroceryTrips:      4,
		ClothesShopping:   ClothingLow,
		Transport:         TransportPublic,
		SocialBeers:       10,
		FitnessClub:       true,
		Cinemas:           2,
		PadelMatches:      2,
		Rent:              RentSuburbs,
		RentCustom:        0,
		OtherExpenses:     0,
	}
}

var validate = validator.New()

// Validate checks every enum choice and amount. An unrecognized choice or a
// negative amount is a caller error and never reaches the model.
func (c Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid budget configuration: %w", err)
	}
	return nil
}

// LoadConfiguration reads a YAML budget configuration. Fields absent from
// the file keep their defaults; the result is validated before it is
// returned.
func LoadConfiguration(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("error reading budget configuration: %w", err)
	}

	cfg := DefaultConfiguration()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("error parsing budget configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}
