// Package models defines the data types flowing through the cost-of-living
// pipeline: the raw survey rows, the normalized price basket, the canonical
// per-city records and the rejection bookkeeping shared by all stages.
package models

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
)

// NumPriceFields is the number of numeric price columns in the survey export.
const NumPriceFields = 55

// FieldSpec describes one numeric survey column: the positional code used by
// the upstream export (x1..x55), the semantic name used everywhere downstream,
// the unit the price refers to, and a human-readable description.
type FieldSpec struct {
	Code        string
	Name        string
	Unit        string
	Description string
}

// Schema is the fixed, ordered list of price columns. The order matches the
// raw survey export; PriceBasket declares its fields in the same order, which
// is verified at package init.
var Schema = [NumPriceFields]FieldSpec{
	{"x1", "Meal_InexpensiveRestaurant", "1 meal", "Meal, inexpensive restaurant"},
	{"x2", "Meal_MidRangeRestaurant", "meal for 2", "Meal for 2 people, mid-range restaurant, three-course"},
	{"x3", "McMeal_McDonalds", "1 combo", "McMeal at McDonalds or equivalent combo meal"},
	{"x4", "DomesticBeer_Restaurant", "0.5 l", "Domestic beer, draught, in restaurants"},
	{"x5", "ImportedBeer_Restaurant", "0.33 l", "Imported beer, bottle, in restaurants"},
	{"x6", "Cappuccino_Restaurant", "1 cup", "Cappuccino, regular, in restaurants"},
	{"x7", "CokePepsi_Restaurant", "0.33 l", "Coke/Pepsi, bottle, in restaurants"},
	{"x8", "Water_Restaurant", "0.33 l", "Water, bottle, in restaurants"},
	{"x9", "Milk", "1 l", "Milk, regular"},
	{"x10", "LoafOfBread", "500 g", "Loaf of fresh white bread"},
	{"x11", "Rice", "1 kg", "Rice, white"},
	{"x12", "Eggs", "12", "Eggs, regular"},
	{"x13", "LocalCheese", "1 kg", "Local cheese"},
	{"x14", "ChickenFillets", "1 kg", "Chicken fillets"},
	{"x15", "BeefRound", "1 kg", "Beef round or equivalent back leg red meat"},
	{"x16", "Apples", "1 kg", "Apples"},
	{"x17", "Banana", "1 kg", "Banana"},
	{"x18", "Oranges", "1 kg", "Oranges"},
	{"x19", "Tomato", "1 kg", "Tomato"},
	{"x20", "Potato", "1 kg", "Potato"},
	{"x21", "Onion", "1 kg", "Onion"},
	{"x22", "Lettuce", "1 head", "Lettuce"},
	{"x23", "Water_Market", "1.5 l", "Water, bottle, at the market"},
	{"x24", "Wine_MidRange", "1 bottle", "Bottle of mid-range wine, at the market"},
	{"x25", "DomesticBeer_Market", "0.5 l", "Domestic beer, bottle, at the market"},
	{"x26", "ImportedBeer_Market", "0.33 l", "Imported beer, bottle, at the market"},
	{"x27", "Cigarettes", "20 pack", "Cigarettes, Marlboro"},
	{"x28", "OneWayTicket_LocalTransport", "1 ticket", "One-way ticket, local transport"},
	{"x29", "MonthlyPass_RegularPrice", "monthly", "Monthly transit pass, regular price"},
	{"x30", "TaxiStart", "1 start", "Taxi start, normal tariff"},
	{"x31", "Taxi1km", "1 km", "Taxi, normal tariff"},
	{"x32", "Taxi1hourWaiting", "1 h", "Taxi waiting, normal tariff"},
	{"x33", "Gasoline", "1 l", "Gasoline"},
	{"x34", "VolkswagenGolf", "1 car", "Volkswagen Golf 1.4 90 KW Trendline or equivalent new car"},
	{"x35", "ToyotaCorolla", "1 car", "Toyota Corolla Sedan 1.6l 97kW Comfort or equivalent new car"},
	{"x36", "Utilities_Monthly", "monthly", "Basic utilities for 85m2 apartment"},
	{"x37", "MobileTariff_Local", "1 min", "Prepaid mobile tariff, local, no plan"},
	{"x38", "Internet", "monthly", "Internet, 60 Mbps or more, unlimited"},
	{"x39", "FitnessClub_Monthly", "monthly", "Fitness club fee for 1 adult"},
	{"x40", "TennisCourtRent", "1 h", "Tennis court rent, weekend"},
	{"x41", "Cinema_InternationalRelease", "1 seat", "Cinema, international release"},
	{"x42", "Preschool_Monthly", "monthly", "Private preschool, full day, 1 child"},
	{"x43", "InternationalPrimarySchool_Yearly", "yearly", "International primary school, 1 child"},
	{"x44", "Jeans", "1 pair", "Jeans, Levis 501 or similar"},
	{"x45", "SummerDress", "1 dress", "Summer dress in a chain store"},
	{"x46", "NikeRunningShoes", "1 pair", "Nike running shoes, mid-range"},
	{"x47", "MenLeatherShoes", "1 pair", "Men leather business shoes"},
	{"x48", "Apartment1Bedroom_CityCentre", "monthly", "Apartment, 1 bedroom, in city centre"},
	{"x49", "Apartment1Bedroom_OutsideCentre", "monthly", "Apartment, 1 bedroom, outside of centre"},
	{"x50", "Apartment3Bedrooms_CityCentre", "monthly", "Apartment, 3 bedrooms, in city centre"},
	{"x51", "Apartment3Bedrooms_OutsideCentre", "monthly", "Apartment, 3 bedrooms, outside of centre"},
	{"x52", "PricePerSquareMeter_CityCentre", "1 m2", "Price per square meter to buy, city centre"},
	{"x53", "PricePerSquareMeter_OutsideCentre", "1 m2", "Price per square meter to buy, outside of centre"},
	{"x54", "AverageMonthlyNetSalary", "monthly", "Average monthly net salary, after tax"},
	{"x55", "MortgageInterestRate", "percent", "Mortgage interest rate, yearly, 20 years fixed-rate"},
}

// PriceBasket holds the 55 survey prices under their semantic names.
// Field order matches Schema exactly; the init check below guarantees it.
type PriceBasket struct {
	MealInexpensiveRestaurant        decimal.Decimal `csv:"Meal_InexpensiveRestaurant"`
	MealMidRangeRestaurant           decimal.Decimal `csv:"Meal_MidRangeRestaurant"`
	McMealMcDonalds                  decimal.Decimal `csv:"McMeal_McDonalds"`
	DomesticBeerRestaurant           decimal.Decimal `csv:"DomesticBeer_Restaurant"`
	ImportedBeerRestaurant           decimal.Decimal `csv:"ImportedBeer_Restaurant"`
	CappuccinoRestaurant             decimal.Decimal `csv:"Cappuccino_Restaurant"`
	CokePepsiRestaurant              decimal.Decimal `csv:"CokePepsi_Restaurant"`
	WaterRestaurant                  decimal.Decimal `csv:"Water_Restaurant"`
	Milk                             decimal.Decimal `csv:"Milk"`
	LoafOfBread                      decimal.Decimal `csv:"LoafOfBread"`
	Rice                             decimal.Decimal `csv:"Rice"`
	Eggs                             decimal.Decimal `csv:"Eggs"`
	LocalCheese                      decimal.Decimal `csv:"LocalCheese"`
	ChickenFillets                   decimal.Decimal `csv:"ChickenFillets"`
	BeefRound                        decimal.Decimal `csv:"BeefRound"`
	Apples                           decimal.Decimal `csv:"Apples"`
	Banana                           decimal.Decimal `csv:"Banana"`
	Oranges                          decimal.Decimal `csv:"Oranges"`
	Tomato                           decimal.Decimal `csv:"Tomato"`
	Potato                           decimal.Decimal `csv:"Potato"`
	Onion                            decimal.Decimal `csv:"Onion"`
	Lettuce                          decimal.Decimal `csv:"Lettuce"`
	WaterMarket                      decimal.Decimal `csv:"Water_Market"`
	WineMidRange                     decimal.Decimal `csv:"Wine_MidRange"`
	DomesticBeerMarket               decimal.Decimal `csv:"DomesticBeer_Market"`
	ImportedBeerMarket               decimal.Decimal `csv:"ImportedBeer_Market"`
	Cigarettes                       decimal.Decimal `csv:"Cigarettes"`
	OneWayTicketLocalTransport       decimal.Decimal `csv:"OneWayTicket_LocalTransport"`
	MonthlyPassRegularPrice          decimal.Decimal `csv:"MonthlyPass_RegularPrice"`
	TaxiStart                        decimal.Decimal `csv:"TaxiStart"`
	Taxi1Km                          decimal.Decimal `csv:"Taxi1km"`
	Taxi1HourWaiting                 decimal.Decimal `csv:"Taxi1hourWaiting"`
	Gasoline                         decimal.Decimal `csv:"Gasoline"`
	VolkswagenGolf                   decimal.Decimal `csv:"VolkswagenGolf"`
	ToyotaCorolla                    decimal.Decimal `csv:"ToyotaCorolla"`
	UtilitiesMonthly                 decimal.Decimal `csv:"Utilities_Monthly"`
	MobileTariffLocal                decimal.Decimal `csv:"MobileTariff_Local"`
	Internet                         decimal.Decimal `csv:"Internet"`
	FitnessClubMonthly               decimal.Decimal `csv:"FitnessClub_Monthly"`
	TennisCourtRent                  decimal.Decimal `csv:"TennisCourtRent"`
	CinemaInternationalRelease       decimal.Decimal `csv:"Cinema_InternationalRelease"`
	PreschoolMonthly                 decimal.Decimal `csv:"Preschool_Monthly"`
	InternationalPrimarySchoolYearly decimal.Decimal `csv:"InternationalPrimarySchool_Yearly"`
	Jeans                            decimal.Decimal `csv:"Jeans"`
	SummerDress                      decimal.Decimal `csv:"SummerDress"`
	NikeRunningShoes                 decimal.Decimal `csv:"NikeRunningShoes"`
	MenLeatherShoes                  decimal.Decimal `csv:"MenLeatherShoes"`
	Apartment1BedroomCityCentre      decimal.Decimal `csv:"Apartment1Bedroom_CityCentre"`
	Apartment1BedroomOutsideCentre   decimal.Decimal `csv:"Apartment1Bedroom_OutsideCentre"`
	Apartment3BedroomsCityCentre     decimal.Decimal `csv:"Apartment3Bedrooms_CityCentre"`
	Apartment3BedroomsOutsideCentre  decimal.Decimal `csv:"Apartment3Bedrooms_OutsideCentre"`
	PricePerSquareMeterCityCentre    decimal.Decimal `csv:"PricePerSquareMeter_CityCentre"`
	PricePerSquareMeterOutsideCentre decimal.Decimal `csv:"PricePerSquareMeter_OutsideCentre"`
	AverageMonthlyNetSalary          decimal.Decimal `csv:"AverageMonthlyNetSalary"`
	MortgageInterestRate             decimal.Decimal `csv:"MortgageInterestRate"`
}

var (
	basketType  = reflect.TypeOf(PriceBasket{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

func init() {
	if err := checkSchema(); err != nil {
		panic(err)
	}
}

// checkSchema verifies that PriceBasket and Schema agree field by field.
// A mismatch is a programming error, so callers never see it at runtime.
func checkSchema() error {
	if basketType.NumField() != NumPriceFields {
		return fmt.Errorf("models: PriceBasket has %d fields, schema expects %d", basketType.NumField(), NumPriceFields)
	}
	seen := make(map[string]bool, NumPriceFields)
	for i := 0; i < NumPriceFields; i++ {
		f := basketType.Field(i)
		if f.Type != decimalType {
			return fmt.Errorf("models: PriceBasket.%s is %s, want decimal.Decimal", f.Name, f.Type)
		}
		tag := f.Tag.Get("csv")
		if tag != Schema[i].Name {
			return fmt.Errorf("models: PriceBasket.%s tagged %q, schema position %d is %q", f.Name, tag, i, Schema[i].Name)
		}
		if seen[tag] {
			return fmt.Errorf("models: duplicate field name %q", tag)
		}
		seen[tag] = true
		if Schema[i].Code != fmt.Sprintf("x%d", i+1) {
			return fmt.Errorf("models: schema position %d has code %q, want x%d", i, Schema[i].Code, i+1)
		}
	}
	return nil
}

// RawColumns returns the full expected header of the raw survey export:
// city, country, x1..x55, data_quality.
func RawColumns() []string {
	cols := make([]string, 0, NumPriceFields+3)
	cols = append(cols, "city", "country")
	for _, f := range Schema {
		cols = append(cols, f.Code)
	}
	return append(cols, "data_quality")
}

// Values returns the basket's prices in schema order.
func (b *PriceBasket) Values() []decimal.Decimal {
	v := reflect.ValueOf(b).Elem()
	out := make([]decimal.Decimal, NumPriceFields)
	for i := range out {
		out[i] = v.Field(i).Interface().(decimal.Decimal)
	}
	return out
}

// SetValues fills the basket from a slice of prices in schema order.
func (b *PriceBasket) SetValues(values []decimal.Decimal) error {
	if len(values) != NumPriceFields {
		return fmt.Errorf("models: got %d values, want %d", len(values), NumPriceFields)
	}
	v := reflect.ValueOf(b).Elem()
	for i := range values {
		v.Field(i).Set(reflect.ValueOf(values[i]))
	}
	return nil
}

// Round returns a copy of the basket with every price rounded to the given
// number of decimal places.
func (b *PriceBasket) Round(places int32) PriceBasket {
	values := b.Values()
	for i := range values {
		values[i] = values[i].Round(places)
	}
	var out PriceBasket
	_ = out.SetValues(values)
	return out
}
