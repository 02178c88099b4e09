package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(city string) models.CanonicalCityRecord {
	values := make([]decimal.Decimal, models.NumPriceFields)
	for i := range values {
		values[i] = decimal.NewFromInt(int64(i + 1))
	}
	rec := models.CanonicalCityRecord{
		City:        city,
		Country:     "Austria",
		CountryCode: "at",
		Latitude:    decimal.RequireFromString("48.21"),
		Longitude:   decimal.RequireFromString("16.37"),
	}
	_ = rec.SetValues(values)
	return rec
}

func TestWriteReadRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out", "dataset.csv")
	records := []models.CanonicalCityRecord{sampleRecord("Vienna"), sampleRecord("Graz")}

	require.NoError(t, WriteCSVFile(records, file))

	got, err := ReadCSVFile[models.CanonicalCityRecord](file)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Vienna", got[0].City)
	assert.Equal(t, "at", got[0].CountryCode)
	assert.Equal(t, "48.21", got[0].Latitude.String())
	assert.True(t, got[0].MealInexpensiveRestaurant.Equal(decimal.NewFromInt(1)))
	assert.True(t, got[0].MortgageInterestRate.Equal(decimal.NewFromInt(55)))
}

func TestWriteCSVFile_Header(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, WriteCSVFile([]models.CanonicalCityRecord{sampleRecord("Vienna")}, file))

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "City,Country,CountryCode,Latitude,Longitude,"))
	assert.Contains(t, header, "Meal_InexpensiveRestaurant")
	assert.Contains(t, header, "AverageMonthlyNetSalary")
}

func TestWriteCSVFile_NilRows(t *testing.T) {
	err := WriteCSVFile[models.CanonicalCityRecord](nil, filepath.Join(t.TempDir(), "x.csv"))
	assert.Error(t, err)
}

func TestWriteCSVFile_EmptyRows(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSVFile([]models.CanonicalCityRecord{}, file))

	_, err := os.Stat(file)
	assert.NoError(t, err)
}

func TestReadCSVFile_MissingFile(t *testing.T) {
	_, err := ReadCSVFile[models.CanonicalCityRecord](filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSetDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)

	SetDelimiter(';')
	assert.Equal(t, ';', Delimiter)

	file := filepath.Join(t.TempDir(), "semi.csv")
	require.NoError(t, WriteCSVFile([]models.CanonicalCityRecord{sampleRecord("Vienna")}, file))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, strings.SplitN(string(data), "\n", 2)[0], "City;Country")
}
