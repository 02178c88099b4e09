package qualityfilter

import (
	"testing"

	"github.com/riccardo-malabarba/cost-of-living/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowed = []string{"Austria", "Italy"}

func goodRow(city, country string) models.RawPriceRecord {
	row := models.RawPriceRecord{City: city, Country: country, DataQuality: models.TrustedQuality}
	for i := range row.Prices {
		row.Prices[i] = "1.0"
	}
	return row
}

func TestFilter_KeepsCleanRows(t *testing.T) {
	rows := []models.RawPriceRecord{
		goodRow("Vienna", "Austria"),
		goodRow("Milan", "Italy"),
	}

	kept, rejections := Filter(rows, allowed)
	assert.Len(t, kept, 2)
	assert.Empty(t, rejections)
}

func TestFilter_Rejections(t *testing.T) {
	missingPrice := goodRow("Graz", "Austria")
	missingPrice.Prices[8] = " "

	noCity := goodRow("", "Austria")
	untrusted := goodRow("Linz", "Austria")
	untrusted.DataQuality = "0"

	tests := []struct {
		name   string
		row    models.RawPriceRecord
		reason models.RejectReason
		detail string
	}{
		{name: "missing city", row: noCity, reason: models.ReasonMissingValue},
		{name: "missing price cell", row: missingPrice, reason: models.ReasonMissingValue, detail: "Milk"},
		{name: "country not allowed", row: goodRow("Oslo", "Norway"), reason: models.ReasonCountryNotInList, detail: "Norway"},
		{name: "untrusted quality flag", row: untrusted, reason: models.ReasonUntrusted, detail: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, rejections := Filter([]models.RawPriceRecord{tt.row}, allowed)
			assert.Empty(t, kept)
			require.Len(t, rejections, 1)
			assert.Equal(t, tt.reason, rejections[0].Reason)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, rejections[0].Detail)
			}
		})
	}
}

func TestFilter_MixedBatch(t *testing.T) {
	rows := []models.RawPriceRecord{
		goodRow("Vienna", "Austria"),
		goodRow("Oslo", "Norway"),
		goodRow("Milan", "Italy"),
	}

	kept, rejections := Filter(rows, allowed)
	require.Len(t, kept, 2)
	assert.Equal(t, "Vienna", kept[0].City)
	assert.Equal(t, "Milan", kept[1].City)
	require.Len(t, rejections, 1)
	assert.Equal(t, "Oslo", rejections[0].City)
}

func TestFilter_EmptyInput(t *testing.T) {
	kept, rejections := Filter(nil, allowed)
	assert.Empty(t, kept)
	assert.Empty(t, rejections)
}
