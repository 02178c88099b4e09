// Package rawsurvey loads the raw consumer-price survey export. It validates
// the positional x1..x55 header against the declared schema before any row is
// accepted, so column drift in the upstream export fails loudly at load time.
package rawsurvey

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

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

// ParseFile reads the raw survey CSV and returns one RawPriceRecord per row.
// The header must contain every expected column; extra columns are ignored.
func ParseFile(filePath string) ([]models.RawPriceRecord, error) {
	log.WithField(logging.FieldFile, filePath).Info("Parsing raw survey file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening raw survey file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return Parse(file)
}

// Parse reads raw survey rows from r. See ParseFile.
func Parse(r io.Reader) ([]models.RawPriceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.RawPriceRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row %d: %w", line, err)
		}
		line++

		rec := models.RawPriceRecord{
			City:        cell(row, index["city"]),
			Country:     cell(row, index["country"]),
			DataQuality: cell(row, index["data_quality"]),
		}
		for i, spec := range models.Schema {
			rec.Prices[i] = cell(row, index[spec.Code])
		}
		records = append(records, rec)
	}

	log.WithField(logging.FieldCount, len(records)).Info("Successfully parsed raw survey rows")
	return records, nil
}

// ValidateFormat checks whether the file carries the expected survey header.
func ValidateFormat(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("error opening file for validation: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		return false, fmt.Errorf("error reading CSV header: %w", err)
	}

	if _, err := headerIndex(header); err != nil {
		log.WithError(err).Warn("Raw survey header validation failed")
		return false, nil
	}
	return true, nil
}

// headerIndex maps each expected column name to its position in the header.
// Every column in models.RawColumns must be present exactly once.
func headerIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := positions[name]; dup {
			return nil, fmt.Errorf("duplicate column %q in raw survey header", name)
		}
		positions[name] = i
	}

	expected := models.RawColumns()
	index := make(map[string]int, len(expected))
	for _, name := range expected {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("raw survey header is missing column %q (expected %d columns)", name, len(expected))
		}
		index[name] = pos
	}
	return index, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
