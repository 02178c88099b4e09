// Package currencyutils provides common currency parsing and decimal helpers
// used by the normalizer and the budget model.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = regexp.MustCompile(`[€$£\s]`)

// ParseAmount parses a string representation of an amount into a decimal
// value. It tolerates currency symbols, surrounding whitespace and a comma
// decimal separator, all of which show up in survey exports.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts common currency string formats to one that
// decimal.NewFromString accepts: strips symbols and whitespace, and turns a
// lone comma decimal separator ("1234,56") into a dot.
func StandardizeAmount(amountStr string) string {
	amountStr = currencySymbols.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && !strings.Contains(amountStr, ".") {
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		// Both separators present: comma is a thousands separator.
		amountStr = strings.ReplaceAll(amountStr, ",", "")
	}

	return amountStr
}

// Mean returns the arithmetic mean of the given values, zero for an empty
// slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// Ratio returns value/base expressed as a percentage, or zero when the base
// is zero.
func Ratio(value, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return value.Div(base).Mul(decimal.NewFromInt(100))
}
