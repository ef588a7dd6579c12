package utils

import (
	"fmt"
	"math"
)

// RoundAmount rounds a currency amount to 2 decimal places. All totals and
// prices pass through here so float arithmetic never accumulates drift.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatAmount renders an amount with exactly two decimals, e.g. 3.5 -> "3.50".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", RoundAmount(amount))
}
