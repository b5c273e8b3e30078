package util

import (
	"fmt"
	"math"
)

const (
	decimalValue  = 100
	thousandValue = 1000
)

// FormatMoney renders an amount with two decimals using the given separators.
// Amounts are rounded to the nearest cent first.
func FormatMoney(amount float64, thousand, decimal string) string {
	var result string
	var isNegative bool

	value := int64(math.Round(amount * decimalValue))

	if value < 0 {
		value *= -1
		isNegative = true
	}

	// apply the decimal separator
	result = fmt.Sprintf("%s%02d%s", decimal, value%decimalValue, result)
	value /= decimalValue

	// for each 3 digits put the thousand separator
	for value >= thousandValue {
		result = fmt.Sprintf("%s%03d%s", thousand, value%thousandValue, result)
		value /= thousandValue
	}

	if isNegative {
		return fmt.Sprintf("-%d%s", value, result)
	}

	return fmt.Sprintf("%d%s", value, result)
}

// FormatCurrency renders an amount the way the dashboard shows it, e.g. "$1,234.50".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + FormatMoney(-amount, ",", ".")
	}
	return "$" + FormatMoney(amount, ",", ".")
}
