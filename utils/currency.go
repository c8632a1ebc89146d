package utils

import (
	"fmt"
	"strings"

	"shopfront/config"
)

// FormatPrice renders a monetary amount as a localized currency string,
// e.g. 1234.5 -> "$1,234.50". Zero renders as "$0.00".
func FormatPrice(amount float64) string {
	symbol := "$"
	if config.AppConfig != nil && config.AppConfig.CurrencySymbol != "" {
		symbol = config.AppConfig.CurrencySymbol
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	whole, cents := parts[0], parts[1]

	var b strings.Builder
	n := len(whole)
	for i, digit := range whole {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := symbol + b.String() + "." + cents
	if negative {
		out = "-" + out
	}
	return out
}

// FormatShipping renders a shipping amount, substituting the literal "Free"
// when shipping costs nothing.
func FormatShipping(amount float64) string {
	if amount == 0 {
		return "Free"
	}
	return FormatPrice(amount)
}
