package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var bahtPrinter = message.NewPrinter(language.Thai)

// FormatBaht renders a whole-Baht amount as "฿2,000".
func FormatBaht(amount float64) string {
	return bahtPrinter.Sprintf("฿%.0f", amount)
}
