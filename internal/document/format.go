package document

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// All money stays floating-point through the calculation chain; rounding to
// two decimals happens here, at formatting time, and nowhere earlier.

var usd = message.NewPrinter(language.AmericanEnglish)

// Money formats a USD amount with thousands separators and two decimals.
func Money(v float64) string {
	return usd.Sprintf("$%.2f", v)
}

// Percent formats a plain-number percentage with one decimal.
func Percent(v float64) string {
	return usd.Sprintf("%.1f%%", v)
}

// Minutes formats a voice-minute count.
func Minutes(n int) string {
	return usd.Sprintf("%d minutes", n)
}
