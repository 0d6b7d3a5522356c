// Package money formats currency amounts and percentages for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Symbol prefixes formatted amounts
var Symbol = "₹"

// Format renders an amount rounded to whole units with thousands separators,
// e.g. ₹1,234,567.
func Format(d decimal.Decimal) string {
	return FormatWith(Symbol, d, 0)
}

// FormatFixed renders an amount with the given number of decimal places
func FormatFixed(d decimal.Decimal, places int32) string {
	return FormatWith(Symbol, d, places)
}

// FormatWith renders an amount using an explicit symbol
func FormatWith(symbol string, d decimal.Decimal, places int32) string {
	abs := d.Abs().Round(places)

	frac := ""
	if s := abs.StringFixed(places); places > 0 {
		if i := strings.IndexByte(s, '.'); i >= 0 {
			frac = s[i:]
		}
	}

	var b strings.Builder
	if d.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(printer.Sprintf("%d", abs.IntPart()))
	b.WriteString(frac)
	return b.String()
}

// Percent renders a whole-percent value with one decimal place
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// Compact renders large amounts in thousands or millions, e.g. 1.25M
func Compact(d decimal.Decimal) string {
	abs := d.Abs()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return sign + Symbol + abs.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return sign + Symbol + abs.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	default:
		return sign + Symbol + abs.StringFixed(0)
	}
}
