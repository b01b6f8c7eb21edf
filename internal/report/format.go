// Package report renders consolidated research results as text tables,
// CSV and XLSX. Rendering is presentation only; every number comes from
// the engine untouched.
package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer formats numbers in the Brazilian convention (1.234,56).
var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency renders v as Brazilian reais.
func Currency(v float64) string {
	return printer.Sprintf("R$ %v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Percent renders a ratio as a percentage with two decimals.
func Percent(ratio float64) string {
	return printer.Sprintf("%v%%", number.Decimal(ratio*100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// statusLabels are the report labels for each item status.
var statusLabels = map[string]string{
	"valid":             "VALID",
	"inexequible_flag":  "INEXEQUIBLE PRICES FLAGGED",
	"excessive_flag":    "EXCESSIVE PRICES FLAGGED",
	"insufficient_data": "INSUFFICIENT DATA",
}

// StatusLabel returns the report label for a status string.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}
