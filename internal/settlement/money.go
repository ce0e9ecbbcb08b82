package settlement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency describes how amounts are rendered for display.
type Currency struct {
	// Symbol prefixes the formatted amount (e.g., "R$", "$", "€").
	Symbol string

	// DecimalSep separates the integer and fractional parts.
	DecimalSep string

	// ThousandsSep groups the integer part in threes. Empty disables grouping.
	ThousandsSep string
}

// BRL is Brazilian real formatting: "R$ 1.234,56".
var BRL = Currency{Symbol: "R$", DecimalSep: ",", ThousandsSep: "."}

// Formatter renders decimal amounts as display strings for one currency.
// It is a stateless value: construct one per locale configuration instead
// of mutating process-wide formatting state.
type Formatter struct {
	currency Currency
}

// NewFormatter returns a formatter for the given currency.
func NewFormatter(c Currency) Formatter {
	return Formatter{currency: c}
}

// Format renders the amount rounded to 2 decimal places, with the
// currency symbol, grouping and separators applied. Negative amounts keep
// a leading minus: "-R$ 12,00".
func (f Formatter) Format(amount decimal.Decimal) string {
	s := amount.Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	if f.currency.Symbol != "" {
		b.WriteString(f.currency.Symbol)
		b.WriteString(" ")
	}
	b.WriteString(groupThousands(intPart, f.currency.ThousandsSep))
	b.WriteString(f.currency.DecimalSep)
	b.WriteString(fracPart)
	return b.String()
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
