package coerce

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies the textual shape of a numeric field. The tax resolution
// rules treat each shape differently, so classification is exposed rather
// than buried inside the conversion.
type Kind int

const (
	// KindEmpty marks an absent, null, or blank value.
	KindEmpty Kind = iota
	// KindPercent marks a percent-suffixed string ("10%"). Percent values
	// are rates to be applied by the caller, never amounts.
	KindPercent
	// KindCurrency marks a currency-prefixed string ("$12.30").
	KindCurrency
	// KindDecimal marks a plain numeric with a decimal point ("10.5").
	KindDecimal
	// KindWhole marks a plain whole number ("10"). Upstream document
	// formats use whole numbers in tax columns to mean a rate.
	KindWhole
	// KindOther marks anything that does not parse as a number.
	KindOther
)

// Kind classifies the value. Grouping commas are ignored for the
// whole-vs-decimal distinction.
func (v Value) Kind() Kind {
	if v.IsEmpty() {
		return KindEmpty
	}
	s := v.Str()
	switch {
	case strings.HasSuffix(s, "%"):
		return KindPercent
	case strings.HasPrefix(s, "$"):
		return KindCurrency
	}
	cleaned := strings.ReplaceAll(s, ",", "")
	if _, err := decimal.NewFromString(cleaned); err != nil {
		return KindOther
	}
	if strings.Contains(cleaned, ".") {
		return KindDecimal
	}
	return KindWhole
}

// Decimal converts the value to a definite decimal amount. It never fails:
// null, empty, percent-suffixed, and unparseable inputs all yield zero.
// Currency symbols and grouping commas are stripped, and a fractional
// "<amount> / <count>" string is resolved by division.
func (v Value) Decimal() decimal.Decimal {
	if v.IsEmpty() {
		return decimal.Zero
	}
	s := v.Str()
	if strings.Contains(s, "/") {
		num, den, ok := v.Fraction()
		if !ok || den.IsZero() {
			return decimal.Zero
		}
		return num.Div(den)
	}
	return parseAmount(s)
}

// Percent returns the rate carried by a percent-suffixed string, and whether
// the value was percent-shaped at all.
func (v Value) Percent() (decimal.Decimal, bool) {
	s := v.Str()
	if !strings.HasSuffix(s, "%") {
		return decimal.Zero, false
	}
	return parseAmount(strings.TrimSuffix(s, "%")), true
}

// Fraction splits a "<amount> / <count>" string into its two sides. Both
// sides go through amount parsing, so "$76.50 / 6" works. ok is false when
// the value is not a two-part fraction.
func (v Value) Fraction() (num, den decimal.Decimal, ok bool) {
	parts := strings.Split(v.Str(), "/")
	if len(parts) != 2 {
		return decimal.Zero, decimal.Zero, false
	}
	return parseAmount(parts[0]), parseAmount(parts[1]), true
}

// parseAmount converts a single amount token, defaulting to zero. Percent
// strings deliberately coerce to zero here: a rate is not an amount.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
