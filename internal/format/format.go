// Package format turns raw scenario values into locale-formatted display strings.
//
// Every formatter is total: nil, NaN and infinite inputs render as the
// locale's Missing sentinel. Fixed-decimal output rounds half away from zero
// on the shortest decimal representation of the input, so 0.125 renders as
// "0,13" and -0.125 as "-0,13".
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Locale holds the separators and markers used when rendering numbers.
type Locale struct {
	GroupSeparator   string `yaml:"group_separator" json:"group_separator"`
	DecimalSeparator string `yaml:"decimal_separator" json:"decimal_separator"`
	CurrencySuffix   string `yaml:"currency_suffix" json:"currency_suffix"`
	PercentSuffix    string `yaml:"percent_suffix" json:"percent_suffix"`
	Missing          string `yaml:"missing" json:"missing"`
}

// French matches the dashboard output: "1 234 567 €", "12,34 %".
var French = Locale{
	GroupSeparator:   " ",
	DecimalSeparator: ",",
	CurrencySuffix:   " €",
	PercentSuffix:    " %",
	Missing:          "–",
}

// DefaultDigits is the decimal precision used for percentages and ratios.
const DefaultDigits = 2

var hundred = decimal.NewFromInt(100)

// Formatter renders values for one locale.
type Formatter struct {
	Locale Locale
}

func New(l Locale) Formatter {
	return Formatter{Locale: l}
}

// Money renders an amount rounded to whole units, grouped, with the currency suffix.
func (f Formatter) Money(v *float64) string {
	d, ok := toDecimal(v)
	if !ok {
		return f.Locale.Missing
	}
	return f.fixed(d, 0) + f.Locale.CurrencySuffix
}

// PercentFromFraction renders a fraction (0.1234) as a percentage ("12,34 %").
func (f Formatter) PercentFromFraction(v *float64, digits int) string {
	d, ok := toDecimal(v)
	if !ok {
		return f.Locale.Missing
	}
	return f.fixed(d.Mul(hundred), digits) + f.Locale.PercentSuffix
}

// PercentRaw renders a value already expressed in percentage units (12.34 -> "12,34 %").
func (f Formatter) PercentRaw(v *float64, digits int) string {
	d, ok := toDecimal(v)
	if !ok {
		return f.Locale.Missing
	}
	return f.fixed(d, digits) + f.Locale.PercentSuffix
}

// Ratio renders a plain ratio with no unit suffix.
func (f Formatter) Ratio(v *float64, digits int) string {
	d, ok := toDecimal(v)
	if !ok {
		return f.Locale.Missing
	}
	return f.fixed(d, digits)
}

// Count renders an integer count with grouping.
func (f Formatter) Count(v *int64) string {
	if v == nil {
		return f.Locale.Missing
	}
	return f.fixed(decimal.NewFromInt(*v), 0)
}

// Text returns s, or the missing sentinel when s is blank.
func (f Formatter) Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return f.Locale.Missing
	}
	return s
}

func (f Formatter) fixed(d decimal.Decimal, digits int) string {
	if digits < 0 {
		digits = 0
	}
	s := d.StringFixed(int32(digits))

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	out := sign + group(intPart, f.Locale.GroupSeparator)
	if fracPart != "" {
		out += f.Locale.DecimalSeparator + fracPart
	}
	return out
}

func group(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func toDecimal(v *float64) (decimal.Decimal, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return decimal.Decimal{}, false
	}
	// The shortest round-trip representation avoids binary artifacts such as
	// 0.1234*100 = 12.340000000000002.
	d, err := decimal.NewFromString(strconv.FormatFloat(*v, 'f', -1, 64))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

var defaultFormatter = New(French)

// Money formats with the French locale.
func Money(v *float64) string { return defaultFormatter.Money(v) }

// PercentFromFraction formats with the French locale.
func PercentFromFraction(v *float64, digits int) string {
	return defaultFormatter.PercentFromFraction(v, digits)
}

// PercentRaw formats with the French locale.
func PercentRaw(v *float64, digits int) string { return defaultFormatter.PercentRaw(v, digits) }

// Ratio formats with the French locale.
func Ratio(v *float64, digits int) string { return defaultFormatter.Ratio(v, digits) }

// Count formats with the French locale.
func Count(v *int64) string { return defaultFormatter.Count(v) }
