// Package money converts between user-entered amount strings and integer
// minor units (euro cents). All ledger arithmetic happens on minor units;
// floats never leave this package.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseToMinorUnits parses a locale-formatted amount into minor units.
//
// A comma, when present, is the decimal separator and any dots left of it
// are thousands separators. Without a comma, a dot is the decimal
// separator. Currency symbols and other stray characters are ignored.
// Unparseable input resolves to 0 rather than an error; callers accepting
// user input must enforce positivity themselves.
func ParseToMinorUnits(input string) int64 {
	s := strings.Join(strings.Fields(input), "")

	if i := strings.Index(s, ","); i >= 0 {
		s = strings.ReplaceAll(s[:i], ".", "") + "." + s[i+1:]
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0
	}
	return d.Shift(2).Round(0).IntPart()
}

// Formatter renders minor units in a locale's currency convention.
type Formatter struct {
	printer    *message.Printer
	symbol     string
	decimalSep string
}

// NewFormatter builds a formatter for the given BCP 47 tag and ISO 4217
// currency code. Unknown codes fall back to the code itself as symbol.
func NewFormatter(tag language.Tag, code string) *Formatter {
	p := message.NewPrinter(tag)
	symbol := code
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = p.Sprint(currency.Symbol(unit))
	}
	return &Formatter{printer: p, symbol: symbol, decimalSep: decimalSeparator(p)}
}

// decimalSeparator probes the locale's decimal mark. 0.5 is exactly
// representable in binary, so the probe never rounds.
func decimalSeparator(p *message.Printer) string {
	probe := p.Sprint(number.Decimal(0.5,
		number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	if sep := strings.Trim(probe, "05"); sep != "" {
		return sep
	}
	return ","
}

// FormatMinorUnits renders cents as a display amount, e.g. 123456 as
// "€ 1.234,56" under nl-BE. The output round-trips through
// ParseToMinorUnits. Whole and fractional parts are split in integer
// arithmetic, so amounts keep full int64 precision.
func (f *Formatter) FormatMinorUnits(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	whole := f.printer.Sprint(number.Decimal(cents / 100))
	return fmt.Sprintf("%s %s%s%s%02d", f.symbol, sign, whole, f.decimalSep, cents%100)
}

// defaultFormatter matches the original household's locale.
var defaultFormatter = NewFormatter(language.MustParse("nl-BE"), "EUR")

// FormatMinorUnits renders cents with the default nl-BE euro convention.
func FormatMinorUnits(cents int64) string {
	return defaultFormatter.FormatMinorUnits(cents)
}
