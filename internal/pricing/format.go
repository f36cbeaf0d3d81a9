package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts as currency strings for a configured locale and
// parses them back. Format followed by Parse recovers the amount to cent
// precision.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "de-DE" or
// "en-US". The currency unit is derived from the locale's region.
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("pricing: parse locale %q: %w", locale, err)
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		return nil, fmt.Errorf("pricing: no currency for locale %q", locale)
	}
	return &Formatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
	}, nil
}

// Format renders the amount with the locale's symbol and separators, rounded
// to two decimal places.
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(amount)))
}

// Parse reads an amount back out of a formatted currency string. It tolerates
// currency symbols, grouping separators and either comma or period as decimal
// separator, so values formatted for any supported locale round-trip.
func (f *Formatter) Parse(s string) (float64, error) {
	var digits []rune
	var lastSep rune
	lastSepPos := -1
	negative := false

	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsDigit(r):
			digits = append(digits, r)
		case r == ',' || r == '.':
			lastSep = r
			lastSepPos = len(digits)
		case r == '-':
			negative = true
		}
		// Currency symbols, spaces and letters are skipped.
	}

	if len(digits) == 0 {
		return 0, fmt.Errorf("pricing: no numeric value in %q", s)
	}

	raw := string(digits)
	// The last separator is the decimal point only if one or two digits follow
	// it; otherwise every separator was a grouping separator. An empty integer
	// part (",50") reads as zero-point-fraction.
	if lastSep != 0 && lastSepPos >= 0 && len(digits)-lastSepPos >= 1 && len(digits)-lastSepPos <= 2 {
		raw = string(digits[:lastSepPos]) + "." + string(digits[lastSepPos:])
		if lastSepPos == 0 {
			raw = "0" + raw
		}
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("pricing: parse %q: %w", s, err)
	}
	if negative {
		value = -value
	}
	return value, nil
}
