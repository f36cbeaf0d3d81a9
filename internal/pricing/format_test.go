package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterRoundTrip(t *testing.T) {
	for _, locale := range []string{"de-DE", "en-US"} {
		f, err := NewFormatter(locale)
		require.NoError(t, err, locale)

		for _, amount := range []float64{0, 9.99, 1234.5} {
			formatted := f.Format(amount)
			parsed, err := f.Parse(formatted)
			require.NoError(t, err, "%s: %q", locale, formatted)
			assert.InDelta(t, amount, parsed, 0.005, "%s: %q", locale, formatted)
		}
	}
}

func TestFormatterParseVariants(t *testing.T) {
	f, err := NewFormatter("de-DE")
	require.NoError(t, err)

	cases := map[string]float64{
		"€ 12,34":    12.34,
		"1.234,50 €": 1234.5,
		"$1,234.50":  1234.5,
		"9.99":       9.99,
		"1234":       1234,
		"-5,25 €":    -5.25,
		",50":        0.5,
		"€ ,05":      0.05,
	}
	for input, want := range cases {
		got, err := f.Parse(input)
		require.NoError(t, err, input)
		assert.InDelta(t, want, got, 0.005, input)
	}
}

func TestFormatterParseRejectsEmpty(t *testing.T) {
	f, err := NewFormatter("de-DE")
	require.NoError(t, err)

	_, err = f.Parse("")
	assert.Error(t, err)
	_, err = f.Parse("EUR")
	assert.Error(t, err)
}

func TestNewFormatterRejectsBadLocale(t *testing.T) {
	_, err := NewFormatter("not a locale")
	assert.Error(t, err)
}
