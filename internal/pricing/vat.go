package pricing

// VATRates maps a VAT class code (MwSt) to its percentage.
type VATRates map[string]float64

// DefaultVATRates returns the built-in class mapping. Callers may extend or
// replace it through configuration without touching this package.
func DefaultVATRates() VATRates {
	return VATRates{
		"A": 7,
		"B": 19,
	}
}

// RateFor looks up the percentage for a class code. Unknown codes report
// ok=false with a zero rate.
func (r VATRates) RateFor(code string) (float64, bool) {
	rate, ok := r[code]
	return rate, ok
}
