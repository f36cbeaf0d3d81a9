// Package pricing implements the pure price and margin computations used by
// order entry and the dashboards. Functions never mutate their inputs and are
// total over their numeric domain; division-by-zero cases resolve to defined
// sentinels instead of NaN or Inf.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// Line carries the two fields needed to price an order line.
type Line struct {
	Quantity int
	VKPrice  float64
}

// CalculateOrderTotal sums quantity * vkPrice over the given lines.
// Returns 0 for an empty sequence.
func CalculateOrderTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += float64(l.Quantity) * l.VKPrice
	}
	return total
}

var (
	ErrNegativePrice  = errors.New("prices must not be negative")
	ErrNonFinitePrice = errors.New("prices must be finite numbers")
)

// ValidatePrices checks a purchase/selling price pair. A nil return means the
// pair is acceptable. The check is advisory: callers decide whether a failure
// blocks submission.
func ValidatePrices(ekPrice, vkPrice float64) error {
	if math.IsNaN(ekPrice) || math.IsInf(ekPrice, 0) || math.IsNaN(vkPrice) || math.IsInf(vkPrice, 0) {
		return ErrNonFinitePrice
	}
	if ekPrice < 0 || vkPrice < 0 {
		return ErrNegativePrice
	}
	if vkPrice < ekPrice {
		return fmt.Errorf("selling price %.2f is below cost price %.2f", vkPrice, ekPrice)
	}
	return nil
}

// MarginReport holds the profit figures for one ek/vk price pair.
type MarginReport struct {
	Net       float64 `json:"net"`
	Percent   float64 `json:"percent"`
	VATRate   float64 `json:"vat_rate"`
	VATAmount float64 `json:"vat_amount"`
	NetSell   float64 `json:"net_sell"`
}

// Margin computes net margin, margin percentage and VAT-adjusted figures for
// the given cost and selling price. The VAT rate is a percentage (7 means 7%).
// When ekPrice is zero the margin percentage is reported as 0 rather than
// failing, so a zero-cost article never breaks a display.
func Margin(ekPrice, vkPrice, vatRate float64) MarginReport {
	report := MarginReport{
		Net:     vkPrice - ekPrice,
		VATRate: vatRate,
	}
	if ekPrice > 0 {
		report.Percent = (vkPrice - ekPrice) / ekPrice * 100
	}
	if vatRate > 0 {
		report.NetSell = vkPrice / (1 + vatRate/100)
		report.VATAmount = vkPrice - report.NetSell
	} else {
		report.NetSell = vkPrice
	}
	return report
}
