// Package fulfillment derives the "today's picks" supplier view: which
// suppliers have goods to move for orders placed on a given calendar day,
// and for how much.
package fulfillment

import (
	"sort"
	"time"

	"github.com/der-stern/stern-erp/internal/masterdata/suppliers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

// SupplierPick summarises one supplier's share of a day's orders. TotalAmount
// sums only that supplier's own item lines, not whole orders; each line
// contributes quantity times selling price, recomputed from the snapshot
// fields rather than read from the stored line total.
type SupplierPick struct {
	SupplierID  string  `json:"supplier_id"`
	CompanyName string  `json:"company_name"`
	OrderCount  int     `json:"order_count"`
	TotalAmount float64 `json:"total_amount"`
}

// DailyPicks aggregates the orders of one calendar day per supplier.
// Suppliers without any order involvement that day are left out. Results are
// sorted by total amount descending.
func DailyPicks(allOrders []orders.Order, allSuppliers []suppliers.Supplier, day time.Time) []SupplierPick {
	dayStart := midnight(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	names := make(map[string]string, len(allSuppliers))
	for _, s := range allSuppliers {
		names[s.ID] = s.CompanyName
	}

	type bucket struct {
		orders map[string]struct{}
		total  float64
	}
	buckets := make(map[string]*bucket)

	for _, o := range allOrders {
		if o.OrderDate.Before(dayStart) || !o.OrderDate.Before(dayEnd) {
			continue
		}
		for _, item := range o.Items {
			if item.SupplierID == nil {
				continue
			}
			id := *item.SupplierID
			// Dangling supplier references count as no match.
			if _, known := names[id]; !known {
				continue
			}
			b, ok := buckets[id]
			if !ok {
				b = &bucket{orders: make(map[string]struct{})}
				buckets[id] = b
			}
			b.orders[o.ID] = struct{}{}
			b.total += float64(item.Quantity) * item.VKPrice
		}
	}

	picks := make([]SupplierPick, 0, len(buckets))
	for id, b := range buckets {
		picks = append(picks, SupplierPick{
			SupplierID:  id,
			CompanyName: names[id],
			OrderCount:  len(b.orders),
			TotalAmount: b.total,
		})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].TotalAmount != picks[j].TotalAmount {
			return picks[i].TotalAmount > picks[j].TotalAmount
		}
		return picks[i].SupplierID < picks[j].SupplierID
	})
	return picks
}

// midnight normalises a timestamp to the start of its calendar day, keeping
// the location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
