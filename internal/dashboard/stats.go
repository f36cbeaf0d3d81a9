// Package dashboard computes the headline business metrics shown on the
// start screen: all-time totals with 30-day trend percentages, the active
// order count and a short list of the most recent orders.
package dashboard

import (
	"sort"
	"time"

	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/sales/customers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

const recentOrdersLimit = 5

// Input holds the collections the metrics derive from.
type Input struct {
	Orders    []orders.Order
	Products  []products.Product
	Customers []customers.Customer
}

// Stats is the dashboard payload. Totals are all-time; the Change fields
// compare the last 30 days against the 30 days before that.
type Stats struct {
	TotalRevenue    float64        `json:"total_revenue"`
	RevenueChange   float64        `json:"revenue_change"`
	TotalOrders     int            `json:"total_orders"`
	OrdersChange    float64        `json:"orders_change"`
	TotalProducts   int            `json:"total_products"`
	ProductsChange  float64        `json:"products_change"`
	TotalCustomers  int            `json:"total_customers"`
	CustomersChange float64        `json:"customers_change"`
	ActiveOrders    int            `json:"active_orders"`
	RecentOrders    []orders.Order `json:"recent_orders"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// Compute derives the stats from the input at the given instant. The caller
// supplies now so results are deterministic.
func Compute(in Input, now time.Time) Stats {
	currentStart := now.AddDate(0, 0, -30)
	previousStart := now.AddDate(0, 0, -60)

	var totalRevenue, currentRevenue, previousRevenue float64
	var currentOrders, previousOrders, activeOrders int
	for _, o := range in.Orders {
		totalRevenue += o.TotalAmount
		if o.Status == orders.OrderStatusPending || o.Status == orders.OrderStatusProcessing {
			activeOrders++
		}
		switch windowOf(o.OrderDate, currentStart, previousStart) {
		case windowCurrent:
			currentRevenue += o.TotalAmount
			currentOrders++
		case windowPrevious:
			previousRevenue += o.TotalAmount
			previousOrders++
		}
	}

	var currentProducts, previousProducts int
	for _, p := range in.Products {
		switch windowOf(p.CreatedAt, currentStart, previousStart) {
		case windowCurrent:
			currentProducts++
		case windowPrevious:
			previousProducts++
		}
	}

	var currentCustomers, previousCustomers int
	for _, c := range in.Customers {
		switch windowOf(c.CreatedAt, currentStart, previousStart) {
		case windowCurrent:
			currentCustomers++
		case windowPrevious:
			previousCustomers++
		}
	}

	return Stats{
		TotalRevenue:    totalRevenue,
		RevenueChange:   changePercent(currentRevenue, previousRevenue),
		TotalOrders:     len(in.Orders),
		OrdersChange:    changePercent(float64(currentOrders), float64(previousOrders)),
		TotalProducts:   len(in.Products),
		ProductsChange:  changePercent(float64(currentProducts), float64(previousProducts)),
		TotalCustomers:  len(in.Customers),
		CustomersChange: changePercent(float64(currentCustomers), float64(previousCustomers)),
		ActiveOrders:    activeOrders,
		RecentOrders:    recentOrders(in.Orders),
		GeneratedAt:     now,
	}
}

type window int

const (
	windowNone window = iota
	windowCurrent
	windowPrevious
)

// windowOf classifies a timestamp. The 30-day boundary itself counts as
// current; the previous window's upper bound is exclusive.
func windowOf(t, currentStart, previousStart time.Time) window {
	if !t.Before(currentStart) {
		return windowCurrent
	}
	if !t.Before(previousStart) {
		return windowPrevious
	}
	return windowNone
}

// changePercent keeps the fixed sentinel of 100 when there is no previous
// activity to compare against, even when current is also zero.
func changePercent(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return (current - previous) / previous * 100
}

func recentOrders(all []orders.Order) []orders.Order {
	sorted := append([]orders.Order(nil), all...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderDate.After(sorted[j].OrderDate)
	})
	if len(sorted) > recentOrdersLimit {
		sorted = sorted[:recentOrdersLimit]
	}
	return sorted
}
