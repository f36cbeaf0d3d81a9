package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/sales/customers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

var statsNow = time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

func orderAt(id string, daysAgo int, amount float64, status orders.OrderStatus) orders.Order {
	return orders.Order{
		ID:          id,
		OrderDate:   statsNow.AddDate(0, 0, -daysAgo),
		TotalAmount: amount,
		Status:      status,
	}
}

func TestComputeTotalsAreAllTime(t *testing.T) {
	in := Input{
		Orders: []orders.Order{
			orderAt("ORD-001", 5, 100, orders.OrderStatusCompleted),
			orderAt("ORD-002", 45, 200, orders.OrderStatusCompleted),
			orderAt("ORD-003", 90, 300, orders.OrderStatusCompleted),
		},
	}
	stats := Compute(in, statsNow)

	// all three orders count toward the totals, windows only shape the change
	assert.Equal(t, 600.0, stats.TotalRevenue)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.InDelta(t, -50.0, stats.RevenueChange, 1e-9)
	assert.InDelta(t, 0.0, stats.OrdersChange, 1e-9)
}

func TestComputePreviousZeroIsFixedSentinel(t *testing.T) {
	in := Input{
		Orders: []orders.Order{orderAt("ORD-001", 3, 500, orders.OrderStatusPending)},
	}
	stats := Compute(in, statsNow)
	assert.Equal(t, 100.0, stats.RevenueChange)
	assert.Equal(t, 100.0, stats.OrdersChange)

	// the sentinel holds even when both windows are empty
	empty := Compute(Input{}, statsNow)
	assert.Equal(t, 100.0, empty.RevenueChange)
	assert.Equal(t, 100.0, empty.CustomersChange)
	assert.Equal(t, 100.0, empty.ProductsChange)
}

func TestComputeThirtyDayBoundaryIsCurrent(t *testing.T) {
	boundary := statsNow.AddDate(0, 0, -30)
	in := Input{
		Orders: []orders.Order{
			{ID: "ORD-001", OrderDate: boundary, TotalAmount: 50},
			{ID: "ORD-002", OrderDate: statsNow.AddDate(0, 0, -31), TotalAmount: 80},
		},
	}
	stats := Compute(in, statsNow)

	// exactly 30 days ago lands in the current window, 31 days in the previous
	assert.InDelta(t, (50.0-80.0)/80.0*100, stats.RevenueChange, 1e-9)
}

func TestComputeActiveOrdersIsSnapshotCount(t *testing.T) {
	in := Input{
		Orders: []orders.Order{
			orderAt("ORD-001", 5, 10, orders.OrderStatusPending),
			orderAt("ORD-002", 95, 10, orders.OrderStatusProcessing),
			orderAt("ORD-003", 5, 10, orders.OrderStatusCompleted),
			orderAt("ORD-004", 5, 10, orders.OrderStatusCancelled),
		},
	}
	stats := Compute(in, statsNow)

	// an old Processing order still counts; no time window applies
	assert.Equal(t, 2, stats.ActiveOrders)
}

func TestComputeRecentOrdersTopFiveDesc(t *testing.T) {
	var in Input
	for i := 1; i <= 7; i++ {
		in.Orders = append(in.Orders, orderAt(
			fmt.Sprintf("ORD-%03d", i), 31-i, float64(i), orders.OrderStatusCompleted))
	}
	stats := Compute(in, statsNow)

	require.Len(t, stats.RecentOrders, 5)
	assert.Equal(t, "ORD-007", stats.RecentOrders[0].ID)
	for i := 1; i < len(stats.RecentOrders); i++ {
		assert.False(t, stats.RecentOrders[i].OrderDate.After(stats.RecentOrders[i-1].OrderDate))
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	in := Input{
		Orders: []orders.Order{
			orderAt("ORD-001", 10, 10, orders.OrderStatusCompleted),
			orderAt("ORD-002", 1, 20, orders.OrderStatusCompleted),
			orderAt("ORD-003", 5, 30, orders.OrderStatusCompleted),
		},
	}
	Compute(in, statsNow)

	assert.Equal(t, "ORD-001", in.Orders[0].ID)
	assert.Equal(t, "ORD-002", in.Orders[1].ID)
	assert.Equal(t, "ORD-003", in.Orders[2].ID)
}

func TestComputeCustomerAndProductWindows(t *testing.T) {
	in := Input{
		Products: []products.Product{
			{ArtikelNr: "ART-1", CreatedAt: statsNow.AddDate(0, 0, -10)},
			{ArtikelNr: "ART-2", CreatedAt: statsNow.AddDate(0, 0, -40)},
			{ArtikelNr: "ART-3", CreatedAt: statsNow.AddDate(0, 0, -40)},
		},
		Customers: []customers.Customer{
			{ID: "c1", CreatedAt: statsNow.AddDate(0, 0, -100)},
		},
	}
	stats := Compute(in, statsNow)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.InDelta(t, -50.0, stats.ProductsChange, 1e-9)
	assert.Equal(t, 1, stats.TotalCustomers)
	// the only customer predates both windows, previous is empty
	assert.Equal(t, 100.0, stats.CustomersChange)
}
