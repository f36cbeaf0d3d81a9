package fulfillment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-stern/stern-erp/internal/masterdata/suppliers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

var (
	supplierOne = "11111111-1111-4111-8111-111111111111"
	supplierTwo = "22222222-2222-4222-8222-222222222222"
)

func pickDay() time.Time {
	return time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func testSuppliers() []suppliers.Supplier {
	return []suppliers.Supplier{
		{ID: supplierOne, CompanyName: "Brauerei Schmidt"},
		{ID: supplierTwo, CompanyName: "Fruchthof Weber"},
		{ID: "33333333-3333-4333-8333-333333333333", CompanyName: "Ohne Auftrag AG"},
	}
}

func TestDailyPicksSumsOwnItemsOnly(t *testing.T) {
	day := pickDay()
	list := []orders.Order{
		{
			ID:        "ORD-001",
			OrderDate: day.Add(9 * time.Hour),
			Items: []orders.OrderItem{
				{SupplierID: &supplierOne, Quantity: 2, VKPrice: 60},
				{SupplierID: &supplierTwo, Quantity: 1, VKPrice: 50},
			},
		},
		{
			ID:        "ORD-002",
			OrderDate: day.Add(14 * time.Hour),
			Items: []orders.OrderItem{
				{SupplierID: &supplierOne, Quantity: 3, VKPrice: 10},
			},
		},
	}

	picks := DailyPicks(list, testSuppliers(), day)
	require.Len(t, picks, 2)

	assert.Equal(t, supplierOne, picks[0].SupplierID)
	assert.Equal(t, "Brauerei Schmidt", picks[0].CompanyName)
	assert.Equal(t, 2, picks[0].OrderCount)
	assert.Equal(t, 150.0, picks[0].TotalAmount)

	assert.Equal(t, supplierTwo, picks[1].SupplierID)
	assert.Equal(t, 1, picks[1].OrderCount)
	assert.Equal(t, 50.0, picks[1].TotalAmount)
}

func TestDailyPicksExcludesOtherDays(t *testing.T) {
	day := pickDay()
	list := []orders.Order{
		{
			ID:        "ORD-001",
			OrderDate: day.AddDate(0, 0, -1).Add(23 * time.Hour),
			Items:     []orders.OrderItem{{SupplierID: &supplierOne, Quantity: 2, VKPrice: 50}},
		},
		{
			ID:        "ORD-002",
			OrderDate: day.AddDate(0, 0, 1),
			Items:     []orders.OrderItem{{SupplierID: &supplierOne, Quantity: 2, VKPrice: 50}},
		},
	}

	picks := DailyPicks(list, testSuppliers(), day)
	assert.Empty(t, picks)
}

func TestDailyPicksNormalisesQueryTime(t *testing.T) {
	// a mid-day query instant still captures the whole calendar day
	day := pickDay().Add(16*time.Hour + 30*time.Minute)
	list := []orders.Order{
		{
			ID:        "ORD-001",
			OrderDate: pickDay().Add(1 * time.Minute),
			Items:     []orders.OrderItem{{SupplierID: &supplierOne, Quantity: 3, VKPrice: 25}},
		},
		{
			ID:        "ORD-002",
			OrderDate: pickDay().Add(23*time.Hour + 59*time.Minute),
			Items:     []orders.OrderItem{{SupplierID: &supplierOne, Quantity: 1, VKPrice: 25}},
		},
	}

	picks := DailyPicks(list, testSuppliers(), day)
	require.Len(t, picks, 1)
	assert.Equal(t, 100.0, picks[0].TotalAmount)
	assert.Equal(t, 2, picks[0].OrderCount)
}

func TestDailyPicksSkipsItemsWithoutSupplier(t *testing.T) {
	day := pickDay()
	list := []orders.Order{
		{
			ID:        "ORD-001",
			OrderDate: day.Add(8 * time.Hour),
			Items: []orders.OrderItem{
				{SupplierID: nil, Quantity: 9, VKPrice: 111},
				{SupplierID: &supplierTwo, Quantity: 2, VKPrice: 20},
			},
		},
	}

	picks := DailyPicks(list, testSuppliers(), day)
	require.Len(t, picks, 1)
	assert.Equal(t, supplierTwo, picks[0].SupplierID)
	assert.Equal(t, 40.0, picks[0].TotalAmount)
}

func TestDailyPicksIgnoresUnknownSupplierRefs(t *testing.T) {
	day := pickDay()
	ghost := "99999999-9999-4999-8999-999999999999"
	list := []orders.Order{
		{
			ID:        "ORD-001",
			OrderDate: day.Add(8 * time.Hour),
			Items:     []orders.OrderItem{{SupplierID: &ghost, Quantity: 2, VKPrice: 20}},
		},
	}

	// an id missing from the supplier collection is no match, never a row
	picks := DailyPicks(list, testSuppliers(), day)
	assert.Empty(t, picks)
}

func TestDailyPicksRecomputesLineAmounts(t *testing.T) {
	day := pickDay()
	list := []orders.Order{
		{
			ID:        "ORD-001",
			OrderDate: day.Add(8 * time.Hour),
			Items: []orders.OrderItem{
				{SupplierID: &supplierOne, Quantity: 3, VKPrice: 10, Total: 999},
			},
		},
	}

	picks := DailyPicks(list, testSuppliers(), day)
	require.Len(t, picks, 1)
	// the sum derives from quantity and price, not the stored line total
	assert.Equal(t, 30.0, picks[0].TotalAmount)
}

func TestDailyPicksSortedByAmountDesc(t *testing.T) {
	day := pickDay()
	three := "33333333-3333-4333-8333-333333333333"
	list := []orders.Order{
		{
			ID:        "ORD-001",
			OrderDate: day.Add(10 * time.Hour),
			Items: []orders.OrderItem{
				{SupplierID: &supplierOne, Quantity: 1, VKPrice: 10},
				{SupplierID: &supplierTwo, Quantity: 3, VKPrice: 100},
				{SupplierID: &three, Quantity: 2, VKPrice: 75},
			},
		},
	}

	picks := DailyPicks(list, testSuppliers(), day)
	require.Len(t, picks, 3)
	assert.Equal(t, supplierTwo, picks[0].SupplierID)
	assert.Equal(t, three, picks[1].SupplierID)
	assert.Equal(t, supplierOne, picks[2].SupplierID)
}
