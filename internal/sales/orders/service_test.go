package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/platform/httpx"
	"github.com/der-stern/stern-erp/internal/sales/customers"
)

type mockOrderRepo struct {
	orders map[string]*Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*Order)}
}

func (m *mockOrderRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockOrderRepo) Get(_ context.Context, id string) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
	}
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *mockOrderRepo) List(_ context.Context, _ ListOrdersRequest) ([]Order, int, error) {
	var list []Order
	for _, o := range m.orders {
		list = append(list, *o)
	}
	return list, len(list), nil
}

func (m *mockOrderRepo) ListAll(ctx context.Context) ([]Order, error) {
	list, _, err := m.List(ctx, ListOrdersRequest{})
	return list, err
}

func (m *mockOrderRepo) Create(_ context.Context, o Order) error {
	if _, exists := m.orders[o.ID]; exists {
		return fmt.Errorf("order %s: %w", o.ID, httpx.ErrDuplicate)
	}
	cp := o
	cp.Items = nil
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) UpdateHeader(_ context.Context, o Order) error {
	existing, ok := m.orders[o.ID]
	if !ok {
		return fmt.Errorf("order %s: %w", o.ID, httpx.ErrNotFound)
	}
	existing.DeliveryDate = o.DeliveryDate
	existing.ShippingAddress = o.ShippingAddress
	existing.Notes = o.Notes
	existing.TotalAmount = o.TotalAmount
	return nil
}

func (m *mockOrderRepo) InsertItem(_ context.Context, item OrderItem) (int64, error) {
	o, ok := m.orders[item.OrderID]
	if !ok {
		return 0, fmt.Errorf("order %s: %w", item.OrderID, httpx.ErrNotFound)
	}
	item.ID = int64(len(o.Items) + 1)
	o.Items = append(o.Items, item)
	return item.ID, nil
}

func (m *mockOrderRepo) DeleteItems(_ context.Context, orderID string) error {
	if o, ok := m.orders[orderID]; ok {
		o.Items = nil
	}
	return nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status OrderStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
	}
	o.Status = status
	return nil
}

func (m *mockOrderRepo) UpdatePaymentStatus(_ context.Context, id string, status PaymentStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
	}
	o.PaymentStatus = status
	return nil
}

func (m *mockOrderRepo) MarkOverduePayments(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for _, o := range m.orders {
		if o.PaymentStatus == PaymentStatusPending && o.OrderDate.Before(before) {
			o.PaymentStatus = PaymentStatusOverdue
			n++
		}
	}
	return n, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) GenerateNumber(_ context.Context) (string, error) {
	return fmt.Sprintf("ORD-%03d", len(m.orders)+1), nil
}

type mockCustomerRepo struct {
	customers map[string]customers.Customer
}

func (m *mockCustomerRepo) List(_ context.Context, _ customers.ListFilters) ([]customers.Customer, int, error) {
	return nil, 0, nil
}

func (m *mockCustomerRepo) ListAll(_ context.Context) ([]customers.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) Get(_ context.Context, id string) (customers.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return customers.Customer{}, fmt.Errorf("customer %s: %w", id, httpx.ErrNotFound)
	}
	return c, nil
}

func (m *mockCustomerRepo) Create(_ context.Context, c customers.Customer) (customers.Customer, error) {
	m.customers[c.ID] = c
	return c, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, id string, c customers.Customer) error {
	m.customers[id] = c
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id string) error {
	delete(m.customers, id)
	return nil
}

type mockProductRepo struct {
	products map[string]products.Product
}

func (m *mockProductRepo) List(_ context.Context, _ products.ListFilters) ([]products.Product, int, error) {
	return nil, 0, nil
}

func (m *mockProductRepo) ListAll(_ context.Context) ([]products.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Get(_ context.Context, artikelNr string) (products.Product, error) {
	p, ok := m.products[artikelNr]
	if !ok {
		return products.Product{}, fmt.Errorf("article %s: %w", artikelNr, httpx.ErrNotFound)
	}
	return p, nil
}

func (m *mockProductRepo) Create(_ context.Context, p products.Product) (products.Product, error) {
	m.products[p.ArtikelNr] = p
	return p, nil
}

func (m *mockProductRepo) Update(_ context.Context, artikelNr string, p products.Product) error {
	m.products[artikelNr] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, artikelNr string) error {
	delete(m.products, artikelNr)
	return nil
}

func supplierA() *string {
	s := "0c7b8f86-2f1e-4cda-9d05-0b5ffb2af3e1"
	return &s
}

func newTestService(t *testing.T) (*Service, *mockOrderRepo, *mockProductRepo) {
	t.Helper()
	repo := newMockOrderRepo()
	custRepo := &mockCustomerRepo{customers: map[string]customers.Customer{
		"cust-1": {ID: "cust-1", CompanyName: "Getränke Müller GmbH"},
	}}
	prodRepo := &mockProductRepo{products: map[string]products.Product{
		"ART-100": {ArtikelNr: "ART-100", Name: "Mineralwasser", EKPrice: 6.00, VKPrice: 10.00, SupplierID: supplierA()},
		"ART-200": {ArtikelNr: "ART-200", Name: "Apfelsaft", EKPrice: 3.00, VKPrice: 5.00},
	}}
	svc := NewService(repo, custRepo, prodRepo)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo, prodRepo
}

func TestCreateOrderSnapshotsCatalogPrices(t *testing.T) {
	svc, _, _ := newTestService(t)

	order, warnings, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ArtikelNr: "ART-100", Quantity: 2},
			{ArtikelNr: "ART-200", Quantity: 1},
		},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "ORD-001", order.ID)
	assert.Equal(t, "Getränke Müller GmbH", order.CustomerName)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Mineralwasser", order.Items[0].ProductName)
	assert.Equal(t, 10.00, order.Items[0].VKPrice)
	assert.Equal(t, 6.00, order.Items[0].EKPrice)
	assert.Equal(t, supplierA(), order.Items[0].SupplierID)
	assert.Equal(t, 20.00, order.Items[0].Total)
	assert.Equal(t, 25.00, order.TotalAmount)
}

func TestCreateOrderRequestPricesWin(t *testing.T) {
	svc, _, _ := newTestService(t)

	ek, vk := 7.0, 12.0
	order, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ArtikelNr: "ART-100", Quantity: 3, EKPrice: &ek, VKPrice: &vk},
		},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)

	assert.Equal(t, 12.0, order.Items[0].VKPrice)
	assert.Equal(t, 7.0, order.Items[0].EKPrice)
	assert.Equal(t, 36.0, order.TotalAmount)
}

func TestCreateOrderBelowCostWarnsButSucceeds(t *testing.T) {
	svc, _, _ := newTestService(t)

	vk := 4.0
	order, warnings, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ArtikelNr: "ART-100", Quantity: 1, VKPrice: &vk},
		},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "below cost")
	assert.Equal(t, 4.0, order.TotalAmount)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID:      "nope",
		Items:           []OrderItemRequest{{ArtikelNr: "ART-100", Quantity: 1}},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCreateOrderUnknownArticle(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID:      "cust-1",
		Items:           []OrderItemRequest{{ArtikelNr: "ART-999", Quantity: 1}},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestSequentialOrderNumbers(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i, want := range []string{"ORD-001", "ORD-002", "ORD-003"} {
		order, _, err := svc.Create(context.Background(), CreateOrderRequest{
			CustomerID:      "cust-1",
			Items:           []OrderItemRequest{{ArtikelNr: "ART-200", Quantity: i + 1}},
			ShippingAddress: "Hauptstraße 1, Berlin",
		})
		require.NoError(t, err)
		assert.Equal(t, want, order.ID)
	}
}

func TestUpdateReplacesItemsAndRecomputesTotal(t *testing.T) {
	svc, _, _ := newTestService(t)

	order, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID:      "cust-1",
		Items:           []OrderItemRequest{{ArtikelNr: "ART-100", Quantity: 2}},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)
	require.Equal(t, 20.00, order.TotalAmount)

	newItems := []OrderItemRequest{{ArtikelNr: "ART-200", Quantity: 4}}
	updated, _, err := svc.Update(context.Background(), order.ID, UpdateOrderRequest{Items: &newItems})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, "ART-200", updated.Items[0].ArtikelNr)
	assert.Equal(t, 20.00, updated.TotalAmount)
}

func TestUpdateWithoutItemsKeepsTotal(t *testing.T) {
	svc, _, _ := newTestService(t)

	order, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID:      "cust-1",
		Items:           []OrderItemRequest{{ArtikelNr: "ART-100", Quantity: 2}},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)

	addr := "Nebenstraße 2, Hamburg"
	updated, _, err := svc.Update(context.Background(), order.ID, UpdateOrderRequest{ShippingAddress: &addr})
	require.NoError(t, err)

	assert.Equal(t, addr, updated.ShippingAddress)
	assert.Equal(t, 20.00, updated.TotalAmount)
	assert.Len(t, updated.Items, 1)
}

func TestFinalOrderRejectsEdits(t *testing.T) {
	svc, repo, _ := newTestService(t)

	order, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID:      "cust-1",
		Items:           []OrderItemRequest{{ArtikelNr: "ART-100", Quantity: 1}},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)
	repo.orders[order.ID].Status = OrderStatusCompleted

	addr := "Neue Adresse"
	_, _, err = svc.Update(context.Background(), order.ID, UpdateOrderRequest{ShippingAddress: &addr})
	assert.ErrorIs(t, err, httpx.ErrConflict)

	_, err = svc.SetStatus(context.Background(), order.ID, OrderStatusProcessing)
	assert.ErrorIs(t, err, httpx.ErrConflict)

	_, err = svc.RefreshItemPricing(context.Background(), order.ID)
	assert.ErrorIs(t, err, httpx.ErrConflict)
}

func TestRefreshItemPricingReReadsCatalog(t *testing.T) {
	svc, _, prodRepo := newTestService(t)

	order, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []OrderItemRequest{
			{ArtikelNr: "ART-100", Quantity: 2},
			{ArtikelNr: "ART-200", Quantity: 1},
		},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)
	require.Equal(t, 25.00, order.TotalAmount)

	p := prodRepo.products["ART-100"]
	p.VKPrice = 11.00
	p.EKPrice = 6.50
	p.Name = "Mineralwasser Classic"
	prodRepo.products["ART-100"] = p

	// catalog edits alone do not touch the snapshot
	unchanged, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.00, unchanged.Items[0].VKPrice)

	refreshed, err := svc.RefreshItemPricing(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, 11.00, refreshed.Items[0].VKPrice)
	assert.Equal(t, 6.50, refreshed.Items[0].EKPrice)
	assert.Equal(t, "Mineralwasser Classic", refreshed.Items[0].ProductName)
	assert.Equal(t, 22.00, refreshed.Items[0].Total)
	assert.Equal(t, 27.00, refreshed.TotalAmount)
}

func TestRefreshItemPricingKeepsItemsWithoutProduct(t *testing.T) {
	svc, _, prodRepo := newTestService(t)

	order, _, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID:      "cust-1",
		Items:           []OrderItemRequest{{ArtikelNr: "ART-100", Quantity: 2}},
		ShippingAddress: "Hauptstraße 1, Berlin",
	})
	require.NoError(t, err)

	delete(prodRepo.products, "ART-100")

	refreshed, err := svc.RefreshItemPricing(context.Background(), order.ID)
	require.NoError(t, err)

	require.Len(t, refreshed.Items, 1)
	assert.Equal(t, 10.00, refreshed.Items[0].VKPrice)
	assert.Equal(t, 20.00, refreshed.TotalAmount)
}

func TestMarkOverduePayments(t *testing.T) {
	svc, repo, _ := newTestService(t)

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.orders["ORD-001"] = &Order{ID: "ORD-001", OrderDate: old, PaymentStatus: PaymentStatusPending}
	repo.orders["ORD-002"] = &Order{ID: "ORD-002", OrderDate: old, PaymentStatus: PaymentStatusPaid}
	recent := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	repo.orders["ORD-003"] = &Order{ID: "ORD-003", OrderDate: recent, PaymentStatus: PaymentStatusPending}

	// now is 2025-03-10; 30 day window keeps ORD-003 pending
	n, err := svc.MarkOverduePayments(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, PaymentStatusOverdue, repo.orders["ORD-001"].PaymentStatus)
	assert.Equal(t, PaymentStatusPaid, repo.orders["ORD-002"].PaymentStatus)
	assert.Equal(t, PaymentStatusPending, repo.orders["ORD-003"].PaymentStatus)
}
