package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/sales/customers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

type stubOrderRepo struct {
	orders.Repository
	list []orders.Order
}

func (s *stubOrderRepo) ListAll(context.Context) ([]orders.Order, error) {
	return s.list, nil
}

type stubProductRepo struct {
	products.Repository
	list []products.Product
}

func (s *stubProductRepo) ListAll(context.Context) ([]products.Product, error) {
	return s.list, nil
}

type stubCustomerRepo struct {
	customers.Repository
	list []customers.Customer
}

func (s *stubCustomerRepo) ListAll(context.Context) ([]customers.Customer, error) {
	return s.list, nil
}

func newCachedService(t *testing.T, orderRepo *stubOrderRepo) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewService(orderRepo, &stubProductRepo{}, &stubCustomerRepo{}, NewCache(client, time.Minute))
	svc.now = func() time.Time { return statsNow }
	return svc
}

func TestServiceStatsCachesResult(t *testing.T) {
	repo := &stubOrderRepo{list: []orders.Order{
		orderAt("ORD-001", 5, 150, orders.OrderStatusPending),
	}}
	svc := newCachedService(t, repo)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.0, first.TotalRevenue)
	assert.Equal(t, 1, first.ActiveOrders)

	// source changes are invisible until the cache is invalidated
	repo.list = append(repo.list, orderAt("ORD-002", 2, 50, orders.OrderStatusPending))

	cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.0, cached.TotalRevenue)
}

func TestServiceRefreshBumpsVersion(t *testing.T) {
	repo := &stubOrderRepo{list: []orders.Order{
		orderAt("ORD-001", 5, 150, orders.OrderStatusPending),
	}}
	svc := newCachedService(t, repo)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)

	repo.list = append(repo.list, orderAt("ORD-002", 2, 50, orders.OrderStatusPending))

	refreshed, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200.0, refreshed.TotalRevenue)

	after, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200.0, after.TotalRevenue)
	assert.Equal(t, 2, after.TotalOrders)
}

func TestServiceStatsWithoutCache(t *testing.T) {
	repo := &stubOrderRepo{list: []orders.Order{
		orderAt("ORD-001", 5, 99, orders.OrderStatusCompleted),
	}}
	svc := NewService(repo, &stubProductRepo{}, &stubCustomerRepo{}, nil)
	svc.now = func() time.Time { return statsNow }

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99.0, stats.TotalRevenue)
}
