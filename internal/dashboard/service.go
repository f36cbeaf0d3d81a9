package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/sales/customers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

// Service loads the source collections in parallel, computes the stats and
// serves them through the versioned cache.
type Service struct {
	orders    orders.Repository
	products  products.Repository
	customers customers.Repository
	cache     *Cache
	now       func() time.Time
}

func NewService(orderRepo orders.Repository, productRepo products.Repository, customerRepo customers.Repository, cache *Cache) *Service {
	return &Service{
		orders:    orderRepo,
		products:  productRepo,
		customers: customerRepo,
		cache:     cache,
		now:       time.Now,
	}
}

// Stats returns the dashboard metrics, cached per version.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	key, err := s.cache.BuildKey(ctx, "dashboard", "stats")
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx)
	})
	return stats, err
}

// Refresh recomputes the stats, bumps the cache version and primes the new
// key. Used by the warmup job.
func (s *Service) Refresh(ctx context.Context) (Stats, error) {
	stats, err := s.compute(ctx)
	if err != nil {
		return Stats{}, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		return Stats{}, err
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", "stats")
	if err != nil {
		return Stats{}, err
	}
	if err := s.cache.FetchJSON(ctx, key, &stats, func(context.Context) (interface{}, error) {
		return stats, nil
	}); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (s *Service) compute(ctx context.Context) (Stats, error) {
	var in Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.orders.ListAll(gctx)
		in.Orders = list
		return err
	})
	g.Go(func() error {
		list, err := s.products.ListAll(gctx)
		in.Products = list
		return err
	})
	g.Go(func() error {
		list, err := s.customers.ListAll(gctx)
		in.Customers = list
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return Compute(in, s.now()), nil
}
