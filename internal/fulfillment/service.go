package fulfillment

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/der-stern/stern-erp/internal/masterdata/suppliers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

type Service struct {
	orders    orders.Repository
	suppliers suppliers.Repository
	now       func() time.Time
}

func NewService(orderRepo orders.Repository, supplierRepo suppliers.Repository) *Service {
	return &Service{
		orders:    orderRepo,
		suppliers: supplierRepo,
		now:       time.Now,
	}
}

// Picks returns the supplier picks for the given day; the zero time means
// today.
func (s *Service) Picks(ctx context.Context, day time.Time) ([]SupplierPick, error) {
	if day.IsZero() {
		day = s.now()
	}

	var allOrders []orders.Order
	var allSuppliers []suppliers.Supplier

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.orders.ListAll(gctx)
		allOrders = list
		return err
	})
	g.Go(func() error {
		list, err := s.suppliers.ListAll(gctx)
		allSuppliers = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return DailyPicks(allOrders, allSuppliers, day), nil
}
