package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/platform/httpx"
	"github.com/der-stern/stern-erp/internal/pricing"
	"github.com/der-stern/stern-erp/internal/sales/customers"
)

// Service owns the order lifecycle. Product prices are snapshotted onto the
// items at order time; RefreshItemPricing is the only path that re-reads the
// catalog afterwards.
type Service struct {
	repo      Repository
	customers customers.Repository
	products  products.Repository
	now       func() time.Time
}

func NewService(repo Repository, customerRepo customers.Repository, productRepo products.Repository) *Service {
	return &Service{
		repo:      repo,
		customers: customerRepo,
		products:  productRepo,
		now:       time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order id required: %w", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

// Create builds an order from the request. Each line snapshots the product's
// name and, when the request omits them, its current prices and supplier.
// Returns advisory pricing warnings alongside the order.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, []string, error) {
	customer, err := s.customers.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve customer: %w", err)
	}

	orderDate := s.now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	var order *Order
	var warnings []string
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		id, err := tx.GenerateNumber(ctx)
		if err != nil {
			return fmt.Errorf("generate order number: %w", err)
		}

		items, lineWarnings, err := s.buildItems(ctx, id, req.Items)
		if err != nil {
			return err
		}
		warnings = lineWarnings

		o := Order{
			ID:              id,
			CustomerID:      customer.ID,
			CustomerName:    customer.CompanyName,
			Status:          OrderStatusPending,
			PaymentStatus:   PaymentStatusPending,
			OrderDate:       orderDate,
			DeliveryDate:    req.DeliveryDate,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
			TotalAmount:     orderTotal(items),
		}
		if err := tx.Create(ctx, o); err != nil {
			return err
		}
		for i := range items {
			itemID, err := tx.InsertItem(ctx, items[i])
			if err != nil {
				return err
			}
			items[i].ID = itemID
		}
		o.Items = items
		order = &o
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, warnings, nil
}

// Update edits the order header and, when Items is present, replaces all lines
// and recomputes the total. Final orders cannot be edited.
func (s *Service) Update(ctx context.Context, id string, req UpdateOrderRequest) (*Order, []string, error) {
	var order *Order
	var warnings []string
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		existing, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status.IsFinal() {
			return fmt.Errorf("order %s is %s: %w", id, existing.Status, httpx.ErrConflict)
		}

		if req.DeliveryDate != nil {
			existing.DeliveryDate = req.DeliveryDate
		}
		if req.ShippingAddress != nil {
			existing.ShippingAddress = *req.ShippingAddress
		}
		if req.Notes != nil {
			existing.Notes = req.Notes
		}

		if req.Items != nil {
			items, lineWarnings, err := s.buildItems(ctx, id, *req.Items)
			if err != nil {
				return err
			}
			warnings = lineWarnings
			if err := tx.DeleteItems(ctx, id); err != nil {
				return err
			}
			for i := range items {
				itemID, err := tx.InsertItem(ctx, items[i])
				if err != nil {
					return err
				}
				items[i].ID = itemID
			}
			existing.Items = items
			existing.TotalAmount = orderTotal(items)
		}

		if err := tx.UpdateHeader(ctx, *existing); err != nil {
			return err
		}
		order = existing
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, warnings, nil
}

// SetStatus transitions the order status. Orders in a final state reject any
// further transition.
func (s *Service) SetStatus(ctx context.Context, id string, status OrderStatus) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status.IsFinal() && existing.Status != status {
		return nil, fmt.Errorf("order %s is %s: %w", id, existing.Status, httpx.ErrConflict)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	existing.Status = status
	return existing, nil
}

func (s *Service) SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}
	existing.PaymentStatus = status
	return existing, nil
}

// RefreshItemPricing re-reads the catalog and overwrites each item's price
// snapshot with current values. Items whose product no longer exists keep
// their snapshot untouched. The order total is recomputed afterwards.
func (s *Service) RefreshItemPricing(ctx context.Context, id string) (*Order, error) {
	var order *Order
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		existing, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status.IsFinal() {
			return fmt.Errorf("order %s is %s: %w", id, existing.Status, httpx.ErrConflict)
		}

		for i := range existing.Items {
			product, err := s.products.Get(ctx, existing.Items[i].ArtikelNr)
			if err != nil {
				if errors.Is(err, httpx.ErrNotFound) {
					continue
				}
				return err
			}
			existing.Items[i].ProductName = product.Name
			existing.Items[i].EKPrice = product.EKPrice
			existing.Items[i].VKPrice = product.VKPrice
			existing.Items[i].Total = float64(existing.Items[i].Quantity) * product.VKPrice
		}
		existing.TotalAmount = orderTotal(existing.Items)

		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		for i := range existing.Items {
			itemID, err := tx.InsertItem(ctx, existing.Items[i])
			if err != nil {
				return err
			}
			existing.Items[i].ID = itemID
		}
		if err := tx.UpdateHeader(ctx, *existing); err != nil {
			return err
		}
		order = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("order id required: %w", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// MarkOverduePayments flips pending payments on orders older than dueDays.
// Used by the background sweep.
func (s *Service) MarkOverduePayments(ctx context.Context, dueDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -dueDays)
	return s.repo.MarkOverduePayments(ctx, cutoff)
}

// buildItems resolves each requested line against the catalog. Prices given in
// the request win; absent ones are copied from the product. The supplier
// defaults to the product's supplier.
func (s *Service) buildItems(ctx context.Context, orderID string, reqs []OrderItemRequest) ([]OrderItem, []string, error) {
	items := make([]OrderItem, 0, len(reqs))
	var warnings []string
	for i, line := range reqs {
		product, err := s.products.Get(ctx, line.ArtikelNr)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d article %s: %w", i+1, line.ArtikelNr, err)
		}

		ek := product.EKPrice
		if line.EKPrice != nil {
			ek = *line.EKPrice
		}
		vk := product.VKPrice
		if line.VKPrice != nil {
			vk = *line.VKPrice
		}
		if err := pricing.ValidatePrices(ek, vk); err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d (%s): %s", i+1, line.ArtikelNr, err))
		}

		supplierID := product.SupplierID
		if line.SupplierID != nil {
			supplierID = line.SupplierID
		}

		items = append(items, OrderItem{
			OrderID:     orderID,
			ArtikelNr:   product.ArtikelNr,
			ProductName: product.Name,
			SupplierID:  supplierID,
			Quantity:    line.Quantity,
			EKPrice:     ek,
			VKPrice:     vk,
			Total:       float64(line.Quantity) * vk,
			LineOrder:   i,
		})
	}
	return items, warnings, nil
}

func orderTotal(items []OrderItem) float64 {
	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{Quantity: item.Quantity, VKPrice: item.VKPrice}
	}
	return pricing.CalculateOrderTotal(lines)
}
