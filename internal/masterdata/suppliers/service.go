package suppliers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/der-stern/stern-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Supplier, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id string) (Supplier, error) {
	if id == "" {
		return Supplier{}, fmt.Errorf("supplier id required: %w", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req SupplierRequest) (Supplier, error) {
	supplier := Supplier{
		ID:            uuid.NewString(),
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		PaymentTerms:  req.PaymentTerms,
		SupplierType:  req.SupplierType,
		Rating:        req.Rating,
		Notes:         req.Notes,
	}
	return s.repo.Create(ctx, supplier)
}

func (s *Service) Update(ctx context.Context, id string, req SupplierRequest) (Supplier, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Supplier{}, err
	}

	existing.CompanyName = req.CompanyName
	existing.ContactPerson = req.ContactPerson
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.TaxID = req.TaxID
	existing.PaymentTerms = req.PaymentTerms
	existing.SupplierType = req.SupplierType
	existing.Rating = req.Rating
	existing.Notes = req.Notes

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Supplier{}, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
