package customers

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

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Customer, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id string) (Customer, error) {
	if id == "" {
		return Customer{}, fmt.Errorf("customer id required: %w", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CustomerRequest) (Customer, error) {
	customer := Customer{
		ID:            uuid.NewString(),
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentTerms:  req.PaymentTerms,
		CustomerGroup: req.CustomerGroup,
		CreditLimit:   req.CreditLimit,
	}
	return s.repo.Create(ctx, customer)
}

func (s *Service) Update(ctx context.Context, id string, req CustomerRequest) (Customer, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}

	existing.CompanyName = req.CompanyName
	existing.ContactPerson = req.ContactPerson
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.PaymentTerms = req.PaymentTerms
	existing.CustomerGroup = req.CustomerGroup
	existing.CreditLimit = req.CreditLimit

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Customer{}, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
