package products

import (
	"context"
	"fmt"

	"github.com/der-stern/stern-erp/internal/platform/httpx"
	"github.com/der-stern/stern-erp/internal/pricing"
)

type Service struct {
	repo  Repository
	rates pricing.VATRates
}

func NewService(repo Repository, rates pricing.VATRates) *Service {
	if rates == nil {
		rates = pricing.DefaultVATRates()
	}
	return &Service{repo: repo, rates: rates}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, artikelNr string) (Product, error) {
	if artikelNr == "" {
		return Product{}, fmt.Errorf("article number required: %w", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, artikelNr)
}

// Create registers a new article. A selling price below cost is allowed but
// reported back as a warning so the caller can surface it.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, []string, error) {
	if _, ok := s.rates.RateFor(req.MwSt); !ok {
		return Product{}, nil, fmt.Errorf("unknown VAT class %q: %w", req.MwSt, httpx.ErrValidation)
	}

	product := Product{
		ArtikelNr:     req.ArtikelNr,
		Name:          req.Name,
		VKPrice:       req.VKPrice,
		EKPrice:       req.EKPrice,
		MwSt:          req.MwSt,
		PackungArt:    req.PackungArt,
		PackungInhalt: req.PackungInhalt,
		IstBestand:    req.IstBestand,
		EAN:           req.EAN,
		Herkunftsland: req.Herkunftsland,
		Produktgruppe: req.Produktgruppe,
		SupplierID:    req.SupplierID,
		ImageURL:      req.ImageURL,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, nil, err
	}
	return created, priceWarnings(req.EKPrice, req.VKPrice), nil
}

func (s *Service) Update(ctx context.Context, artikelNr string, req UpdateProductRequest) (Product, []string, error) {
	if _, ok := s.rates.RateFor(req.MwSt); !ok {
		return Product{}, nil, fmt.Errorf("unknown VAT class %q: %w", req.MwSt, httpx.ErrValidation)
	}

	existing, err := s.repo.Get(ctx, artikelNr)
	if err != nil {
		return Product{}, nil, err
	}

	existing.Name = req.Name
	existing.VKPrice = req.VKPrice
	existing.EKPrice = req.EKPrice
	existing.MwSt = req.MwSt
	existing.PackungArt = req.PackungArt
	existing.PackungInhalt = req.PackungInhalt
	existing.IstBestand = req.IstBestand
	existing.EAN = req.EAN
	existing.Herkunftsland = req.Herkunftsland
	existing.Produktgruppe = req.Produktgruppe
	existing.SupplierID = req.SupplierID
	existing.ImageURL = req.ImageURL

	if err := s.repo.Update(ctx, artikelNr, existing); err != nil {
		return Product{}, nil, err
	}
	return existing, priceWarnings(req.EKPrice, req.VKPrice), nil
}

func (s *Service) Delete(ctx context.Context, artikelNr string) error {
	return s.repo.Delete(ctx, artikelNr)
}

// Margin reports the profit figures for one article using its VAT class rate.
func (s *Service) Margin(ctx context.Context, artikelNr string) (pricing.MarginReport, error) {
	product, err := s.repo.Get(ctx, artikelNr)
	if err != nil {
		return pricing.MarginReport{}, err
	}
	rate, _ := s.rates.RateFor(product.MwSt)
	return pricing.Margin(product.EKPrice, product.VKPrice, rate), nil
}

func priceWarnings(ek, vk float64) []string {
	if err := pricing.ValidatePrices(ek, vk); err != nil {
		return []string{err.Error()}
	}
	return nil
}
