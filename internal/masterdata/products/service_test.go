package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-stern/stern-erp/internal/platform/httpx"
	"github.com/der-stern/stern-erp/internal/pricing"
)

type mockRepo struct {
	products map[string]Product
}

func newMockRepo() *mockRepo {
	return &mockRepo{products: make(map[string]Product)}
}

func (m *mockRepo) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	all, _ := m.ListAll(ctx)
	return all, len(all), nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]Product, error) {
	var all []Product
	for _, p := range m.products {
		all = append(all, p)
	}
	return all, nil
}

func (m *mockRepo) Get(ctx context.Context, artikelNr string) (Product, error) {
	p, ok := m.products[artikelNr]
	if !ok {
		return Product{}, fmt.Errorf("product %s: %w", artikelNr, httpx.ErrNotFound)
	}
	return p, nil
}

func (m *mockRepo) Create(ctx context.Context, product Product) (Product, error) {
	if _, exists := m.products[product.ArtikelNr]; exists {
		return Product{}, fmt.Errorf("article %s: %w", product.ArtikelNr, httpx.ErrDuplicate)
	}
	m.products[product.ArtikelNr] = product
	return product, nil
}

func (m *mockRepo) Update(ctx context.Context, artikelNr string, product Product) error {
	if _, ok := m.products[artikelNr]; !ok {
		return fmt.Errorf("product %s: %w", artikelNr, httpx.ErrNotFound)
	}
	m.products[artikelNr] = product
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, artikelNr string) error {
	if _, ok := m.products[artikelNr]; !ok {
		return fmt.Errorf("product %s: %w", artikelNr, httpx.ErrNotFound)
	}
	delete(m.products, artikelNr)
	return nil
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(newMockRepo(), nil)

	created, warnings, err := svc.Create(context.Background(), CreateProductRequest{
		ArtikelNr: "ART-100",
		Name:      "Mineralwasser 12x1L",
		VKPrice:   8.99,
		EKPrice:   5.20,
		MwSt:      "A",
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "ART-100", created.ArtikelNr)
}

func TestCreateProductDuplicate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	req := CreateProductRequest{ArtikelNr: "ART-100", Name: "Wasser", VKPrice: 5, EKPrice: 3, MwSt: "A"}
	_, _, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateProductBelowCostWarns(t *testing.T) {
	svc := NewService(newMockRepo(), nil)

	_, warnings, err := svc.Create(context.Background(), CreateProductRequest{
		ArtikelNr: "ART-101",
		Name:      "Verlustartikel",
		VKPrice:   4.00,
		EKPrice:   6.00,
		MwSt:      "B",
	})
	require.NoError(t, err, "below-cost price is advisory, not blocking")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "below cost")
}

func TestCreateProductUnknownVATClass(t *testing.T) {
	svc := NewService(newMockRepo(), nil)

	_, _, err := svc.Create(context.Background(), CreateProductRequest{
		ArtikelNr: "ART-102",
		Name:      "Unbekannt",
		MwSt:      "X",
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestMarginUsesVATClassRate(t *testing.T) {
	repo := newMockRepo()
	repo.products["ART-1"] = Product{ArtikelNr: "ART-1", EKPrice: 10, VKPrice: 15, MwSt: "B"}
	svc := NewService(repo, pricing.DefaultVATRates())

	report, err := svc.Margin(context.Background(), "ART-1")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, report.Net, 1e-9)
	assert.InDelta(t, 50.0, report.Percent, 1e-9)
	assert.Equal(t, 19.0, report.VATRate)
}

func TestUpdateProductKeepsArticleNumber(t *testing.T) {
	repo := newMockRepo()
	repo.products["ART-1"] = Product{ArtikelNr: "ART-1", Name: "Alt", EKPrice: 1, VKPrice: 2, MwSt: "A"}
	svc := NewService(repo, nil)

	updated, _, err := svc.Update(context.Background(), "ART-1", UpdateProductRequest{
		Name: "Neu", EKPrice: 1.5, VKPrice: 2.5, MwSt: "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "ART-1", updated.ArtikelNr)
	assert.Equal(t, "Neu", updated.Name)
}
