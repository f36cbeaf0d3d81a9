package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/der-stern/stern-erp/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Product, int, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, artikelNr string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, artikelNr string, product Product) error
	Delete(ctx context.Context, artikelNr string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `artikel_nr, name, vk_price, ek_price, mwst, packung_art, packung_inhalt,
	ist_bestand, ean, herkunftsland, produktgruppe, supplier_id, image_url, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR artikel_nr ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Produktgruppe != "" {
		argCount++
		where += ` AND produktgruppe = $` + strconv.Itoa(argCount)
		args = append(args, filters.Produktgruppe)
	}
	if filters.SupplierID != nil {
		argCount++
		where += ` AND supplier_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.SupplierID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY artikel_nr`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY artikel_nr`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *repository) Get(ctx context.Context, artikelNr string) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE artikel_nr = $1`, artikelNr)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, fmt.Errorf("product %s: %w", artikelNr, httpx.ErrNotFound)
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (artikel_nr, name, vk_price, ek_price, mwst, packung_art, packung_inhalt,
			ist_bestand, ean, herkunftsland, produktgruppe, supplier_id, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		product.ArtikelNr, product.Name, product.VKPrice, product.EKPrice, product.MwSt,
		product.PackungArt, product.PackungInhalt, product.IstBestand, product.EAN,
		product.Herkunftsland, product.Produktgruppe, product.SupplierID, product.ImageURL, now, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Product{}, fmt.Errorf("article %s: %w", product.ArtikelNr, httpx.ErrDuplicate)
		}
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, artikelNr string, product Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET name = $1, vk_price = $2, ek_price = $3, mwst = $4, packung_art = $5,
			packung_inhalt = $6, ist_bestand = $7, ean = $8, herkunftsland = $9, produktgruppe = $10,
			supplier_id = $11, image_url = $12, updated_at = $13
		WHERE artikel_nr = $14`,
		product.Name, product.VKPrice, product.EKPrice, product.MwSt, product.PackungArt,
		product.PackungInhalt, product.IstBestand, product.EAN, product.Herkunftsland,
		product.Produktgruppe, product.SupplierID, product.ImageURL, time.Now(), artikelNr)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", artikelNr, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, artikelNr string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE artikel_nr = $1`, artikelNr)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", artikelNr, httpx.ErrNotFound)
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var items []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ArtikelNr, &p.Name, &p.VKPrice, &p.EKPrice, &p.MwSt, &p.PackungArt,
		&p.PackungInhalt, &p.IstBestand, &p.EAN, &p.Herkunftsland, &p.Produktgruppe,
		&p.SupplierID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
