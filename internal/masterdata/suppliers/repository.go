package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/der-stern/stern-erp/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Supplier, int, error)
	ListAll(ctx context.Context) ([]Supplier, error)
	Get(ctx context.Context, id string) (Supplier, error)
	Create(ctx context.Context, supplier Supplier) (Supplier, error)
	Update(ctx context.Context, id string, supplier Supplier) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const supplierColumns = `id, company_name, contact_person, email, phone, address, tax_id,
	payment_terms, supplier_type, rating, notes, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Supplier, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (company_name ILIKE $` + strconv.Itoa(argCount) + ` OR contact_person ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Type != "" {
		argCount++
		where += ` AND supplier_type = $` + strconv.Itoa(argCount)
		args = append(args, filters.Type)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + supplierColumns + ` FROM suppliers` + where + ` ORDER BY company_name`
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

	items, err := scanSuppliers(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY company_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSuppliers(rows)
}

func (r *repository) Get(ctx context.Context, id string) (Supplier, error) {
	row := r.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	s, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supplier{}, fmt.Errorf("supplier %s: %w", id, httpx.ErrNotFound)
		}
		return Supplier{}, err
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	now := time.Now()
	_, err := r.db.Exec(ctx, `
		INSERT INTO suppliers (id, company_name, contact_person, email, phone, address, tax_id,
			payment_terms, supplier_type, rating, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		supplier.ID, supplier.CompanyName, supplier.ContactPerson, supplier.Email, supplier.Phone,
		supplier.Address, supplier.TaxID, supplier.PaymentTerms, supplier.SupplierType,
		supplier.Rating, supplier.Notes, now, now)
	if err != nil {
		return Supplier{}, err
	}
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	return supplier, nil
}

func (r *repository) Update(ctx context.Context, id string, supplier Supplier) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE suppliers SET company_name = $1, contact_person = $2, email = $3, phone = $4,
			address = $5, tax_id = $6, payment_terms = $7, supplier_type = $8, rating = $9,
			notes = $10, updated_at = $11
		WHERE id = $12`,
		supplier.CompanyName, supplier.ContactPerson, supplier.Email, supplier.Phone,
		supplier.Address, supplier.TaxID, supplier.PaymentTerms, supplier.SupplierType,
		supplier.Rating, supplier.Notes, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %s: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %s: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func scanSuppliers(rows pgx.Rows) ([]Supplier, error) {
	var items []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func scanSupplier(row pgx.Row) (Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.CompanyName, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
		&s.TaxID, &s.PaymentTerms, &s.SupplierType, &s.Rating, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
