package customers

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
	List(ctx context.Context, filters ListFilters) ([]Customer, int, error)
	ListAll(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id string) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, id string, customer Customer) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const customerColumns = `id, company_name, contact_person, email, phone, address,
	payment_terms, customer_group, credit_limit, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Customer, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (company_name ILIKE $` + strconv.Itoa(argCount) + ` OR contact_person ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Group != "" {
		argCount++
		where += ` AND customer_group = $` + strconv.Itoa(argCount)
		args = append(args, filters.Group)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where + ` ORDER BY company_name`
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

	items, err := scanCustomers(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY company_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func (r *repository) Get(ctx context.Context, id string) (Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, fmt.Errorf("customer %s: %w", id, httpx.ErrNotFound)
		}
		return Customer{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, customer Customer) (Customer, error) {
	now := time.Now()
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, company_name, contact_person, email, phone, address,
			payment_terms, customer_group, credit_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		customer.ID, customer.CompanyName, customer.ContactPerson, customer.Email, customer.Phone,
		customer.Address, customer.PaymentTerms, customer.CustomerGroup, customer.CreditLimit, now, now)
	if err != nil {
		return Customer{}, err
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return customer, nil
}

func (r *repository) Update(ctx context.Context, id string, customer Customer) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE customers SET company_name = $1, contact_person = $2, email = $3, phone = $4,
			address = $5, payment_terms = $6, customer_group = $7, credit_limit = $8, updated_at = $9
		WHERE id = $10`,
		customer.CompanyName, customer.ContactPerson, customer.Email, customer.Phone,
		customer.Address, customer.PaymentTerms, customer.CustomerGroup, customer.CreditLimit,
		time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func scanCustomers(rows pgx.Rows) ([]Customer, error) {
	var items []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.CompanyName, &c.ContactPerson, &c.Email, &c.Phone, &c.Address,
		&c.PaymentTerms, &c.CustomerGroup, &c.CreditLimit, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
