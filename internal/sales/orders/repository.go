package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/der-stern/stern-erp/internal/platform/db"
	"github.com/der-stern/stern-erp/internal/platform/httpx"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	ListAll(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, order Order) error
	UpdateHeader(ctx context.Context, order Order) error
	InsertItem(ctx context.Context, item OrderItem) (int64, error)
	DeleteItems(ctx context.Context, orderID string) error
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
	MarkOverduePayments(ctx context.Context, orderedBefore time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
	GenerateNumber(ctx context.Context) (string, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const orderColumns = `o.id, o.customer_id, c.company_name, o.status, o.payment_status,
	o.order_date, o.delivery_date, o.shipping_address, o.notes, o.total_amount,
	o.created_at, o.updated_at`

const itemColumns = `id, order_id, artikel_nr, product_name, supplier_id, quantity,
	ek_price, vk_price, total, line_order`

func (r *repository) Get(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 0

	if req.Status != nil {
		argPos++
		where += fmt.Sprintf(" AND o.status = $%d", argPos)
		args = append(args, *req.Status)
	}
	if req.CustomerID != nil {
		argPos++
		where += fmt.Sprintf(" AND o.customer_id = $%d", argPos)
		args = append(args, *req.CustomerID)
	}
	if req.DateFrom != nil {
		argPos++
		where += fmt.Sprintf(" AND o.order_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
	}
	if req.DateTo != nil {
		argPos++
		where += fmt.Sprintf(" AND o.order_date <= $%d", argPos)
		args = append(args, *req.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN customers c ON o.customer_id = c.id` + where + `
		ORDER BY o.order_date DESC, o.id DESC`
	if req.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos+1, argPos+2)
		args = append(args, req.Limit, req.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll returns every order with its items attached, for the aggregators.
func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		ORDER BY o.order_date DESC, o.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM order_items ORDER BY order_id, line_order`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	byOrder := make(map[string][]OrderItem)
	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		list[i].Items = byOrder[list[i].ID]
	}
	return list, nil
}

func (r *repository) Create(ctx context.Context, o Order) error {
	now := time.Now()
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, customer_id, status, payment_status, order_date, delivery_date,
			shipping_address, notes, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.CustomerID, o.Status, o.PaymentStatus, o.OrderDate, o.DeliveryDate,
		o.ShippingAddress, o.Notes, o.TotalAmount, now, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("order %s: %w", o.ID, httpx.ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *repository) UpdateHeader(ctx context.Context, o Order) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET delivery_date = $1, shipping_address = $2, notes = $3,
			total_amount = $4, updated_at = $5
		WHERE id = $6`,
		o.DeliveryDate, o.ShippingAddress, o.Notes, o.TotalAmount, time.Now(), o.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", o.ID, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) InsertItem(ctx context.Context, item OrderItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_items (order_id, artikel_nr, product_name, supplier_id, quantity,
			ek_price, vk_price, total, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		item.OrderID, item.ArtikelNr, item.ProductName, item.SupplierID, item.Quantity,
		item.EKPrice, item.VKPrice, item.Total, item.LineOrder).Scan(&id)
	return id, err
}

func (r *repository) DeleteItems(ctx context.Context, orderID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
	}
	return nil
}

// MarkOverduePayments flips pending payments on orders placed before the cutoff.
func (r *repository) MarkOverduePayments(ctx context.Context, orderedBefore time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE payment_status = $2 AND order_date < $3`,
		PaymentStatusOverdue, PaymentStatusPending, orderedBefore)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.DeleteItems(ctx, id); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, httpx.ErrNotFound)
	}
	return nil
}

// GenerateNumber produces the next sequential order token, e.g. ORD-001.
func (r *repository) GenerateNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%03d", count+1), nil
}

func (r *repository) itemsFor(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY line_order`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var list []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.Status, &o.PaymentStatus,
		&o.OrderDate, &o.DeliveryDate, &o.ShippingAddress, &o.Notes, &o.TotalAmount,
		&o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanItem(row pgx.Row) (OrderItem, error) {
	var item OrderItem
	err := row.Scan(&item.ID, &item.OrderID, &item.ArtikelNr, &item.ProductName, &item.SupplierID,
		&item.Quantity, &item.EKPrice, &item.VKPrice, &item.Total, &item.LineOrder)
	return item, err
}
