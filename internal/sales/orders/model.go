package orders

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsFinal reports whether the status permits no further transitions.
// Completed is the terminal fulfillment marker.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// Order is a customer order. TotalAmount is always recomputed from the items,
// never taken from caller input.
type Order struct {
	ID              string        `json:"id" db:"id"`
	CustomerID      string        `json:"customer_id" db:"customer_id"`
	CustomerName    string        `json:"customer_name" db:"customer_name"`
	Status          OrderStatus   `json:"status" db:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	OrderDate       time.Time     `json:"order_date" db:"order_date"`
	DeliveryDate    *time.Time    `json:"delivery_date,omitempty" db:"delivery_date"`
	ShippingAddress string        `json:"shipping_address" db:"shipping_address"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	TotalAmount     float64       `json:"total_amount" db:"total_amount"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
	Items           []OrderItem   `json:"items,omitempty" db:"-"`
}

// OrderItem is one line of an order. Product fields are a snapshot copied at
// order time; later catalog edits do not change them unless the caller
// explicitly refreshes item pricing. Total is derived from quantity and
// VKPrice.
type OrderItem struct {
	ID          int64   `json:"id" db:"id"`
	OrderID     string  `json:"order_id" db:"order_id"`
	ArtikelNr   string  `json:"artikel_nr" db:"artikel_nr"`
	ProductName string  `json:"product_name" db:"product_name"`
	SupplierID  *string `json:"supplier_id,omitempty" db:"supplier_id"`
	Quantity    int     `json:"quantity" db:"quantity"`
	EKPrice     float64 `json:"ek_price" db:"ek_price"`
	VKPrice     float64 `json:"vk_price" db:"vk_price"`
	Total       float64 `json:"total" db:"total"`
	LineOrder   int     `json:"line_order" db:"line_order"`
}
