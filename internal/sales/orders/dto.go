package orders

import "time"

// OrderItemRequest describes one order line. EK/VK prices are optional; when
// absent the current catalog prices are copied in.
type OrderItemRequest struct {
	ArtikelNr  string   `json:"artikel_nr" validate:"required,max=50"`
	SupplierID *string  `json:"supplier_id,omitempty" validate:"omitempty,uuid4"`
	Quantity   int      `json:"quantity" validate:"required,gt=0"`
	EKPrice    *float64 `json:"ek_price,omitempty" validate:"omitempty,gte=0"`
	VKPrice    *float64 `json:"vk_price,omitempty" validate:"omitempty,gte=0"`
}

type CreateOrderRequest struct {
	CustomerID      string             `json:"customer_id" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	OrderDate       *time.Time         `json:"order_date,omitempty"`
	DeliveryDate    *time.Time         `json:"delivery_date,omitempty"`
	ShippingAddress string             `json:"shipping_address" validate:"required,max=500"`
	Notes           *string            `json:"notes,omitempty"`
}

// UpdateOrderRequest replaces the order lines when Items is present; nil Items
// leaves the lines and the total untouched.
type UpdateOrderRequest struct {
	Items           *[]OrderItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	ShippingAddress *string             `json:"shipping_address,omitempty" validate:"omitempty,max=500"`
	Notes           *string             `json:"notes,omitempty"`
}

type StatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=Pending Processing Completed Cancelled"`
}

type PaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,oneof=Pending Paid Overdue"`
}

type ListOrdersRequest struct {
	Status     *OrderStatus
	CustomerID *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}
