package suppliers

import "time"

// Supplier represents a supplier master record.
type Supplier struct {
	ID            string    `json:"id" db:"id"`
	CompanyName   string    `json:"company_name" db:"company_name"`
	ContactPerson string    `json:"contact_person" db:"contact_person"`
	Email         string    `json:"email" db:"email"`
	Phone         string    `json:"phone" db:"phone"`
	Address       string    `json:"address" db:"address"`
	TaxID         string    `json:"tax_id" db:"tax_id"`
	PaymentTerms  string    `json:"payment_terms" db:"payment_terms"`
	SupplierType  string    `json:"supplier_type" db:"supplier_type"`
	Rating        float64   `json:"rating" db:"rating"`
	Notes         string    `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
