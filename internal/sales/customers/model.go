package customers

import "time"

// Customer represents a customer account.
type Customer struct {
	ID            string    `json:"id" db:"id"`
	CompanyName   string    `json:"company_name" db:"company_name"`
	ContactPerson string    `json:"contact_person" db:"contact_person"`
	Email         string    `json:"email" db:"email"`
	Phone         string    `json:"phone" db:"phone"`
	Address       string    `json:"address" db:"address"`
	PaymentTerms  string    `json:"payment_terms" db:"payment_terms"`
	CustomerGroup string    `json:"customer_group" db:"customer_group"`
	CreditLimit   float64   `json:"credit_limit" db:"credit_limit"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
