package customers

// CustomerRequest carries the editable customer fields for create and update.
type CustomerRequest struct {
	CompanyName   string  `json:"company_name" validate:"required,max=200"`
	ContactPerson string  `json:"contact_person" validate:"max=200"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone" validate:"max=50"`
	Address       string  `json:"address" validate:"max=500"`
	PaymentTerms  string  `json:"payment_terms" validate:"max=100"`
	CustomerGroup string  `json:"customer_group" validate:"max=100"`
	CreditLimit   float64 `json:"credit_limit" validate:"gte=0"`
}

// ListFilters narrows and pages customer listings.
type ListFilters struct {
	Search string
	Group  string
	Page   int
	Limit  int
}
