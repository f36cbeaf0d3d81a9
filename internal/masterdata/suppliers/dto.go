package suppliers

// SupplierRequest carries the editable supplier fields for create and update.
type SupplierRequest struct {
	CompanyName   string  `json:"company_name" validate:"required,max=200"`
	ContactPerson string  `json:"contact_person" validate:"max=200"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone" validate:"max=50"`
	Address       string  `json:"address" validate:"max=500"`
	TaxID         string  `json:"tax_id" validate:"max=50"`
	PaymentTerms  string  `json:"payment_terms" validate:"max=100"`
	SupplierType  string  `json:"supplier_type" validate:"max=100"`
	Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
	Notes         string  `json:"notes"`
}

// ListFilters narrows and pages supplier listings.
type ListFilters struct {
	Search string
	Type   string
	Page   int
	Limit  int
}
