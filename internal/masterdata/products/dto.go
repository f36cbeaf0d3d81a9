package products

// CreateProductRequest carries the fields accepted when registering an article.
type CreateProductRequest struct {
	ArtikelNr     string  `json:"artikel_nr" validate:"required,max=50"`
	Name          string  `json:"name" validate:"required,max=200"`
	VKPrice       float64 `json:"vk_price" validate:"gte=0"`
	EKPrice       float64 `json:"ek_price" validate:"gte=0"`
	MwSt          string  `json:"mwst" validate:"required,max=5"`
	PackungArt    string  `json:"packung_art" validate:"max=100"`
	PackungInhalt string  `json:"packung_inhalt" validate:"max=100"`
	IstBestand    int     `json:"ist_bestand" validate:"gte=0"`
	EAN           string  `json:"ean" validate:"max=20"`
	Herkunftsland string  `json:"herkunftsland" validate:"max=100"`
	Produktgruppe string  `json:"produktgruppe" validate:"max=100"`
	SupplierID    *string `json:"supplier_id,omitempty" validate:"omitempty,uuid4"`
	ImageURL      *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateProductRequest mirrors CreateProductRequest; the article number in the
// URL identifies the record and cannot change.
type UpdateProductRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	VKPrice       float64 `json:"vk_price" validate:"gte=0"`
	EKPrice       float64 `json:"ek_price" validate:"gte=0"`
	MwSt          string  `json:"mwst" validate:"required,max=5"`
	PackungArt    string  `json:"packung_art" validate:"max=100"`
	PackungInhalt string  `json:"packung_inhalt" validate:"max=100"`
	IstBestand    int     `json:"ist_bestand" validate:"gte=0"`
	EAN           string  `json:"ean" validate:"max=20"`
	Herkunftsland string  `json:"herkunftsland" validate:"max=100"`
	Produktgruppe string  `json:"produktgruppe" validate:"max=100"`
	SupplierID    *string `json:"supplier_id,omitempty" validate:"omitempty,uuid4"`
	ImageURL      *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ListFilters narrows and pages product listings.
type ListFilters struct {
	Search        string
	Produktgruppe string
	SupplierID    *string
	Page          int
	Limit         int
}
