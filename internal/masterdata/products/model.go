package products

import "time"

// Product is an article in the catalog, keyed by its Artikel-Nr.
type Product struct {
	ArtikelNr     string    `json:"artikel_nr" db:"artikel_nr"`
	Name          string    `json:"name" db:"name"`
	VKPrice       float64   `json:"vk_price" db:"vk_price"`
	EKPrice       float64   `json:"ek_price" db:"ek_price"`
	MwSt          string    `json:"mwst" db:"mwst"`
	PackungArt    string    `json:"packung_art" db:"packung_art"`
	PackungInhalt string    `json:"packung_inhalt" db:"packung_inhalt"`
	IstBestand    int       `json:"ist_bestand" db:"ist_bestand"`
	EAN           string    `json:"ean" db:"ean"`
	Herkunftsland string    `json:"herkunftsland" db:"herkunftsland"`
	Produktgruppe string    `json:"produktgruppe" db:"produktgruppe"`
	SupplierID    *string   `json:"supplier_id,omitempty" db:"supplier_id"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
