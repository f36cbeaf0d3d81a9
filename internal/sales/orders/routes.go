package orders

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/status", h.SetStatus)
	r.Post("/{id}/payment-status", h.SetPaymentStatus)
	r.Post("/{id}/refresh-prices", h.RefreshPrices)
	r.Get("/{id}/pdf", h.ExportPDF)
}
