package products

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{artikelNr}", h.Get)
	r.Put("/{artikelNr}", h.Update)
	r.Delete("/{artikelNr}", h.Delete)
	r.Get("/{artikelNr}/margin", h.Margin)
}
