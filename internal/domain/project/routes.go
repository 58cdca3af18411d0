package project

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns public portfolio routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{slug}", h.GetBySlug)

	return r
}
