package asset

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns asset routes mounted under /api/v1/assets
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/upload", h.Upload)
	r.Get("/{id}", h.GetMetadata)

	return r
}

// SharedRoutes returns the public share-link routes mounted at /shared
func (h *Handler) SharedRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.Shared)

	return r
}
