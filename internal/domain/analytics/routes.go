package analytics

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns analytics routes
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Track)
	r.Get("/summary", h.Summary)
	return r
}
