package user

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns public auth routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)

	return r
}
