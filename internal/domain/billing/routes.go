package billing

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns billing webhook routes
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/stripe", h.Webhook)
	return r
}
