package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns chat routes. All endpoints require auth.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/chat", h.Chat)
	})

	return r
}
