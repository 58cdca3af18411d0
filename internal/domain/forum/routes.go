package forum

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns forum routes. Reads are public; writes require auth.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/posts", h.ListPosts)
	r.Get("/comments", h.ListComments)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/posts", h.CreatePost)
		r.Post("/comments", h.CreateComment)
	})

	return r
}
