package project

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inneranimal/inneranimal-api/internal/pkg/response"
	"github.com/inneranimal/inneranimal-api/internal/pkg/validator"
)

const defaultLimit = 50

// Handler handles portfolio HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates project handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListResponse carries the filtered project list and its source
type ListResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
	Source   string    `json:"source"` // database or fallback
}

// List handles GET /projects?category=&brand=&q=
// Filtering is applied after the fetch so the same pure predicate set
// drives both the API and the client.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	brand := q.Get("brand")
	search := q.Get("q")

	if category != "" {
		if err := validator.ValidateVar(category, "project_category"); err != nil {
			response.BadRequest(w, "Invalid category. Must be: all, web, branding, marketing, or strategy")
			return
		}
	}

	limit := parseIntDefault(q.Get("limit"), defaultLimit)
	offset := parseIntDefault(q.Get("offset"), 0)

	source := "database"
	projects, err := h.repo.ListPublished(r.Context(), limit, offset)
	if err != nil {
		// Database unreachable: serve the static fallback list
		log.Warn().Err(err).Msg("Project fetch failed, using fallback data")
		projects = FallbackProjects()
		source = "fallback"
	}

	filtered := Filter(projects, category, brand, search)

	response.OK(w, ListResponse{
		Projects: filtered,
		Total:    len(filtered),
		Source:   source,
	})
}

// GetBySlug handles GET /projects/{slug}
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.repo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, "Project not found")
			return
		}
		for _, fp := range FallbackProjects() {
			if fp.Slug == slug {
				response.OK(w, fp)
				return
			}
		}
		response.InternalError(w)
		return
	}

	response.OK(w, p)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
