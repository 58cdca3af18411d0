package forum

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inneranimal/inneranimal-api/internal/middleware"
	"github.com/inneranimal/inneranimal-api/internal/pkg/response"
	"github.com/inneranimal/inneranimal-api/internal/pkg/validator"
)

const defaultPostLimit = 20

// Handler handles forum HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates forum handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListPosts handles GET /forum/posts?category_id=&limit=&offset=
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var categoryID uuid.NullUUID
	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid category ID")
			return
		}
		categoryID = uuid.NullUUID{UUID: id, Valid: true}
	}

	limit := parseIntDefault(q.Get("limit"), defaultPostLimit)
	offset := parseIntDefault(q.Get("offset"), 0)

	posts, err := h.repo.ListPosts(r.Context(), categoryID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*PostResponse, len(posts))
	for i, p := range posts {
		items[i] = PostResponseFromEntity(p)
	}
	response.OK(w, map[string]interface{}{"posts": items})
}

// CreatePost handles POST /forum/posts
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if req.Title == "" || req.Content == "" {
		response.BadRequest(w, "Title and content are required")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	post := &Post{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Slug:      slugify(req.Title),
		CreatedAt: time.Now().UTC(),
	}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			response.BadRequest(w, "Invalid category ID")
			return
		}
		post.CategoryID = uuid.NullUUID{UUID: id, Valid: true}
	}

	if err := h.repo.CreatePost(r.Context(), post); err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{"post": PostResponseFromEntity(post)})
}

// ListComments handles GET /forum/comments?post_id=
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("post_id")
	if raw == "" {
		response.BadRequest(w, "Post ID is required")
		return
	}
	postID, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	comments, err := h.repo.ListComments(r.Context(), postID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*CommentResponse, len(comments))
	for i, c := range comments {
		items[i] = CommentResponseFromEntity(c)
	}
	response.OK(w, map[string]interface{}{"comments": items})
}

// CreateComment handles POST /forum/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if req.PostID == "" || req.Content == "" {
		response.BadRequest(w, "Post ID and content are required")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	comment := &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if req.ParentID != "" {
		id, err := uuid.Parse(req.ParentID)
		if err != nil {
			response.BadRequest(w, "Invalid parent ID")
			return
		}
		comment.ParentID = uuid.NullUUID{UUID: id, Valid: true}
	}

	if err := h.repo.CreateComment(r.Context(), comment); err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{"comment": CommentResponseFromEntity(comment)})
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases the title and collapses non-alphanumeric runs to "-"
func slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
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
