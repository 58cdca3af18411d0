package forum

import (
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest for POST /forum/posts
type CreatePostRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=200"`
	Content    string `json:"content" validate:"required"`
	CategoryID string `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

// CreateCommentRequest for POST /forum/comments
type CreateCommentRequest struct {
	PostID   string `json:"post_id" validate:"required,uuid"`
	Content  string `json:"content" validate:"required"`
	ParentID string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CategoryID *string   `json:"category_id,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Slug       string    `json:"slug"`
	AuthorName string    `json:"author_name,omitempty"`
	LikeCount  int       `json:"like_count"`
	CreatedAt  string    `json:"created_at"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"post_id"`
	UserID     uuid.UUID `json:"user_id"`
	ParentID   *string   `json:"parent_id,omitempty"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name,omitempty"`
	LikeCount  int       `json:"like_count"`
	CreatedAt  string    `json:"created_at"`
}

// PostResponseFromEntity converts entity to response
func PostResponseFromEntity(p *Post) *PostResponse {
	resp := &PostResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		Slug:      p.Slug,
		LikeCount: p.LikeCount,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.CategoryID.Valid {
		id := p.CategoryID.UUID.String()
		resp.CategoryID = &id
	}
	if p.AuthorName.Valid {
		resp.AuthorName = p.AuthorName.String
	}
	return resp
}

// CommentResponseFromEntity converts entity to response
func CommentResponseFromEntity(c *Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.ParentID.Valid {
		id := c.ParentID.UUID.String()
		resp.ParentID = &id
	}
	if c.AuthorName.Valid {
		resp.AuthorName = c.AuthorName.String
	}
	return resp
}
