package forum

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines forum data access
type Repository interface {
	ListPosts(ctx context.Context, categoryID uuid.NullUUID, limit, offset int) ([]*Post, error)
	CreatePost(ctx context.Context, post *Post) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	CreateComment(ctx context.Context, comment *Comment) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates forum repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPosts(ctx context.Context, categoryID uuid.NullUUID, limit, offset int) ([]*Post, error) {
	query := `
		SELECT p.id, p.user_id, p.category_id, p.title, p.content, p.slug,
		       p.is_published, p.is_deleted, p.created_at, p.updated_at,
		       u.display_name AS author_name,
		       COUNT(pl.post_id) AS like_count
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		LEFT JOIN post_likes pl ON pl.post_id = p.id
		WHERE p.is_published = true AND p.is_deleted = false
		  AND ($1::uuid IS NULL OR p.category_id = $1)
		GROUP BY p.id, u.display_name
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`
	var catID interface{}
	if categoryID.Valid {
		catID = categoryID.UUID
	}

	var posts []*Post
	if err := r.db.SelectContext(ctx, &posts, query, catID, limit, offset); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repository) CreatePost(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (id, user_id, category_id, title, content, slug, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.UserID, post.CategoryID, post.Title, post.Content, post.Slug, post.CreatedAt,
	)
	return err
}

func (r *repository) ListComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.parent_id, c.content,
		       c.is_deleted, c.created_at,
		       u.display_name AS author_name,
		       COUNT(cl.comment_id) AS like_count
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		LEFT JOIN comment_likes cl ON cl.comment_id = c.id
		WHERE c.post_id = $1 AND c.is_deleted = false
		GROUP BY c.id, u.display_name
		ORDER BY c.created_at ASC
	`
	var comments []*Comment
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *repository) CreateComment(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, parent_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.ParentID, comment.Content, comment.CreatedAt,
	)
	return err
}
