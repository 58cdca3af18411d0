package project

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository defines project data access
type Repository interface {
	ListPublished(ctx context.Context, limit, offset int) ([]Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates project repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPublished(ctx context.Context, limit, offset int) ([]Project, error) {
	query := `
		SELECT id, brand_id, title, slug, summary, category, tags, services,
		       published, featured, order_index, created_at, updated_at
		FROM projects
		WHERE published = true
		ORDER BY order_index ASC, created_at DESC
		LIMIT $1 OFFSET $2
	`
	var projects []Project
	if err := r.db.SelectContext(ctx, &projects, query, limit, offset); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	query := `
		SELECT id, brand_id, title, slug, summary, category, tags, services,
		       published, featured, order_index, created_at, updated_at
		FROM projects
		WHERE slug = $1 AND published = true
	`
	var p Project
	if err := r.db.GetContext(ctx, &p, query, slug); err != nil {
		return nil, err
	}
	return &p, nil
}
