package project

import (
	"time"

	"github.com/lib/pq"
)

// Category is the fixed set of portfolio service categories
type Category string

const (
	CategoryWeb       Category = "web"
	CategoryBranding  Category = "branding"
	CategoryMarketing Category = "marketing"
	CategoryStrategy  Category = "strategy"
)

// FilterAll is the neutral value for category and brand filters
const FilterAll = "all"

// Project is one portfolio item. Read-only from the API's perspective;
// content is managed out-of-band.
type Project struct {
	ID         string         `db:"id" json:"id"`
	BrandID    string         `db:"brand_id" json:"brand_id"`
	Title      string         `db:"title" json:"title"`
	Slug       string         `db:"slug" json:"slug"`
	Summary    string         `db:"summary" json:"summary"`
	Category   Category       `db:"category" json:"category"`
	Tags       pq.StringArray `db:"tags" json:"tags"`
	Services   pq.StringArray `db:"services" json:"services"`
	Published  bool           `db:"published" json:"published"`
	Featured   bool           `db:"featured" json:"featured"`
	OrderIndex int            `db:"order_index" json:"order_index"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}
