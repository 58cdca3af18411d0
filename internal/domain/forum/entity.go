package forum

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Post is one forum post with denormalized author and like data
type Post struct {
	ID          uuid.UUID      `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	CategoryID  uuid.NullUUID  `db:"category_id"`
	Title       string         `db:"title"`
	Content     string         `db:"content"`
	Slug        string         `db:"slug"`
	IsPublished bool           `db:"is_published"`
	IsDeleted   bool           `db:"is_deleted"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	AuthorName  sql.NullString `db:"author_name"`
	LikeCount   int            `db:"like_count"`
}

// Comment is one forum comment, optionally nested under a parent
type Comment struct {
	ID         uuid.UUID      `db:"id"`
	PostID     uuid.UUID      `db:"post_id"`
	UserID     uuid.UUID      `db:"user_id"`
	ParentID   uuid.NullUUID  `db:"parent_id"`
	Content    string         `db:"content"`
	IsDeleted  bool           `db:"is_deleted"`
	CreatedAt  time.Time      `db:"created_at"`
	AuthorName sql.NullString `db:"author_name"`
	LikeCount  int            `db:"like_count"`
}
