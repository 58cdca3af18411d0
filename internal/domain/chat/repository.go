package chat

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines conversation data access
type Repository interface {
	CreateConversation(ctx context.Context, c *Conversation) error
	GetConversation(ctx context.Context, id uuid.UUID) (*Conversation, error)
	AppendMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*Message, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates chat repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateConversation(ctx context.Context, c *Conversation) error {
	query := `
		INSERT INTO conversations (id, user_id, model, title, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.Model, c.Title, c.CreatedAt)
	return err
}

func (r *repository) GetConversation(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	query := `SELECT * FROM conversations WHERE id = $1`
	var c Conversation
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) AppendMessage(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.ConversationID, m.Role, m.Content, m.CreatedAt)
	return err
}

func (r *repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*Message, error) {
	query := `SELECT * FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`
	var messages []*Message
	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, err
	}
	return messages, nil
}
