package chat

import (
	"time"

	"github.com/google/uuid"
)

// Conversation groups messages exchanged with one AI model
type Conversation struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Model     string    `db:"model"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

// Message is one turn in a conversation
type Message struct {
	ID             uuid.UUID `db:"id"`
	ConversationID uuid.UUID `db:"conversation_id"`
	Role           string    `db:"role"` // user or assistant
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}
