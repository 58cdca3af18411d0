package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/inneranimal/inneranimal-api/internal/middleware"
	"github.com/inneranimal/inneranimal-api/internal/pkg/response"
	"github.com/inneranimal/inneranimal-api/internal/pkg/validator"
)

// ProviderKeys holds the configured AI provider API keys. Empty values mean
// the corresponding model is not configured; the endpoint then degrades to
// a 503 naming the missing variable instead of failing.
type ProviderKeys struct {
	Anthropic string
	OpenAI    string
}

// Handler handles AI chat HTTP requests. Provider calls themselves are a
// placeholder; messages are persisted and an acknowledgement is returned.
type Handler struct {
	repo Repository
	keys ProviderKeys
}

// NewHandler creates chat handler
func NewHandler(repo Repository, keys ProviderKeys) *Handler {
	return &Handler{repo: repo, keys: keys}
}

// ChatRequest for POST /ai/chat
type ChatRequest struct {
	Model          string `json:"model" validate:"required,chat_model"`
	Message        string `json:"message" validate:"required"`
	ConversationID string `json:"conversation_id,omitempty" validate:"omitempty,uuid"`
}

// ChatResponse carries the placeholder reply
type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
	Model          string `json:"model"`
}

// Chat handles POST /ai/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if req.Model == "" || req.Message == "" {
		response.BadRequest(w, "Model and message are required")
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

	switch req.Model {
	case "claude":
		if h.keys.Anthropic == "" {
			response.NotConfigured(w, "Claude API key not configured. Set ANTHROPIC_API_KEY.")
			return
		}
	case "chatgpt":
		if h.keys.OpenAI == "" {
			response.NotConfigured(w, "OpenAI API key not configured. Set OPENAI_API_KEY.")
			return
		}
	}

	now := time.Now().UTC()

	var conversationID uuid.UUID
	if req.ConversationID != "" {
		id, err := uuid.Parse(req.ConversationID)
		if err != nil {
			response.BadRequest(w, "Invalid conversation ID")
			return
		}
		conv, err := h.repo.GetConversation(r.Context(), id)
		if err != nil {
			response.InternalError(w)
			return
		}
		if conv == nil || conv.UserID != userID {
			response.NotFound(w, "Conversation not found")
			return
		}
		conversationID = id
	} else {
		conversationID = uuid.New()
		conv := &Conversation{
			ID:        conversationID,
			UserID:    userID,
			Model:     req.Model,
			Title:     truncate(req.Message, 80),
			CreatedAt: now,
		}
		if err := h.repo.CreateConversation(r.Context(), conv); err != nil {
			response.InternalError(w)
			return
		}
	}

	userMsg := &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           "user",
		Content:        req.Message,
		CreatedAt:      now,
	}
	if err := h.repo.AppendMessage(r.Context(), userMsg); err != nil {
		response.InternalError(w)
		return
	}

	// Placeholder until provider integration lands
	reply := "AI chat is being set up. Your message was received and saved."
	assistantMsg := &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        reply,
		CreatedAt:      now,
	}
	if err := h.repo.AppendMessage(r.Context(), assistantMsg); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, ChatResponse{
		ConversationID: conversationID.String(),
		Message:        reply,
		Model:          req.Model,
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
