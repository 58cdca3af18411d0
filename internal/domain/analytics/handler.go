package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/inneranimal/inneranimal-api/internal/pkg/response"
	"github.com/inneranimal/inneranimal-api/internal/pkg/validator"
)

// Handler handles analytics HTTP requests
type Handler struct {
	tracker *Tracker
}

// NewHandler creates analytics handler
func NewHandler(tracker *Tracker) *Handler {
	return &Handler{tracker: tracker}
}

// TrackRequest for POST /events
type TrackRequest struct {
	Type      string `json:"type" validate:"required,event_type"`
	Page      string `json:"page,omitempty" validate:"omitempty,max=512"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}

// Track handles POST /events
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.tracker.Track(r.Context(), req.Type); err != nil {
		// Tracking must never break the caller's page; log and ack anyway.
		log.Warn().Err(err).Str("event_type", req.Type).Msg("failed to track event")
	}

	response.NoContent(w)
}

// Summary handles GET /events/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.tracker.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read analytics summary")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"events": counts})
}
