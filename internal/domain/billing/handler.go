package billing

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/inneranimal/inneranimal-api/internal/pkg/response"
)

// Stripe docs recommend capping webhook bodies at 64 KiB.
const maxWebhookBody = int64(65536)

// Handler handles Stripe webhook HTTP requests
type Handler struct {
	repo          Repository
	webhookSecret string
}

// NewHandler creates billing handler
func NewHandler(repo Repository, webhookSecret string) *Handler {
	return &Handler{repo: repo, webhookSecret: webhookSecret}
}

// Webhook handles POST /webhooks/stripe. The signature is verified before
// any event is processed; an invalid signature never touches the database.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.webhookSecret == "" {
		response.NotConfigured(w, "Stripe webhook not configured. Set STRIPE_WEBHOOK_SECRET.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to read stripe webhook body")
		response.BadRequest(w, "Error reading request body")
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		log.Warn().Err(err).Msg("stripe webhook signature verification failed")
		response.BadRequest(w, "Invalid signature")
		return
	}

	log.Info().Str("event_type", string(event.Type)).Str("event_id", event.ID).Msg("stripe event received")

	switch event.Type {
	case "checkout.session.completed":
		if err := h.handleCheckoutCompleted(r, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("failed to process checkout session")
			response.InternalError(w)
			return
		}

	case "customer.subscription.updated":
		if err := h.handleSubscriptionUpdated(r, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("failed to sync subscription")
			response.InternalError(w)
			return
		}

	case "customer.subscription.deleted":
		if err := h.handleSubscriptionDeleted(r, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("failed to cancel subscription")
			response.InternalError(w)
			return
		}

	default:
		log.Debug().Str("event_type", string(event.Type)).Msg("unhandled stripe event")
	}

	// Stripe retries anything that isn't a 2xx with this exact body.
	response.Raw(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *Handler) handleCheckoutCompleted(r *http.Request, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return err
	}

	// One-time payments have no subscription attached; nothing to record.
	if session.Subscription == nil {
		log.Info().Str("session_id", session.ID).Msg("checkout session without subscription, skipping")
		return nil
	}

	sub := &Subscription{
		StripeSubscriptionID: session.Subscription.ID,
		Status:               StatusActive,
	}
	if session.Customer != nil {
		sub.StripeCustomerID = session.Customer.ID
	}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		sub.CustomerEmail = sql.NullString{String: session.CustomerDetails.Email, Valid: true}
	}

	return h.repo.Upsert(r.Context(), sub)
}

func (h *Handler) handleSubscriptionUpdated(r *http.Request, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return err
	}

	return h.repo.UpdateStatus(r.Context(), sub.ID, string(sub.Status), periodEnd(&sub))
}

func (h *Handler) handleSubscriptionDeleted(r *http.Request, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return err
	}

	return h.repo.MarkCanceled(r.Context(), sub.ID)
}

// periodEnd reads the billing period end off the first subscription item.
func periodEnd(sub *stripe.Subscription) sql.NullTime {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return sql.NullTime{}
	}
	end := sub.Items.Data[0].CurrentPeriodEnd
	if end == 0 {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: time.Unix(end, 0).UTC(), Valid: true}
}
