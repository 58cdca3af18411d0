package billing

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Subscription statuses mirror Stripe's subscription lifecycle.
const (
	StatusActive   = "active"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
)

// Subscription is a local record of a Stripe subscription, keyed by the
// Stripe subscription ID so webhook events apply idempotently.
type Subscription struct {
	ID                   uuid.UUID      `db:"id" json:"id"`
	StripeSubscriptionID string         `db:"stripe_subscription_id" json:"stripe_subscription_id"`
	StripeCustomerID     string         `db:"stripe_customer_id" json:"stripe_customer_id"`
	CustomerEmail        sql.NullString `db:"customer_email" json:"customer_email,omitempty"`
	Status               string         `db:"status" json:"status"`
	CurrentPeriodEnd     sql.NullTime   `db:"current_period_end" json:"current_period_end,omitempty"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at" json:"updated_at"`
}
