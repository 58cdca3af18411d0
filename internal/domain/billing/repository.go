package billing

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines subscription data access
type Repository interface {
	Upsert(ctx context.Context, sub *Subscription) error
	UpdateStatus(ctx context.Context, stripeSubscriptionID, status string, periodEnd sql.NullTime) error
	MarkCanceled(ctx context.Context, stripeSubscriptionID string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates subscription repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts a subscription record or refreshes an existing one. Stripe
// retries webhook deliveries, so replaying the same event must not create
// duplicate rows.
func (r *repository) Upsert(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, stripe_subscription_id, stripe_customer_id, customer_email,
			status, current_period_end, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (stripe_subscription_id) DO UPDATE SET
			stripe_customer_id = EXCLUDED.stripe_customer_id,
			customer_email = EXCLUDED.customer_email,
			status = EXCLUDED.status,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = EXCLUDED.updated_at
	`
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.StripeSubscriptionID, sub.StripeCustomerID, sub.CustomerEmail,
		sub.Status, sub.CurrentPeriodEnd, now,
	)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, stripeSubscriptionID, status string, periodEnd sql.NullTime) error {
	query := `
		UPDATE subscriptions
		SET status = $2, current_period_end = $3, updated_at = $4
		WHERE stripe_subscription_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, stripeSubscriptionID, status, periodEnd, time.Now().UTC())
	return err
}

func (r *repository) MarkCanceled(ctx context.Context, stripeSubscriptionID string) error {
	query := `
		UPDATE subscriptions
		SET status = $2, updated_at = $3
		WHERE stripe_subscription_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, stripeSubscriptionID, StatusCanceled, time.Now().UTC())
	return err
}
