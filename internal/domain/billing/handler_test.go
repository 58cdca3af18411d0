package billing

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "whsec_test_secret"

type fakeRepo struct {
	upserts    []*Subscription
	updates    []string
	cancels    []string
	lastStatus string
	lastPeriod sql.NullTime
}

func (f *fakeRepo) Upsert(ctx context.Context, sub *Subscription) error {
	f.upserts = append(f.upserts, sub)
	return nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, stripeSubscriptionID, status string, periodEnd sql.NullTime) error {
	f.updates = append(f.updates, stripeSubscriptionID)
	f.lastStatus = status
	f.lastPeriod = periodEnd
	return nil
}

func (f *fakeRepo) MarkCanceled(ctx context.Context, stripeSubscriptionID string) error {
	f.cancels = append(f.cancels, stripeSubscriptionID)
	return nil
}

// signPayload computes a Stripe-Signature header the way Stripe signs
// deliveries: HMAC-SHA256 over "{timestamp}.{payload}".
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(t *testing.T, h *Handler, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rr := httptest.NewRecorder()
	h.Webhook(rr, req)
	return rr
}

func TestWebhookCheckoutSessionCompletedUpsertsOnce(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, testSecret)

	payload := []byte(`{
		"id": "evt_1",
		"api_version": "2025-06-30.basil",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_123",
				"customer": "cus_123",
				"subscription": "sub_123",
				"customer_details": {"email": "donor@example.com"}
			}
		}
	}`)

	rr := postWebhook(t, h, payload, signPayload(payload, testSecret, time.Now()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Body.String(); got != "{\"received\":true}\n" {
		t.Fatalf("unexpected ack body %q", got)
	}
	if len(repo.upserts) != 1 {
		t.Fatalf("expected exactly one upsert, got %d", len(repo.upserts))
	}

	sub := repo.upserts[0]
	if sub.StripeSubscriptionID != "sub_123" {
		t.Fatalf("unexpected subscription id %q", sub.StripeSubscriptionID)
	}
	if sub.StripeCustomerID != "cus_123" {
		t.Fatalf("unexpected customer id %q", sub.StripeCustomerID)
	}
	if sub.Status != StatusActive {
		t.Fatalf("expected active status, got %q", sub.Status)
	}
	if !sub.CustomerEmail.Valid || sub.CustomerEmail.String != "donor@example.com" {
		t.Fatalf("unexpected email %+v", sub.CustomerEmail)
	}
}

func TestWebhookInvalidSignatureNeverTouchesRepo(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, testSecret)

	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {"id": "cs_123", "subscription": "sub_123"}}}`)

	rr := postWebhook(t, h, payload, signPayload(payload, "whsec_wrong_secret", time.Now()))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if len(repo.upserts)+len(repo.updates)+len(repo.cancels) != 0 {
		t.Fatal("an unverified event must not reach the repository")
	}
}

func TestWebhookMissingSignatureHeader(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, testSecret)

	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {}}}`)

	rr := postWebhook(t, h, payload, "")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestWebhookTamperedPayloadRejected(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, testSecret)

	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {"subscription": "sub_123"}}}`)
	signature := signPayload(payload, testSecret, time.Now())
	tampered := bytes.Replace(payload, []byte("sub_123"), []byte("sub_666"), 1)

	rr := postWebhook(t, h, tampered, signature)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a tampered payload, got %d", rr.Code)
	}
	if len(repo.upserts) != 0 {
		t.Fatal("a tampered event must not reach the repository")
	}
}

func TestWebhookSubscriptionUpdatedSyncsStatus(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, testSecret)

	periodEnd := time.Now().Add(30 * 24 * time.Hour).Unix()
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"api_version": "2025-06-30.basil",
		"type": "customer.subscription.updated",
		"data": {
			"object": {
				"id": "sub_123",
				"status": "past_due",
				"items": {"data": [{"id": "si_1", "current_period_end": %d}]}
			}
		}
	}`, periodEnd))

	rr := postWebhook(t, h, payload, signPayload(payload, testSecret, time.Now()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if len(repo.updates) != 1 || repo.updates[0] != "sub_123" {
		t.Fatalf("expected one status update for sub_123, got %v", repo.updates)
	}
	if repo.lastStatus != "past_due" {
		t.Fatalf("expected past_due, got %q", repo.lastStatus)
	}
	if !repo.lastPeriod.Valid || repo.lastPeriod.Time.Unix() != periodEnd {
		t.Fatalf("unexpected period end %+v", repo.lastPeriod)
	}
}

func TestWebhookSubscriptionDeletedMarksCanceled(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, testSecret)

	payload := []byte(`{
		"id": "evt_3",
		"api_version": "2025-06-30.basil",
		"type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_123", "status": "canceled"}}
	}`)

	rr := postWebhook(t, h, payload, signPayload(payload, testSecret, time.Now()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(repo.cancels) != 1 || repo.cancels[0] != "sub_123" {
		t.Fatalf("expected one cancel for sub_123, got %v", repo.cancels)
	}
}

func TestWebhookUnhandledEventStillAcked(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, testSecret)

	payload := []byte(`{"id": "evt_4", "api_version": "2025-06-30.basil", "type": "invoice.paid", "data": {"object": {"id": "in_1"}}}`)

	rr := postWebhook(t, h, payload, signPayload(payload, testSecret, time.Now()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(repo.upserts)+len(repo.updates)+len(repo.cancels) != 0 {
		t.Fatal("an unhandled event must not touch the repository")
	}
}

func TestWebhookWithoutSecretReturns503(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, "")

	rr := postWebhook(t, h, []byte(`{}`), "")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
