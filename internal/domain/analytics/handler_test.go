package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTrackEndpointRecordsEvent(t *testing.T) {
	tracker := NewTracker(nil)
	defer tracker.Close()
	h := NewHandler(tracker)

	body, _ := json.Marshal(TrackRequest{Type: "donation", Page: "/give"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Track(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}

	summary, err := tracker.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary["donation"] != 1 {
		t.Fatalf("expected 1 donation, got %d", summary["donation"])
	}
}

func TestTrackEndpointRejectsUnknownType(t *testing.T) {
	tracker := NewTracker(nil)
	defer tracker.Close()
	h := NewHandler(tracker)

	body, _ := json.Marshal(TrackRequest{Type: "rage_click"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Track(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSummaryEndpoint(t *testing.T) {
	tracker := NewTracker(nil)
	defer tracker.Close()
	h := NewHandler(tracker)

	_ = tracker.Track(context.Background(), "page_view")
	_ = tracker.Track(context.Background(), "page_view")

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rr := httptest.NewRecorder()

	h.Summary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var out struct {
		Data struct {
			Events map[string]int64 `json:"events"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Data.Events["page_view"] != 2 {
		t.Fatalf("expected 2 page views, got %d", out.Data.Events["page_view"])
	}
}
