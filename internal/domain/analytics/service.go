package analytics

import (
	"context"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

const eventsKey = "analytics:events"

// EventTypes lists the trackable event types.
var EventTypes = []string{
	"page_view",
	"grant_application",
	"donation",
	"resource_download",
	"community_engagement",
}

// Tracker counts site events. Backed by a Redis hash when a client is
// provided, otherwise by an in-process map. The tracker owns neither
// connection nor goroutines beyond what it creates; Close releases its
// in-memory state and detaches from the client.
type Tracker struct {
	client *redis.Client

	mu     sync.RWMutex
	counts map[string]int64
	closed bool
}

// NewTracker creates a tracker. Pass nil client to use in-memory counters.
func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{
		client: client,
		counts: make(map[string]int64),
	}
}

// Track increments the counter for an event type.
func (t *Tracker) Track(ctx context.Context, eventType string) error {
	if t.client != nil {
		return t.client.HIncrBy(ctx, eventsKey, eventType, 1).Err()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.counts[eventType]++
	return nil
}

// Summary returns counts per event type. Types that never occurred are
// present with a zero count so dashboards get a stable shape.
func (t *Tracker) Summary(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(EventTypes))
	for _, et := range EventTypes {
		out[et] = 0
	}

	if t.client != nil {
		raw, err := t.client.HGetAll(ctx, eventsKey).Result()
		if err != nil {
			return nil, err
		}
		for field, val := range raw {
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				continue
			}
			out[field] = n
		}
		return out, nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	for et, n := range t.counts {
		out[et] = n
	}
	return out, nil
}

// Close releases in-memory counters. The Redis client, if any, is owned by
// the caller and left open.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.counts = nil
	t.client = nil
	return nil
}
