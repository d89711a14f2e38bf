package eventlog

import (
	"context"
	"strconv"
	"sync"
	"time"

	"deploy-monitor/internal/model"
)

const (
	// DefaultMaxRetained bounds the in-memory log. Once exceeded the
	// oldest events are discarded first.
	DefaultMaxRetained = 1000

	// DefaultRecentLimit is the listing size used by the status surface.
	DefaultRecentLimit = 50
)

// Store is an append-only, capacity-bounded, in-process event log.
//
// The log lives only in process memory: a multi-process deployment needs
// an external shared store, since events appended in one instance are
// invisible to the others. See Recorder for the seam that allows that.
type Store struct {
	mu     sync.RWMutex
	events []model.WebhookEvent
	nextID int64
	max    int
}

// NewStore creates a store retaining at most max events. A non-positive
// max falls back to DefaultMaxRetained.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxRetained
	}
	return &Store{
		events: make([]model.WebhookEvent, 0, max),
		nextID: 1,
		max:    max,
	}
}

// Append assigns the event an id and timestamp, inserts it at the end and
// evicts from the front if the store exceeds its capacity. The stored
// event is returned.
func (s *Store) Append(event model.WebhookEvent) model.WebhookEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = strconv.FormatInt(s.nextID, 10)
	event.Timestamp = time.Now().UTC()
	s.nextID++

	s.events = append(s.events, event)
	if len(s.events) > s.max {
		// Shift rather than reslice so evicted entries can be collected.
		n := copy(s.events, s.events[len(s.events)-s.max:])
		s.events = s.events[:n]
	}

	return event
}

// Record implements Recorder on top of Append.
func (s *Store) Record(_ context.Context, event model.WebhookEvent) (model.WebhookEvent, error) {
	return s.Append(event), nil
}

// Recent returns up to limit most-recently-appended events, newest first.
// A non-positive limit falls back to DefaultRecentLimit. The returned
// slice is a copy; the store is never mutated.
func (s *Store) Recent(limit int) []model.WebhookEvent {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.events) {
		limit = len(s.events)
	}

	out := make([]model.WebhookEvent, 0, limit)
	for i := len(s.events) - 1; i >= len(s.events)-limit; i-- {
		out = append(out, s.events[i])
	}
	return out
}

// Count returns the number of currently retained events.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
