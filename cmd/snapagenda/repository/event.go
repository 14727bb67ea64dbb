package repository

import (
	"context"
	"encoding/json"
	"snapagenda-backend/cmd/snapagenda/model"
	"sync"
)

// EventSlotName is the durable slot holding the whole serialized collection.
const EventSlotName = "snapagenda_events"

type ISlotRepo interface {
	GetSlot(ctx context.Context, name string) (string, bool, error)
	SetSlot(ctx context.Context, name string, payload string) error
}

// EventStore owns the event collection. It loads the durable slot once at
// construction and rewrites the whole serialized collection after every
// mutation. Reads hand out copies so callers cannot alias the internal slice.
type EventStore struct {
	mu     sync.RWMutex
	slots  ISlotRepo
	events []model.Event
}

func NewEventStore(ctx context.Context, slots ISlotRepo) *EventStore {

	store := &EventStore{
		slots: slots,
	}
	store.events = store.load(ctx)

	return store
}

// load reads the slot. An absent, unreadable or unparsable payload counts as
// "no prior events" and must not abort startup.
func (s *EventStore) load(ctx context.Context) []model.Event {

	payload, found, err := s.slots.GetSlot(ctx, EventSlotName)
	if err != nil || !found || payload == "" {
		return nil
	}

	var events []model.Event
	if err := json.Unmarshal([]byte(payload), &events); err != nil {
		return nil
	}

	return events
}

func (s *EventStore) persist(ctx context.Context) error {

	data, err := json.Marshal(s.events)
	if err != nil {
		return err
	}

	return s.slots.SetSlot(ctx, EventSlotName, string(data))
}

// Events returns the collection in insertion order.
func (s *EventStore) Events(ctx context.Context) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyLocked()
}

// SortedEvents returns the display view, ordered chronologically.
func (s *EventStore) SortedEvents(ctx context.Context) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.SortedView(s.events)
}

// GetEvent looks up a single event by id.
func (s *EventStore) GetEvent(ctx context.Context, id string) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}

	return model.Event{}, false
}

// UpsertEvent replaces any event sharing e's id and appends e, then persists
// the new collection.
func (s *EventStore) UpsertEvent(ctx context.Context, e model.Event) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = model.Upsert(s.events, e)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	return s.copyLocked(), nil
}

// RemoveEvent drops the event of matching id, a no-op when absent, then
// persists.
func (s *EventStore) RemoveEvent(ctx context.Context, id string) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = model.Remove(s.events, id)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	return s.copyLocked(), nil
}

func (s *EventStore) copyLocked() []model.Event {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}
