package session

import (
	"context"
	"errors"
	"snapagenda-backend/cmd/snapagenda/model"
	"sync"
	"time"

	"github.com/google/uuid"
)

type View string

const (
	ViewList   View = "list"
	ViewUpload View = "upload"
	ViewEdit   View = "edit"
)

var (
	ErrBusy             = errors.New("an extraction is already in progress")
	ErrConflictingState = errors.New("action not available in the current view")
	ErrNoDraft          = errors.New("no draft event is being edited")
	ErrEventNotFound    = errors.New("event not found")
)

// NoticeExtractionFailed is the one-time advisory shown when the extraction
// service could not produce a result. The flow still reaches the edit view
// with a blank draft.
const NoticeExtractionFailed = "Could not extract event details. Please try another image or enter manually."

type IEventStore interface {
	GetEvent(ctx context.Context, id string) (model.Event, bool)
	UpsertEvent(ctx context.Context, e model.Event) ([]model.Event, error)
}

type IExtractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) *model.ExtractionResult
}

// State is a copy of the controller's current state, safe to hand to
// rendering collaborators.
type State struct {
	View       View         `json:"view"`
	Processing bool         `json:"processing"`
	Draft      *model.Event `json:"draft,omitempty"`
}

// Controller owns the transient UI state: current view, the in-flight
// processing flag, and the draft event under edit. All transitions go
// through its methods. Handlers run concurrently, so the state is guarded
// by a mutex even though the session itself is sequential.
type Controller struct {
	mu         sync.Mutex
	view       View
	processing bool
	draft      *model.Event

	store     IEventStore
	extractor IExtractor
	now       func() time.Time
}

func NewController(store IEventStore, extractor IExtractor) *Controller {
	return &Controller{
		view:      ViewList,
		store:     store,
		extractor: extractor,
		now:       time.Now,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// BeginUpload moves list -> upload and clears any stale draft.
func (c *Controller) BeginUpload() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.processing {
		return c.snapshotLocked(), ErrBusy
	}

	c.view = ViewUpload
	c.draft = nil

	return c.snapshotLocked(), nil
}

// SubmitImage runs the single-shot extraction and seeds the draft. On a nil
// extraction it seeds the blank template instead and returns the advisory
// notice; either way the session lands in the edit view. A second submission
// while one is outstanding is rejected with ErrBusy.
func (c *Controller) SubmitImage(ctx context.Context, image []byte, mimeType string) (State, string, error) {

	c.mu.Lock()
	if c.processing {
		state := c.snapshotLocked()
		c.mu.Unlock()
		return state, "", ErrBusy
	}
	if c.view != ViewUpload {
		state := c.snapshotLocked()
		c.mu.Unlock()
		return state, "", ErrConflictingState
	}
	c.processing = true
	c.mu.Unlock()

	// The extraction call runs outside the lock; the processing flag keeps
	// it single-in-flight. It runs to completion, no cancellation path.
	res := c.extractor.Extract(ctx, image, mimeType)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.processing = false

	id, err := newEventID()
	if err != nil {
		return c.snapshotLocked(), "", err
	}

	notice := ""
	if res != nil {
		draft := model.DraftFromExtraction(*res, id)
		c.draft = &draft
	} else {
		notice = NoticeExtractionFailed
		draft := model.NewBlankDraft(c.now())
		draft.ID = id
		c.draft = &draft
	}
	c.view = ViewEdit

	return c.snapshotLocked(), notice, nil
}

// SkipUpload moves upload -> edit with the blank template.
func (c *Controller) SkipUpload() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewUpload {
		return c.snapshotLocked(), ErrConflictingState
	}

	id, err := newEventID()
	if err != nil {
		return c.snapshotLocked(), err
	}

	draft := model.NewBlankDraft(c.now())
	draft.ID = id
	c.draft = &draft
	c.view = ViewEdit

	return c.snapshotLocked(), nil
}

// EditEvent moves list -> edit with a stored event as the draft.
func (c *Controller) EditEvent(ctx context.Context, id string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewList {
		return c.snapshotLocked(), ErrConflictingState
	}

	event, found := c.store.GetEvent(ctx, id)
	if !found {
		return c.snapshotLocked(), ErrEventNotFound
	}

	c.draft = &event
	c.view = ViewEdit

	return c.snapshotLocked(), nil
}

// Cancel discards the draft and returns to the list view without touching
// the store. It also serves back navigation from any view.
func (c *Controller) Cancel() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = ViewList
	c.draft = nil

	return c.snapshotLocked()
}

// Confirm validates the edited event and commits it, moving edit -> list.
// A validation failure leaves the session in the edit view.
func (c *Controller) Confirm(ctx context.Context, e model.Event) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewEdit || c.draft == nil {
		return c.snapshotLocked(), ErrNoDraft
	}

	if e.ID == "" {
		e.ID = c.draft.ID
	}

	if err := e.Validate(); err != nil {
		return c.snapshotLocked(), err
	}

	if _, err := c.store.UpsertEvent(ctx, e); err != nil {
		return c.snapshotLocked(), err
	}

	c.view = ViewList
	c.draft = nil

	return c.snapshotLocked(), nil
}

func (c *Controller) snapshotLocked() State {
	state := State{
		View:       c.view,
		Processing: c.processing,
	}
	if c.draft != nil {
		draft := *c.draft
		state.Draft = &draft
	}
	return state
}

func newEventID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
