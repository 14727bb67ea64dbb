package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Validate_Valid(t *testing.T) {
	event := Event{
		ID:    "event-1",
		Title: "Dinner",
		Date:  "2025-03-01",
		Time:  "19:00",
	}

	assert.NoError(t, event.Validate())
}

func TestEvent_Validate_MissingTitle(t *testing.T) {
	event := Event{
		ID:   "event-1",
		Date: "2025-03-01",
	}

	err := event.Validate()
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestEvent_Validate_BlankTitle(t *testing.T) {
	event := Event{
		ID:    "event-1",
		Title: "   ",
		Date:  "2025-03-01",
	}

	err := event.Validate()
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestEvent_Validate_MissingDate(t *testing.T) {
	event := Event{
		ID:    "event-1",
		Title: "Dinner",
	}

	err := event.Validate()
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestNewBlankDraft(t *testing.T) {
	now := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

	draft := NewBlankDraft(now)

	assert.Equal(t, "", draft.ID)
	assert.Equal(t, "", draft.Title)
	assert.Equal(t, "2025-03-15", draft.Date)
	assert.Equal(t, "12:00", draft.Time)
	assert.Equal(t, "", draft.Location)
	assert.Equal(t, "", draft.Description)
}

func TestDraftFromExtraction(t *testing.T) {
	res := ExtractionResult{
		Title:       "Jazz Night",
		Date:        "2025/04/01",
		Time:        "20:30",
		Location:    "Blue Note",
		Description: "Live quartet",
	}

	draft := DraftFromExtraction(res, "event-42")

	assert.Equal(t, "event-42", draft.ID)
	assert.Equal(t, "Jazz Night", draft.Title)
	assert.Equal(t, "2025-04-01", draft.Date)
	assert.Equal(t, "20:30", draft.Time)
	assert.Equal(t, "Blue Note", draft.Location)
	assert.Equal(t, "Live quartet", draft.Description)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-03-01", NormalizeDate("2025-03-01"))
	assert.Equal(t, "2025-03-01", NormalizeDate("2025-3-1"))
	assert.Equal(t, "2025-03-01", NormalizeDate("2025/03/01"))
	assert.Equal(t, "2025-03-01", NormalizeDate("March 1, 2025"))
	assert.Equal(t, "2025-03-01", NormalizeDate("1 March 2025"))
	assert.Equal(t, "", NormalizeDate("  "))
	// Unknown shapes pass through for the user to fix in the edit view.
	assert.Equal(t, "next friday", NormalizeDate("next friday"))
}

func TestUpsert_AppendsNewEvent(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "A", Date: "2025-01-01"},
	}

	out := Upsert(events, Event{ID: "b", Title: "B", Date: "2025-01-02"})

	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestUpsert_ReplacesExistingAndMovesLast(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "A", Date: "2025-01-01"},
		{ID: "b", Title: "B", Date: "2025-01-02"},
	}

	out := Upsert(events, Event{ID: "a", Title: "A edited", Date: "2025-01-03"})

	assert.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "A edited", out[1].Title)
	assert.Equal(t, "2025-01-03", out[1].Date)
}

func TestUpsert_Idempotent(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "A", Date: "2025-01-01"},
	}
	e := Event{ID: "b", Title: "B", Date: "2025-01-02"}

	once := Upsert(events, e)
	twice := Upsert(once, e)

	assert.Equal(t, once, twice)
}

func TestUpsert_DoesNotMutateInput(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "A", Date: "2025-01-01"},
	}

	_ = Upsert(events, Event{ID: "a", Title: "changed", Date: "2025-01-01"})

	assert.Equal(t, "A", events[0].Title)
}

func TestRemove_MissingIDIsNoOp(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "A", Date: "2025-01-01"},
	}

	out := Remove(events, "missing")

	assert.Equal(t, events, out)
}

func TestUpsertThenRemove_RoundTrip(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "A", Date: "2025-01-01"},
		{ID: "b", Title: "B", Date: "2025-01-02"},
	}

	added := Upsert(events, Event{ID: "c", Title: "C", Date: "2025-01-03"})
	out := Remove(added, "c")

	assert.Equal(t, events, out)
}

func TestSortedView_SingleEvent(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Dinner", Date: "2025-03-01", Time: "19:00"},
	}

	out := SortedView(events)

	assert.Len(t, out, 1)
	assert.Equal(t, "Dinner", out[0].Title)
}

func TestSortedView_MissingTimeSortsAsMidnight(t *testing.T) {
	events := []Event{
		{ID: "a", Date: "2025-01-05", Time: ""},
		{ID: "b", Date: "2025-01-05", Time: "08:00"},
		{ID: "c", Date: "2025-01-04", Time: ""},
	}

	out := SortedView(events)

	// Earlier day first, then the default-midnight entry before the 08:00
	// entry of the same day.
	assert.Equal(t, "c", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "b", out[2].ID)
}

func TestSortedView_StableOnTies(t *testing.T) {
	events := []Event{
		{ID: "first", Date: "2025-01-05", Time: "10:00"},
		{ID: "second", Date: "2025-01-05", Time: "10:00"},
		{ID: "third", Date: "2025-01-05", Time: "10:00"},
	}

	out := SortedView(events)

	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
	assert.Equal(t, "third", out[2].ID)
}

func TestSortedView_IsPermutation(t *testing.T) {
	events := []Event{
		{ID: "a", Date: "2025-06-01", Time: "09:00"},
		{ID: "b", Date: "2025-05-31", Time: ""},
		{ID: "c", Date: "2025-06-01", Time: ""},
		{ID: "d", Date: "2024-12-31", Time: "23:59"},
	}

	out := SortedView(events)

	assert.Len(t, out, len(events))
	seen := map[string]bool{}
	for _, e := range out {
		seen[e.ID] = true
	}
	for _, e := range events {
		assert.True(t, seen[e.ID])
	}
}

func TestSortedView_DoesNotMutateInput(t *testing.T) {
	events := []Event{
		{ID: "b", Date: "2025-01-02"},
		{ID: "a", Date: "2025-01-01"},
	}

	_ = SortedView(events)

	assert.Equal(t, "b", events[0].ID)
	assert.Equal(t, "a", events[1].ID)
}
