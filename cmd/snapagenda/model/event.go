package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// DefaultDraftTime is the clock time a blank draft starts with.
const DefaultDraftTime = "12:00"

var (
	ErrMissingTitle = errors.New("event title is required")
	ErrMissingDate  = errors.New("event date is required")
)

// Event is a single agenda entry. Date carries the normalized YYYY-MM-DD
// form, Time is an optional 24-hour HH:mm value where "" means unspecified.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// ExtractionResult is the structured guess the extraction service returns
// for an uploaded image. It is consumed once to seed a draft, then dropped.
type ExtractionResult struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Validate is the save-time gate: a committed event needs a title and a date.
// Drafts are allowed to be partial.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrMissingDate
	}
	return nil
}

// NewBlankDraft returns the blank edit template: all fields empty, date
// defaulted to today, time defaulted to noon. The caller assigns the id.
func NewBlankDraft(now time.Time) Event {
	return Event{
		Date: now.Format("2006-01-02"),
		Time: DefaultDraftTime,
	}
}

// DraftFromExtraction attaches a fresh id to an extraction result so it can
// be edited and committed like any other event.
func DraftFromExtraction(res ExtractionResult, id string) Event {
	return Event{
		ID:          id,
		Title:       res.Title,
		Date:        NormalizeDate(res.Date),
		Time:        res.Time,
		Location:    res.Location,
		Description: res.Description,
	}
}

// dateLayouts are the shapes the extraction service has been seen returning
// besides the requested YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
}

// NormalizeDate converts a recognizable date string to YYYY-MM-DD. Unknown
// shapes pass through unchanged so the user can still fix them in the edit
// view.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// Upsert returns a new collection with any existing element sharing e's id
// removed and e appended last. The input is never mutated.
func Upsert(events []Event, e Event) []Event {
	out := make([]Event, 0, len(events)+1)
	for _, existing := range events {
		if existing.ID != e.ID {
			out = append(out, existing)
		}
	}
	return append(out, e)
}

// Remove returns a new collection without the element of matching id. A
// missing id is a silent no-op.
func Remove(events []Event, id string) []Event {
	out := make([]Event, 0, len(events))
	for _, existing := range events {
		if existing.ID != id {
			out = append(out, existing)
		}
	}
	return out
}

// SortedView orders events chronologically by date and time, with a missing
// time treated as midnight so it sorts first among same-day entries. The
// sort is stable and non-destructive.
func SortedView(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i]) < sortKey(out[j])
	})
	return out
}

// sortKey builds the comparable "date T time" form. For the normalized
// YYYY-MM-DD / HH:mm field shapes, string order equals chronological order.
func sortKey(e Event) string {
	t := e.Time
	if t == "" {
		t = "00:00"
	}
	return e.Date + "T" + t
}
