package store

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Event is the object representing a stored calendar event. EventTs is
// a unix timestamp with minute precision; Notified flips once the
// notifier has delivered an alert for it.
type Event struct {
	ID        int32
	UID       string
	Title     string
	EventTs   int64
	Notified  bool
	CreatedTs int64
	UpdatedTs int64
}

// FindEvent is the find condition for event.
type FindEvent struct {
	ID  *int32
	UID *string

	// Time range filters (inclusive start, exclusive end).
	StartTs *int64
	EndTs   *int64

	Notified *bool

	Limit *int
}

// UpdateEvent is the update request for event.
type UpdateEvent struct {
	ID       int32
	Title    *string
	EventTs  *int64
	Notified *bool
}

// DeleteEvent is the delete request for event.
type DeleteEvent struct {
	ID int32
}

// CreateEvent creates a new event with a generated UID.
func (s *Store) CreateEvent(ctx context.Context, create *Event) (*Event, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateEvent(ctx, create)
}

// ListEvents lists events with filter, ordered by event time.
func (s *Store) ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error) {
	return s.driver.ListEvents(ctx, find)
}

// GetEvent gets a single event, nil when not found.
func (s *Store) GetEvent(ctx context.Context, find *FindEvent) (*Event, error) {
	list, err := s.driver.ListEvents(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateEvent updates an event.
func (s *Store) UpdateEvent(ctx context.Context, update *UpdateEvent) error {
	return s.driver.UpdateEvent(ctx, update)
}

// DeleteEvent deletes an event.
func (s *Store) DeleteEvent(ctx context.Context, delete *DeleteEvent) error {
	return s.driver.DeleteEvent(ctx, delete)
}

// DeleteAllEvents clears the event table, used by the memory reset flow.
func (s *Store) DeleteAllEvents(ctx context.Context) error {
	return s.driver.DeleteAllEvents(ctx)
}

// titleKeyPattern strips whitespace and common punctuation so that two
// spellings of the same schedule compare equal.
var titleKeyPattern = regexp.MustCompile(`[\s\-_.,!?'"()\[\]{}]+`)

// TitleKey normalizes a title for same-day duplicate matching: lowered,
// with whitespace and punctuation removed.
func TitleKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	return titleKeyPattern.ReplaceAllString(key, "")
}

// UpsertEvents inserts parsed events while enforcing the per-day dedup
// contract: within one calendar day, an event with an equal normalized
// title updates the first existing row (new title and time, notified
// reset) and deletes any further duplicates; otherwise a new row is
// inserted. Re-submitting identical schedule text is therefore
// idempotent up to the notified flag.
func (s *Store) UpsertEvents(ctx context.Context, events []Event) ([]*Event, error) {
	if len(events) == 0 {
		return nil, nil
	}

	stored := make([]*Event, 0, len(events))
	for i := range events {
		ev := events[i]

		dayStart := dayStartTs(ev.EventTs, s.timeLocation())
		dayEnd := dayStart + int64(24*time.Hour/time.Second)
		rows, err := s.driver.ListEvents(ctx, &FindEvent{StartTs: &dayStart, EndTs: &dayEnd})
		if err != nil {
			return nil, err
		}

		key := TitleKey(ev.Title)
		var matches []*Event
		for _, row := range rows {
			if TitleKey(row.Title) == key {
				matches = append(matches, row)
			}
		}

		if len(matches) == 0 {
			created, err := s.CreateEvent(ctx, &ev)
			if err != nil {
				return nil, err
			}
			stored = append(stored, created)
			continue
		}

		primary := matches[0]
		notified := false
		if err := s.driver.UpdateEvent(ctx, &UpdateEvent{
			ID:       primary.ID,
			Title:    &ev.Title,
			EventTs:  &ev.EventTs,
			Notified: &notified,
		}); err != nil {
			return nil, err
		}
		for _, duplicate := range matches[1:] {
			if err := s.driver.DeleteEvent(ctx, &DeleteEvent{ID: duplicate.ID}); err != nil {
				return nil, err
			}
		}
		primary.Title = ev.Title
		primary.EventTs = ev.EventTs
		primary.Notified = false
		stored = append(stored, primary)
	}
	return stored, nil
}

func (s *Store) timeLocation() *time.Location {
	if s.profile != nil && s.profile.Location != nil {
		return s.profile.Location
	}
	return time.Local
}

func dayStartTs(ts int64, loc *time.Location) int64 {
	t := time.Unix(ts, 0).In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).Unix()
}
