package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/parkjy76/haruplan/plugin/chatmem"
	"github.com/parkjy76/haruplan/plugin/nlparse"
	"github.com/parkjy76/haruplan/plugin/planner"
	"github.com/parkjy76/haruplan/store"
)

// Service handles one sentence end to end: memory merge, days-left
// short circuit, classification, event generation, deduplicating
// insert, and memory learn/save. The core stays pure; all side effects
// go through the store.
type Service struct {
	store  *store.Store
	logger *slog.Logger
	loc    *time.Location

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates the assistant service. A nil location falls back
// to time.Local.
func NewService(s *store.Store, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

// Result is the outcome of one turn.
type Result struct {
	Intent Intent
	// Reply is set for days-left answers; event-producing intents leave
	// it empty and fill Events instead.
	Reply string
	// Events are the stored events, in generation order.
	Events []*store.Event
	// Merged is the sentence after memory augmentation, equal to the
	// input when nothing was filled in.
	Merged string
}

// Ask processes one sentence. An unintelligible sentence yields
// IntentUnknown with no events and no error: "could not understand" is
// an answer, not a failure.
func (s *Service) Ask(ctx context.Context, text string) (*Result, error) {
	now := s.now().In(s.loc)
	memory := s.loadMemory(ctx)

	merged := memory.Merge(text)
	if merged != text {
		s.logger.Debug("memory merge applied", "merged", merged)
	}

	if reply, ok := DaysLeftReply(merged, now); ok {
		memory.Learn(merged, now)
		s.saveMemory(ctx, memory)
		return &Result{Intent: IntentDaysLeft, Reply: reply, Merged: merged}, nil
	}

	events := s.generate(merged, now)
	if len(events) == 0 {
		return &Result{Intent: IntentUnknown, Merged: merged}, nil
	}

	stored, err := s.store.UpsertEvents(ctx, toStoreEvents(events))
	if err != nil {
		return nil, err
	}

	memory.Learn(merged, now)
	s.saveMemory(ctx, memory)

	intent := Classify(merged)
	s.logger.Info("sentence handled",
		"intent", intent.String(),
		"events", len(stored),
	)
	return &Result{Intent: intent, Events: stored, Merged: merged}, nil
}

// generate routes a classified sentence to its generator, mirroring the
// dispatcher priority. A schedule sentence walks the explicit-date,
// day+hour, and date-only paths in order until one produces events.
func (s *Service) generate(text string, now time.Time) []nlparse.Event {
	switch Classify(text) {
	case IntentExamPlan:
		return planner.ExamCountdown(text, now)
	case IntentStudyPlan:
		return planner.StudyPlanFromText(text, now)
	case IntentSchedule:
		if nlparse.HasExplicitDate(text) {
			if events := nlparse.ExtractWithExplicitDate(text, now); len(events) > 0 {
				return events
			}
		}
		if nlparse.HasDayHint(text) && nlparse.HasHourHint(text) {
			if events := nlparse.ExtractEvents(text, now); len(events) > 0 {
				return events
			}
		}
		if nlparse.HasDayHint(text) {
			if event, ok := nlparse.ExtractDateOnly(text, now); ok {
				return []nlparse.Event{event}
			}
		}
		return nil
	default:
		return nil
	}
}

// Memory returns the current conversational memory.
func (s *Service) Memory(ctx context.Context) chatmem.Memory {
	return s.loadMemory(ctx)
}

// SaveMemory persists the given memory snapshot.
func (s *Service) SaveMemory(ctx context.Context, memory chatmem.Memory) error {
	payload, err := memory.Encode()
	if err != nil {
		return err
	}
	return s.store.UpsertChatMemory(ctx, &store.ChatMemory{Payload: string(payload)})
}

// ResetMemory replaces the memory with the empty default and bulk-clears
// all stored events, the one destructive operation in the chat surface.
func (s *Service) ResetMemory(ctx context.Context) error {
	if err := s.SaveMemory(ctx, chatmem.Memory{}); err != nil {
		return err
	}
	return s.store.DeleteAllEvents(ctx)
}

// RemoveEvent deletes one stored event by id.
func (s *Service) RemoveEvent(ctx context.Context, id int32) error {
	return s.store.DeleteEvent(ctx, &store.DeleteEvent{ID: id})
}

// ListEvents returns stored events ordered by time.
func (s *Service) ListEvents(ctx context.Context, limit int) ([]*store.Event, error) {
	find := &store.FindEvent{}
	if limit > 0 {
		find.Limit = &limit
	}
	return s.store.ListEvents(ctx, find)
}

// loadMemory decodes the persisted snapshot. Any load failure yields an
// empty memory, never an error.
func (s *Service) loadMemory(ctx context.Context) chatmem.Memory {
	row, err := s.store.GetChatMemory(ctx)
	if err != nil {
		s.logger.Warn("failed to load chat memory, starting empty", "error", err)
		return chatmem.Memory{}
	}
	if row == nil {
		return chatmem.Memory{}
	}
	return chatmem.Decode([]byte(row.Payload))
}

func (s *Service) saveMemory(ctx context.Context, memory chatmem.Memory) {
	if err := s.SaveMemory(ctx, memory); err != nil {
		s.logger.Warn("failed to save chat memory", "error", err)
	}
}

func toStoreEvents(events []nlparse.Event) []store.Event {
	out := make([]store.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, store.Event{Title: ev.Title, EventTs: ev.When.Unix()})
	}
	return out
}
