package store

import (
	"context"
)

// ChatMemory is the persisted conversational memory snapshot. A single
// row holds the JSON payload; the core works with the decoded form and
// never sees storage errors as anything but an empty memory.
type ChatMemory struct {
	Payload   string
	UpdatedTs int64
}

// GetChatMemory returns the stored snapshot, nil when none exists yet.
func (s *Store) GetChatMemory(ctx context.Context) (*ChatMemory, error) {
	return s.driver.GetChatMemory(ctx)
}

// UpsertChatMemory replaces the stored snapshot.
func (s *Store) UpsertChatMemory(ctx context.Context, upsert *ChatMemory) error {
	return s.driver.UpsertChatMemory(ctx, upsert)
}
