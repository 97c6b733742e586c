package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate brings the schema up to date. Idempotent.
	Migrate(ctx context.Context) error

	// Event model related methods.
	CreateEvent(ctx context.Context, create *Event) (*Event, error)
	ListEvents(ctx context.Context, find *FindEvent) ([]*Event, error)
	UpdateEvent(ctx context.Context, update *UpdateEvent) error
	DeleteEvent(ctx context.Context, delete *DeleteEvent) error
	DeleteAllEvents(ctx context.Context) error

	// Chat memory snapshot related methods.
	GetChatMemory(ctx context.Context) (*ChatMemory, error)
	UpsertChatMemory(ctx context.Context, upsert *ChatMemory) error
}
