package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/parkjy76/haruplan/store"
)

func (d *DB) GetChatMemory(ctx context.Context) (*store.ChatMemory, error) {
	var memory store.ChatMemory
	err := d.db.QueryRowContext(ctx,
		`SELECT payload, updated_ts FROM chat_memory WHERE id = 1`,
	).Scan(&memory.Payload, &memory.UpdatedTs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat memory: %w", err)
	}
	return &memory, nil
}

func (d *DB) UpsertChatMemory(ctx context.Context, upsert *store.ChatMemory) error {
	stmt := `
		INSERT INTO chat_memory (id, payload, updated_ts)
		VALUES (1, ?, strftime('%s', 'now'))
		ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_ts = strftime('%s', 'now')`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.Payload); err != nil {
		return fmt.Errorf("failed to upsert chat memory: %w", err)
	}
	return nil
}
