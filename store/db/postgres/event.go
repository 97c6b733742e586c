package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/parkjy76/haruplan/store"
)

func (d *DB) CreateEvent(ctx context.Context, create *store.Event) (*store.Event, error) {
	stmt := `
		INSERT INTO event (uid, title, event_ts, notified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_ts, updated_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.Title, create.EventTs, create.Notified,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return create, nil
}

func (d *DB) ListEvents(ctx context.Context, find *store.FindEvent) ([]*store.Event, error) {
	where, args := []string{"TRUE"}, []any{}

	if v := find.ID; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("event.id = $%d", len(args)))
	}
	if v := find.UID; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("event.uid = $%d", len(args)))
	}
	if v := find.StartTs; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("event.event_ts >= $%d", len(args)))
	}
	if v := find.EndTs; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("event.event_ts < $%d", len(args)))
	}
	if v := find.Notified; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("event.notified = $%d", len(args)))
	}

	query := `
		SELECT id, uid, title, event_ts, notified, created_ts, updated_ts
		FROM event
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY event.event_ts ASC, event.id ASC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Event, 0)
	for rows.Next() {
		var event store.Event
		if err := rows.Scan(
			&event.ID,
			&event.UID,
			&event.Title,
			&event.EventTs,
			&event.Notified,
			&event.CreatedTs,
			&event.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		list = append(list, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return list, nil
}

func (d *DB) UpdateEvent(ctx context.Context, update *store.UpdateEvent) error {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if v := update.EventTs; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("event_ts = $%d", len(args)))
	}
	if v := update.Notified; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("notified = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())::BIGINT")
	args = append(args, update.ID)

	stmt := `UPDATE event SET ` + strings.Join(set, ", ") + fmt.Sprintf(` WHERE id = $%d`, len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (d *DB) DeleteEvent(ctx context.Context, delete *store.DeleteEvent) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM event WHERE id = $1`, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

func (d *DB) DeleteAllEvents(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM event`); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	return nil
}
