package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/storage"
	"github.com/Simplici0/paintpro/internal/wizard"
)

func (s *Store) CreateDraft(ctx context.Context) (storage.Draft, error) {
	d := storage.Draft{
		ID:    s.newID(),
		Step:  wizard.StepContact,
		Rooms: make([]models.Room, 0),
	}
	if err := s.SaveDraft(ctx, d); err != nil {
		return storage.Draft{}, err
	}
	return s.GetDraft(ctx, d.ID)
}

func (s *Store) GetDraft(ctx context.Context, id string) (storage.Draft, error) {
	var (
		d           storage.Draft
		step        int
		contactJSON string
		roomsJSON   string
		updatedAt   sqlTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, step, contact_json, rooms_json, updated_at
		FROM drafts
		WHERE id = ?
	`, id).Scan(&d.ID, &step, &contactJSON, &roomsJSON, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Draft{}, fmt.Errorf("draft %s: %w", id, storage.ErrNotFound)
		}
		return storage.Draft{}, fmt.Errorf("query draft: %w", err)
	}

	d.Step = wizard.Step(step)
	d.UpdatedAt = updatedAt.Time
	if err := json.Unmarshal([]byte(contactJSON), &d.Contact); err != nil {
		return storage.Draft{}, fmt.Errorf("decode draft contact: %w", err)
	}
	d.Rooms = make([]models.Room, 0)
	if err := json.Unmarshal([]byte(roomsJSON), &d.Rooms); err != nil {
		return storage.Draft{}, fmt.Errorf("decode draft rooms: %w", err)
	}
	return d, nil
}

// SaveDraft inserts or replaces the draft.
func (s *Store) SaveDraft(ctx context.Context, d storage.Draft) error {
	if d.ID == "" {
		return fmt.Errorf("save draft: empty id")
	}
	if d.Rooms == nil {
		d.Rooms = make([]models.Room, 0)
	}
	contactJSON, err := json.Marshal(d.Contact)
	if err != nil {
		return fmt.Errorf("encode draft contact: %w", err)
	}
	roomsJSON, err := json.Marshal(d.Rooms)
	if err != nil {
		return fmt.Errorf("encode draft rooms: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (id, step, contact_json, rooms_json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			step = excluded.step,
			contact_json = excluded.contact_json,
			rooms_json = excluded.rooms_json,
			updated_at = excluded.updated_at
	`, d.ID, int(d.Step), string(contactJSON), string(roomsJSON), s.timestamp())
	if err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("draft %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
