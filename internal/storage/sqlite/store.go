// Package sqlite implements the storage interfaces on a goose-migrated SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/paintpro/internal/storage"
)

const timeLayout = "2006-01-02 15:04:05"

// Store is safe for concurrent use; it relies on database/sql pooling.
type Store struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

var (
	_ storage.CatalogSource = (*Store)(nil)
	_ storage.EstimateStore = (*Store)(nil)
	_ storage.DraftStore    = (*Store)(nil)
)

type Option func(*Store)

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides identifier generation.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New wraps an open database. The schema must already be migrated.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

// sqlTime scans DATETIME columns whether the driver hands back text or time.Time.
type sqlTime struct {
	time.Time
}

func (t *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported datetime value %T", src)
}

func (t *sqlTime) parse(raw string) error {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02T15:04:05Z"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("parse datetime %q", raw)
}
