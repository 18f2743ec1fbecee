package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/paintpro/internal/db"
	"github.com/Simplici0/paintpro/internal/migrations"
	"github.com/Simplici0/paintpro/internal/storage/sqlite"
	"github.com/Simplici0/paintpro/pkg/logging"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, logging.Discard()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	c := DefaultCatalog()
	wantInserts := len(c.RoomTypes) + len(c.RoomSizes) + len(c.PaintTypes) + len(c.Fireplaces) +
		len(c.Repairs) + len(c.AddOns) + len(c.VolumeDiscounts)

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != wantInserts {
				t.Fatalf("expected %d inserts in first run, got %d", wantInserts, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM room_types`, nil, 10)
	assertCount(t, database, `SELECT COUNT(*) FROM room_sizes WHERE room_type_id = ?`, "kitchen", 4)
	assertCount(t, database, `SELECT COUNT(*) FROM paint_types WHERE owner_supplied`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM volume_discounts`, nil, 4)
	assertCount(t, database, `SELECT COUNT(*) FROM room_sizes WHERE id = ? AND base_price = ?`, []any{"kitchen-average", 650}, 1)
}

func TestRunKeepsEditedPrices(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "seed-edit.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database, logging.Discard()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if _, err := database.Exec(`UPDATE paint_types SET upcharge_amount = 99 WHERE id = 'premium'`); err != nil {
		t.Fatalf("edit paint price: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM paint_types WHERE id = 'premium' AND upcharge_amount = 99`, nil, 1)
}

func TestSeededCatalogLoadsAndValidates(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "seed-load.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database, logging.Discard()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("seed: %v", err)
	}

	loaded, err := sqlite.New(database).LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if err := loaded.Validate(); err != nil {
		t.Fatalf("seeded catalog invalid: %v", err)
	}
	if loaded.RoomTypes[0].Name != "Kitchen" {
		t.Fatalf("first room type = %q, want Kitchen", loaded.RoomTypes[0].Name)
	}
	sizes := loaded.SizesFor("kitchen")
	if len(sizes) != 4 || sizes[1].Label != "Average" || sizes[1].BasePrice != 650 {
		t.Fatalf("unexpected kitchen sizes: %+v", sizes)
	}
	if p, ok := loaded.DefaultPaintType(); !ok || !p.OwnerSupplied {
		t.Fatalf("expected owner-supplied default paint, got %+v", p)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
