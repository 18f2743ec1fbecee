package seed

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Simplici0/paintpro/internal/catalog"
)

var defaultRoomTypes = []string{
	"Kitchen",
	"Living Room",
	"Dining Room",
	"Bedroom",
	"Master Bedroom",
	"Bathroom",
	"Master Bathroom",
	"Hallway",
	"Office",
	"Den/Family Room",
}

var defaultSizes = []struct {
	label     string
	basePrice float64
}{
	{"Small", 500},
	{"Average", 650},
	{"Large", 750},
	{"XL", 900},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// DefaultCatalog is the price list a fresh database starts with.
func DefaultCatalog() catalog.Catalog {
	var c catalog.Catalog
	for _, name := range defaultRoomTypes {
		rt := catalog.RoomType{ID: slug(name), Name: name}
		c.RoomTypes = append(c.RoomTypes, rt)
		for _, size := range defaultSizes {
			c.RoomSizes = append(c.RoomSizes, catalog.RoomSize{
				ID:         rt.ID + "-" + slug(size.label),
				RoomTypeID: rt.ID,
				Label:      size.label,
				BasePrice:  size.basePrice,
			})
		}
	}

	c.PaintTypes = []catalog.PaintType{
		{ID: "own-paint", Name: catalog.OwnerSuppliedPaint, Description: "Customer supplies the paint", OwnerSupplied: true},
		{ID: "standard", Name: "Standard", Description: "Basic paint quality"},
		{ID: "premium", Name: "Premium", Description: "Better durability and finish", UpchargePercentage: 8, UpchargeAmount: 20},
		{ID: "duration", Name: "Duration", Description: "High-end long-lasting finish", UpchargePercentage: 12, UpchargeAmount: 25},
		{ID: "emerald", Name: "Emerald", Description: "Best quality and appearance", UpchargePercentage: 18, UpchargeAmount: 35},
	}
	c.Fireplaces = []catalog.FireplaceOption{
		{Name: catalog.FireplaceNone, FixedCost: 0},
		{Name: "Brush Mantel", FixedCost: 100},
		{Name: "Spray Mantel", FixedCost: 225},
	}
	c.Repairs = []catalog.RepairOption{
		{Name: catalog.RepairsNone, FixedCost: 0},
		{Name: "Minor Repairs", FixedCost: 250},
		{Name: "Major Repairs", FixedCost: 750},
	}
	c.AddOns = []catalog.RoomAddOn{
		{Key: "paintCeiling", Name: "Paint Ceiling", CostPercentage: 40},
	}
	c.VolumeDiscounts = []catalog.VolumeDiscountTier{
		{Threshold: 2000, DiscountPercentage: 5},
		{Threshold: 3000, DiscountPercentage: 8},
		{Threshold: 5000, DiscountPercentage: 10},
		{Threshold: 10000, DiscountPercentage: 15},
	}
	return c
}

// Run writes the default catalog in an idempotent way. Rows that already
// exist are left untouched so hand-edited prices survive restarts.
func Run(db *sql.DB) (Stats, error) {
	return RunCatalog(db, DefaultCatalog())
}

// RunCatalog seeds c instead of the default catalog.
func RunCatalog(db *sql.DB, c catalog.Catalog) (Stats, error) {
	if err := c.Validate(); err != nil {
		return Stats{}, fmt.Errorf("validate seed catalog: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	steps := []func(*sql.Tx, catalog.Catalog, *Stats) error{
		ensureRoomTypes,
		ensureRoomSizes,
		ensurePaintTypes,
		ensureFireplaces,
		ensureRepairs,
		ensureAddOns,
		ensureVolumeDiscounts,
	}
	for _, step := range steps {
		if err := step(tx, c, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// insertIfMissing runs an INSERT ... ON CONFLICT DO NOTHING and counts the row when written.
func insertIfMissing(tx *sql.Tx, stats *Stats, what, query string, args ...any) error {
	res, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	stats.Inserts += int(n)
	return nil
}

func ensureRoomTypes(tx *sql.Tx, c catalog.Catalog, stats *Stats) error {
	for i, rt := range c.RoomTypes {
		if err := insertIfMissing(tx, stats, "room type "+rt.Name, `
			INSERT INTO room_types (id, name, sort_order)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, rt.ID, rt.Name, i); err != nil {
			return err
		}
	}
	return nil
}

func ensureRoomSizes(tx *sql.Tx, c catalog.Catalog, stats *Stats) error {
	for i, s := range c.RoomSizes {
		if err := insertIfMissing(tx, stats, "room size "+s.ID, `
			INSERT INTO room_sizes (id, room_type_id, label, base_price, sort_order)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, s.ID, s.RoomTypeID, s.Label, s.BasePrice, i); err != nil {
			return err
		}
	}
	return nil
}

func ensurePaintTypes(tx *sql.Tx, c catalog.Catalog, stats *Stats) error {
	for i, p := range c.PaintTypes {
		if err := insertIfMissing(tx, stats, "paint type "+p.Name, `
			INSERT INTO paint_types (id, name, description, upcharge_percentage, upcharge_amount, owner_supplied, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`, p.ID, p.Name, p.Description, p.UpchargePercentage, p.UpchargeAmount, p.OwnerSupplied, i); err != nil {
			return err
		}
	}
	return nil
}

func ensureFireplaces(tx *sql.Tx, c catalog.Catalog, stats *Stats) error {
	for i, f := range c.Fireplaces {
		if err := insertIfMissing(tx, stats, "fireplace option "+f.Name, `
			INSERT INTO fireplace_options (name, fixed_cost, sort_order)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO NOTHING
		`, f.Name, f.FixedCost, i); err != nil {
			return err
		}
	}
	return nil
}

func ensureRepairs(tx *sql.Tx, c catalog.Catalog, stats *Stats) error {
	for i, r := range c.Repairs {
		if err := insertIfMissing(tx, stats, "repair option "+r.Name, `
			INSERT INTO repair_options (name, fixed_cost, sort_order)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO NOTHING
		`, r.Name, r.FixedCost, i); err != nil {
			return err
		}
	}
	return nil
}

func ensureAddOns(tx *sql.Tx, c catalog.Catalog, stats *Stats) error {
	for i, a := range c.AddOns {
		if err := insertIfMissing(tx, stats, "room add-on "+a.Key, `
			INSERT INTO room_addons (key, name, cost, cost_percentage, sort_order)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(key) DO NOTHING
		`, a.Key, a.Name, a.Cost, a.CostPercentage, i); err != nil {
			return err
		}
	}
	return nil
}

func ensureVolumeDiscounts(tx *sql.Tx, c catalog.Catalog, stats *Stats) error {
	for _, v := range c.VolumeDiscounts {
		if err := insertIfMissing(tx, stats, fmt.Sprintf("volume discount %.2f", v.Threshold), `
			INSERT INTO volume_discounts (threshold, discount_percentage)
			VALUES (?, ?)
			ON CONFLICT(threshold) DO NOTHING
		`, v.Threshold, v.DiscountPercentage); err != nil {
			return err
		}
	}
	return nil
}

func slug(name string) string {
	r := strings.NewReplacer(" ", "-", "/", "-")
	return strings.ToLower(r.Replace(name))
}
