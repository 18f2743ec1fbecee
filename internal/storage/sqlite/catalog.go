package sqlite

import (
	"context"
	"fmt"

	"github.com/Simplici0/paintpro/internal/catalog"
)

// LoadCatalog reads the full price catalog in display order.
func (s *Store) LoadCatalog(ctx context.Context) (catalog.Catalog, error) {
	var c catalog.Catalog
	var err error

	if c.RoomTypes, err = s.listRoomTypes(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	if c.RoomSizes, err = s.listRoomSizes(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	if c.PaintTypes, err = s.listPaintTypes(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	if c.Fireplaces, err = s.listFireplaces(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	if c.Repairs, err = s.listRepairs(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	if c.AddOns, err = s.listAddOns(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	if c.VolumeDiscounts, err = s.listVolumeDiscounts(ctx); err != nil {
		return catalog.Catalog{}, err
	}

	return c, nil
}

func (s *Store) listRoomTypes(ctx context.Context) ([]catalog.RoomType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM room_types ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("query room types: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.RoomType, 0)
	for rows.Next() {
		var rt catalog.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name); err != nil {
			return nil, fmt.Errorf("scan room type: %w", err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room types: %w", err)
	}
	return out, nil
}

func (s *Store) listRoomSizes(ctx context.Context) ([]catalog.RoomSize, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.room_type_id, s.label, s.base_price
		FROM room_sizes s
		JOIN room_types t ON t.id = s.room_type_id
		ORDER BY t.sort_order, s.sort_order, s.base_price
	`)
	if err != nil {
		return nil, fmt.Errorf("query room sizes: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.RoomSize, 0)
	for rows.Next() {
		var rs catalog.RoomSize
		if err := rows.Scan(&rs.ID, &rs.RoomTypeID, &rs.Label, &rs.BasePrice); err != nil {
			return nil, fmt.Errorf("scan room size: %w", err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room sizes: %w", err)
	}
	return out, nil
}

func (s *Store) listPaintTypes(ctx context.Context) ([]catalog.PaintType, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, upcharge_percentage, upcharge_amount, owner_supplied
		FROM paint_types
		ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("query paint types: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.PaintType, 0)
	for rows.Next() {
		var p catalog.PaintType
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.UpchargePercentage, &p.UpchargeAmount, &p.OwnerSupplied); err != nil {
			return nil, fmt.Errorf("scan paint type: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paint types: %w", err)
	}
	return out, nil
}

func (s *Store) listFireplaces(ctx context.Context) ([]catalog.FireplaceOption, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, fixed_cost FROM fireplace_options ORDER BY sort_order, fixed_cost`)
	if err != nil {
		return nil, fmt.Errorf("query fireplace options: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.FireplaceOption, 0)
	for rows.Next() {
		var f catalog.FireplaceOption
		if err := rows.Scan(&f.Name, &f.FixedCost); err != nil {
			return nil, fmt.Errorf("scan fireplace option: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fireplace options: %w", err)
	}
	return out, nil
}

func (s *Store) listRepairs(ctx context.Context) ([]catalog.RepairOption, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, fixed_cost FROM repair_options ORDER BY sort_order, fixed_cost`)
	if err != nil {
		return nil, fmt.Errorf("query repair options: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.RepairOption, 0)
	for rows.Next() {
		var r catalog.RepairOption
		if err := rows.Scan(&r.Name, &r.FixedCost); err != nil {
			return nil, fmt.Errorf("scan repair option: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repair options: %w", err)
	}
	return out, nil
}

func (s *Store) listAddOns(ctx context.Context) ([]catalog.RoomAddOn, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, name, cost, cost_percentage FROM room_addons ORDER BY sort_order, key`)
	if err != nil {
		return nil, fmt.Errorf("query room add-ons: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.RoomAddOn, 0)
	for rows.Next() {
		var a catalog.RoomAddOn
		if err := rows.Scan(&a.Key, &a.Name, &a.Cost, &a.CostPercentage); err != nil {
			return nil, fmt.Errorf("scan room add-on: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room add-ons: %w", err)
	}
	return out, nil
}

func (s *Store) listVolumeDiscounts(ctx context.Context) ([]catalog.VolumeDiscountTier, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT threshold, discount_percentage FROM volume_discounts ORDER BY threshold`)
	if err != nil {
		return nil, fmt.Errorf("query volume discounts: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.VolumeDiscountTier, 0)
	for rows.Next() {
		var v catalog.VolumeDiscountTier
		if err := rows.Scan(&v.Threshold, &v.DiscountPercentage); err != nil {
			return nil, fmt.Errorf("scan volume discount: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate volume discounts: %w", err)
	}
	return out, nil
}
