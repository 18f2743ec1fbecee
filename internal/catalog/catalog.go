// Package catalog holds the read-only price list the estimator prices rooms against.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// Well-known option names. A room starts with these selections.
const (
	FireplaceNone         = "None"
	RepairsNone           = "No Repairs"
	OwnerSuppliedPaint    = "Own Paint/ No Paint"
	ownerSuppliedPaintID  = "own-paint"
	defaultOwnerPaintDesc = "Customer supplies the paint"
)

var (
	ErrIncomplete     = errors.New("catalog is missing room types, sizes or paint types")
	ErrOrphanRoomSize = errors.New("room size references unknown room type")
)

type RoomType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomSize is scoped to a single room type.
type RoomSize struct {
	ID         string  `json:"id"`
	RoomTypeID string  `json:"roomTypeId"`
	Label      string  `json:"label"`
	BasePrice  float64 `json:"basePrice"`
}

// PaintType carries a relative and an absolute upcharge; both may apply at once.
type PaintType struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description,omitempty"`
	UpchargePercentage float64 `json:"upchargePercentage"`
	UpchargeAmount     float64 `json:"upchargeAmount"`
	OwnerSupplied      bool    `json:"ownerSupplied"`
}

type FireplaceOption struct {
	Name      string  `json:"name"`
	FixedCost float64 `json:"fixedCost"`
}

type RepairOption struct {
	Name      string  `json:"name"`
	FixedCost float64 `json:"fixedCost"`
}

// RoomAddOn is a catalog-defined toggle upcharge. It is percentage based
// (against the room's base price) when CostPercentage > 0, flat otherwise.
type RoomAddOn struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Cost           float64 `json:"cost"`
	CostPercentage float64 `json:"costPercentage"`
}

func (a RoomAddOn) PercentageBased() bool {
	return a.CostPercentage > 0
}

type VolumeDiscountTier struct {
	Threshold          float64 `json:"threshold"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

// Catalog is an immutable snapshot. Methods never mutate the receiver.
type Catalog struct {
	RoomTypes       []RoomType           `json:"roomTypes"`
	RoomSizes       []RoomSize           `json:"roomSizes"`
	PaintTypes      []PaintType          `json:"paintTypes"`
	Fireplaces      []FireplaceOption    `json:"fireplaces"`
	Repairs         []RepairOption       `json:"repairs"`
	AddOns          []RoomAddOn          `json:"addOns"`
	VolumeDiscounts []VolumeDiscountTier `json:"volumeDiscounts"`
}

func (c Catalog) RoomType(id string) (RoomType, bool) {
	for _, rt := range c.RoomTypes {
		if rt.ID == id {
			return rt, true
		}
	}
	return RoomType{}, false
}

func (c Catalog) Size(id string) (RoomSize, bool) {
	for _, s := range c.RoomSizes {
		if s.ID == id {
			return s, true
		}
	}
	return RoomSize{}, false
}

// SizesFor returns the sizes scoped to roomTypeID in catalog order.
func (c Catalog) SizesFor(roomTypeID string) []RoomSize {
	sizes := make([]RoomSize, 0)
	for _, s := range c.RoomSizes {
		if s.RoomTypeID == roomTypeID {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

func (c Catalog) PaintType(id string) (PaintType, bool) {
	for _, p := range c.PaintTypes {
		if p.ID == id {
			return p, true
		}
	}
	return PaintType{}, false
}

// DefaultPaintType prefers the owner-supplied option and falls back to the first paint type.
func (c Catalog) DefaultPaintType() (PaintType, bool) {
	for _, p := range c.PaintTypes {
		if p.OwnerSupplied || p.Name == OwnerSuppliedPaint {
			return p, true
		}
	}
	if len(c.PaintTypes) == 0 {
		return PaintType{}, false
	}
	return c.PaintTypes[0], true
}

func (c Catalog) Fireplace(name string) (FireplaceOption, bool) {
	for _, f := range c.Fireplaces {
		if f.Name == name {
			return f, true
		}
	}
	return FireplaceOption{}, false
}

func (c Catalog) Repair(name string) (RepairOption, bool) {
	for _, r := range c.Repairs {
		if r.Name == name {
			return r, true
		}
	}
	return RepairOption{}, false
}

func (c Catalog) AddOn(key string) (RoomAddOn, bool) {
	for _, a := range c.AddOns {
		if a.Key == key {
			return a, true
		}
	}
	return RoomAddOn{}, false
}

// Complete reports whether a default room can be built from the catalog.
func (c Catalog) Complete() bool {
	return len(c.RoomTypes) > 0 && len(c.RoomSizes) > 0 && len(c.PaintTypes) > 0
}

// Validate checks referential integrity and returns every problem found.
func (c Catalog) Validate() error {
	var errs []error
	if !c.Complete() {
		errs = append(errs, ErrIncomplete)
	}
	types := make(map[string]struct{}, len(c.RoomTypes))
	for _, rt := range c.RoomTypes {
		types[rt.ID] = struct{}{}
	}
	for _, s := range c.RoomSizes {
		if _, ok := types[s.RoomTypeID]; !ok {
			errs = append(errs, fmt.Errorf("%w: size %q -> %q", ErrOrphanRoomSize, s.ID, s.RoomTypeID))
		}
	}
	return errors.Join(errs...)
}

// WithOwnerSuppliedPaint returns a copy whose paint list starts with an
// owner-supplied option when the catalog does not already carry one.
func (c Catalog) WithOwnerSuppliedPaint() Catalog {
	for _, p := range c.PaintTypes {
		if p.OwnerSupplied || p.Name == OwnerSuppliedPaint {
			return c
		}
	}
	paints := make([]PaintType, 0, len(c.PaintTypes)+1)
	paints = append(paints, PaintType{
		ID:            ownerSuppliedPaintID,
		Name:          OwnerSuppliedPaint,
		Description:   defaultOwnerPaintDesc,
		OwnerSupplied: true,
	})
	paints = append(paints, c.PaintTypes...)
	c.PaintTypes = paints
	return c
}

// TiersDescending returns a copy of the volume discount tiers ordered from the
// highest threshold to the lowest.
func TiersDescending(tiers []VolumeDiscountTier) []VolumeDiscountTier {
	sorted := make([]VolumeDiscountTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})
	return sorted
}
