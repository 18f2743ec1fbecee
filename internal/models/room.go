// Package models holds the estimator's transactional value types.
package models

import (
	"fmt"

	"github.com/Simplici0/paintpro/internal/catalog"
)

// Toggle names one of the built-in boolean room options.
type Toggle string

const (
	ToggleEmptyRoom       Toggle = "emptyRoom"
	ToggleNoFloorCovering Toggle = "noFloorCovering"
	ToggleTwoColors       Toggle = "twoColors"
	ToggleMillworkPriming Toggle = "millworkPriming"
	ToggleHighCeiling     Toggle = "highCeiling"
	TogglePaintCeiling    Toggle = "paintCeiling"
	ToggleStairRailing    Toggle = "stairRailing"
)

// AllToggles lists every built-in toggle in display order.
var AllToggles = []Toggle{
	ToggleEmptyRoom,
	ToggleNoFloorCovering,
	ToggleTwoColors,
	ToggleMillworkPriming,
	ToggleHighCeiling,
	TogglePaintCeiling,
	ToggleStairRailing,
}

// Priced reports whether the pricing engine has a built-in rule for t.
// Unpriced toggles are billed through the catalog add-on sharing their name.
func (t Toggle) Priced() bool {
	return t != TogglePaintCeiling
}

func ParseToggle(raw string) (Toggle, error) {
	for _, t := range AllToggles {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown toggle %q", raw)
}

type Toggles struct {
	EmptyRoom       bool `json:"emptyRoom"`
	NoFloorCovering bool `json:"noFloorCovering"`
	TwoColors       bool `json:"twoColors"`
	MillworkPriming bool `json:"millworkPriming"`
	HighCeiling     bool `json:"highCeiling"`
	PaintCeiling    bool `json:"paintCeiling"`
	StairRailing    bool `json:"stairRailing"`
}

func (t Toggles) Get(name Toggle) bool {
	switch name {
	case ToggleEmptyRoom:
		return t.EmptyRoom
	case ToggleNoFloorCovering:
		return t.NoFloorCovering
	case ToggleTwoColors:
		return t.TwoColors
	case ToggleMillworkPriming:
		return t.MillworkPriming
	case ToggleHighCeiling:
		return t.HighCeiling
	case TogglePaintCeiling:
		return t.PaintCeiling
	case ToggleStairRailing:
		return t.StairRailing
	}
	return false
}

// With returns a copy of t with name set to on.
func (t Toggles) With(name Toggle, on bool) Toggles {
	switch name {
	case ToggleEmptyRoom:
		t.EmptyRoom = on
	case ToggleNoFloorCovering:
		t.NoFloorCovering = on
	case ToggleTwoColors:
		t.TwoColors = on
	case ToggleMillworkPriming:
		t.MillworkPriming = on
	case ToggleHighCeiling:
		t.HighCeiling = on
	case TogglePaintCeiling:
		t.PaintCeiling = on
	case ToggleStairRailing:
		t.StairRailing = on
	}
	return t
}

// Openings counts doors or windows and how they are painted.
type Openings struct {
	Count       int                 `json:"count"`
	PaintMethod catalog.PaintMethod `json:"paintMethod"`
}

type Closets struct {
	WalkInCount  int `json:"walkInCount"`
	RegularCount int `json:"regularCount"`
}

// Breakdown maps a line-item key to a signed dollar amount. Negative values are discounts.
type Breakdown map[string]float64

// Sum adds every line item.
func (b Breakdown) Sum() float64 {
	total := 0.0
	for _, v := range b {
		total += v
	}
	return total
}

// Room is one room being estimated. Price and PriceBreakdown are derived and
// must only be written by the pricing engine.
type Room struct {
	ID                        string                `json:"id"`
	Name                      string                `json:"name"`
	RoomTypeID                string                `json:"roomTypeId"`
	SizeID                    string                `json:"sizeId"`
	PaintTypeID               string                `json:"paintTypeId"`
	Baseboard                 catalog.BaseboardTier `json:"baseboard"`
	Toggles                   Toggles               `json:"toggles"`
	AddOns                    map[string]bool       `json:"addOns,omitempty"`
	Doors                     Openings              `json:"doors"`
	Windows                   Openings              `json:"windows"`
	Closets                   Closets               `json:"closets"`
	Fireplace                 string                `json:"fireplace"`
	Repairs                   string                `json:"repairs"`
	BaseboardInstallationFeet float64               `json:"baseboardInstallationFeet"`
	Price                     float64               `json:"price"`
	PriceBreakdown            Breakdown             `json:"priceBreakdown"`
}

// Clone returns a deep copy so reducers never alias the caller's maps.
func (r Room) Clone() Room {
	if r.AddOns != nil {
		addOns := make(map[string]bool, len(r.AddOns))
		for k, v := range r.AddOns {
			addOns[k] = v
		}
		r.AddOns = addOns
	}
	if r.PriceBreakdown != nil {
		b := make(Breakdown, len(r.PriceBreakdown))
		for k, v := range r.PriceBreakdown {
			b[k] = v
		}
		r.PriceBreakdown = b
	}
	return r
}

// HasMillwork reports whether any trim surface exists in the room.
func (r Room) HasMillwork() bool {
	return (r.Baseboard != "" && r.Baseboard != catalog.BaseboardNone) ||
		r.Doors.Count > 0 ||
		r.Windows.Count > 0 ||
		r.Closets.WalkInCount > 0 ||
		r.Closets.RegularCount > 0
}
