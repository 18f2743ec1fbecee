package models

import (
	"testing"

	"github.com/Simplici0/paintpro/internal/catalog"
)

func TestToggleGetAndWith(t *testing.T) {
	var toggles Toggles
	for _, name := range AllToggles {
		on := toggles.With(name, true)
		if !on.Get(name) {
			t.Fatalf("%s not set by With", name)
		}
		for _, other := range AllToggles {
			if other != name && on.Get(other) {
				t.Fatalf("setting %s also set %s", name, other)
			}
		}
	}
	if toggles.EmptyRoom {
		t.Fatalf("With mutated the receiver")
	}
}

func TestParseToggle(t *testing.T) {
	if got, err := ParseToggle("highCeiling"); err != nil || got != ToggleHighCeiling {
		t.Fatalf("ParseToggle(highCeiling) = %q, %v", got, err)
	}
	if _, err := ParseToggle("High Ceiling"); err == nil {
		t.Fatalf("expected error for display name")
	}
}

func TestCloneDoesNotAliasMaps(t *testing.T) {
	room := Room{
		AddOns:         map[string]bool{"accentWall": true},
		PriceBreakdown: Breakdown{"basePrice": 650},
	}

	clone := room.Clone()
	clone.AddOns["accentWall"] = false
	clone.PriceBreakdown["basePrice"] = 1

	if !room.AddOns["accentWall"] || room.PriceBreakdown["basePrice"] != 650 {
		t.Fatalf("clone shares maps with original: %+v", room)
	}
}

func TestHasMillwork(t *testing.T) {
	cases := []struct {
		name string
		room Room
		want bool
	}{
		{"bare", Room{Baseboard: catalog.BaseboardNone}, false},
		{"empty tier", Room{}, false},
		{"baseboards", Room{Baseboard: catalog.BaseboardBrushed}, true},
		{"door", Room{Doors: Openings{Count: 1}}, true},
		{"window", Room{Windows: Openings{Count: 2}}, true},
		{"walk-in closet", Room{Closets: Closets{WalkInCount: 1}}, true},
		{"regular closet", Room{Closets: Closets{RegularCount: 1}}, true},
	}
	for _, tc := range cases {
		if got := tc.room.HasMillwork(); got != tc.want {
			t.Fatalf("%s: HasMillwork = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBreakdownSum(t *testing.T) {
	b := Breakdown{"basePrice": 1000, "emptyRoomDiscount": -150, "noFloorCoveringDiscount": -42.5}
	if got := b.Sum(); got != 807.5 {
		t.Fatalf("Sum = %v, want 807.5", got)
	}
}
