package catalog

import (
	"errors"
	"testing"
)

func sampleCatalog() Catalog {
	return Catalog{
		RoomTypes: []RoomType{{ID: "kitchen", Name: "Kitchen"}, {ID: "bedroom", Name: "Bedroom"}},
		RoomSizes: []RoomSize{
			{ID: "kitchen-small", RoomTypeID: "kitchen", Label: "Small", BasePrice: 500},
			{ID: "kitchen-average", RoomTypeID: "kitchen", Label: "Average", BasePrice: 650},
			{ID: "bedroom-small", RoomTypeID: "bedroom", Label: "Small", BasePrice: 450},
		},
		PaintTypes: []PaintType{
			{ID: "standard", Name: "Standard"},
			{ID: "premium", Name: "Premium", UpchargePercentage: 8, UpchargeAmount: 20},
		},
	}
}

func TestSizesForFiltersByRoomType(t *testing.T) {
	c := sampleCatalog()

	sizes := c.SizesFor("kitchen")
	if len(sizes) != 2 || sizes[0].ID != "kitchen-small" || sizes[1].ID != "kitchen-average" {
		t.Fatalf("unexpected kitchen sizes: %+v", sizes)
	}
	if got := c.SizesFor("garage"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice for unknown type, got %#v", got)
	}
}

func TestValidateReportsOrphanSizes(t *testing.T) {
	c := sampleCatalog()
	if err := c.Validate(); err != nil {
		t.Fatalf("valid catalog reported error: %v", err)
	}

	c.RoomSizes = append(c.RoomSizes, RoomSize{ID: "garage-xl", RoomTypeID: "garage", BasePrice: 900})
	err := c.Validate()
	if !errors.Is(err, ErrOrphanRoomSize) {
		t.Fatalf("expected ErrOrphanRoomSize, got %v", err)
	}
	if errors.Is(err, ErrIncomplete) {
		t.Fatalf("catalog is complete, got %v", err)
	}
}

func TestValidateReportsIncompleteCatalog(t *testing.T) {
	if err := (Catalog{}).Validate(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestWithOwnerSuppliedPaintPrependsOnce(t *testing.T) {
	c := sampleCatalog().WithOwnerSuppliedPaint()

	if len(c.PaintTypes) != 3 {
		t.Fatalf("expected 3 paint types, got %d", len(c.PaintTypes))
	}
	first := c.PaintTypes[0]
	if !first.OwnerSupplied || first.Name != OwnerSuppliedPaint || first.UpchargeAmount != 0 || first.UpchargePercentage != 0 {
		t.Fatalf("unexpected owner-supplied option: %+v", first)
	}

	again := c.WithOwnerSuppliedPaint()
	if len(again.PaintTypes) != 3 {
		t.Fatalf("owner-supplied option added twice: %+v", again.PaintTypes)
	}
}

func TestDefaultPaintType(t *testing.T) {
	c := sampleCatalog()
	p, ok := c.DefaultPaintType()
	if !ok || p.ID != "standard" {
		t.Fatalf("expected first paint type without owner option, got %+v", p)
	}

	p, ok = c.WithOwnerSuppliedPaint().DefaultPaintType()
	if !ok || !p.OwnerSupplied {
		t.Fatalf("expected owner-supplied paint, got %+v", p)
	}

	if _, ok := (Catalog{}).DefaultPaintType(); ok {
		t.Fatalf("expected no default paint on empty catalog")
	}
}

func TestTiersDescendingDoesNotMutateInput(t *testing.T) {
	tiers := []VolumeDiscountTier{{2000, 5}, {10000, 15}, {3000, 8}}

	sorted := TiersDescending(tiers)
	if sorted[0].Threshold != 10000 || sorted[1].Threshold != 3000 || sorted[2].Threshold != 2000 {
		t.Fatalf("unexpected order: %+v", sorted)
	}
	if tiers[0].Threshold != 2000 {
		t.Fatalf("input slice was reordered: %+v", tiers)
	}
}

func TestBaseboardTierPercentages(t *testing.T) {
	cases := []struct {
		tier BaseboardTier
		want float64
	}{
		{BaseboardNone, 0},
		{BaseboardBrushed, 25},
		{BaseboardSprayed, 50},
		{BaseboardTier("Gold Leaf"), 0},
	}
	for _, tc := range cases {
		if got := tc.tier.Percentage(); got != tc.want {
			t.Fatalf("%q percentage = %v, want %v", tc.tier, got, tc.want)
		}
	}

	if _, err := ParseBaseboardTier("Gold Leaf"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
	if tier, err := ParseBaseboardTier("Sprayed Baseboards"); err != nil || tier != BaseboardSprayed {
		t.Fatalf("ParseBaseboardTier = %q, %v", tier, err)
	}
}
