package pricing

import (
	"math"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
)

// Fixed price list for the built-in add-ons and discounts.
const (
	HighCeilingCost                = 600.0
	TwoColorsPercent               = 10.0
	MillworkPrimingPercent         = 50.0
	RegularClosetCost              = 150.0
	WalkInClosetCost               = 300.0
	StairRailingCost               = 250.0
	BaseboardInstallPerFoot        = 2.0
	EmptyRoomDiscountPercent       = 15.0
	NoFloorCoveringDiscountPercent = 5.0
)

// PaintUpchargePolicy names the paint upcharge formula in use: the paint
// percentage is taken of the subtotal after every add-on, and the fixed
// amount is added on top.
const PaintUpchargePolicy = "running-subtotal"

// MillworkEligible reports whether millwork priming may stay selected.
// The option is only unavailable when the room has no trim at all.
func MillworkEligible(room models.Room) bool {
	return room.HasMillwork()
}

// ledger accumulates the running subtotal and its itemized breakdown.
// Every contribution is rounded to cents once, and that same amount goes
// into both, so the breakdown always sums to the price.
type ledger struct {
	subtotal  float64
	breakdown models.Breakdown
}

func (l *ledger) add(key string, amount float64) {
	amount = Round2(amount)
	if amount == 0 {
		return
	}
	l.subtotal = Round2(l.subtotal + amount)
	l.breakdown[key] = Round2(l.breakdown[key] + amount)
}

func (l *ledger) percentOfSubtotal(pct float64) float64 {
	return l.subtotal * pct / 100.0
}

// ComputeRoomPrice returns a copy of room with Price and PriceBreakdown
// derived from its selections and the catalog. Unknown catalog references
// contribute nothing.
func ComputeRoomPrice(room models.Room, cat catalog.Catalog) models.Room {
	out := room.Clone()
	l := &ledger{breakdown: models.Breakdown{}}

	basePrice := 0.0
	if size, ok := cat.Size(room.SizeID); ok {
		basePrice = size.BasePrice
	}
	l.add(KeyBasePrice, basePrice)

	l.add(KeyBaseboardUpcharge, basePrice*room.Baseboard.Percentage()/100.0)

	if room.Toggles.HighCeiling {
		l.add(KeyHighCeiling, HighCeilingCost)
	}
	if room.Toggles.TwoColors {
		l.add(KeyTwoColors, basePrice*TwoColorsPercent/100.0)
	}
	if room.Toggles.MillworkPriming && MillworkEligible(room) {
		l.add(KeyMillworkPriming, basePrice*MillworkPrimingPercent/100.0)
	}

	closets := float64(room.Closets.RegularCount)*RegularClosetCost + float64(room.Closets.WalkInCount)*WalkInClosetCost
	l.add(KeyClosets, closets)

	if fp, ok := cat.Fireplace(room.Fireplace); ok && fp.FixedCost > 0 {
		l.add(KeyFireplace, fp.FixedCost)
	}
	if room.Toggles.StairRailing {
		l.add(KeyStairRailing, StairRailingCost)
	}
	if rp, ok := cat.Repair(room.Repairs); ok && rp.FixedCost > 0 {
		l.add(KeyRepairs, rp.FixedCost)
	}

	l.add(KeyBaseboardInstall, room.BaseboardInstallationFeet*BaseboardInstallPerFoot)

	for _, addOn := range cat.AddOns {
		if !addOnSelected(room, addOn.Key) {
			continue
		}
		cost := addOn.Cost
		if addOn.PercentageBased() {
			cost = basePrice * addOn.CostPercentage / 100.0
		}
		l.add(addOn.Key, cost)
	}

	if paint, ok := cat.PaintType(room.PaintTypeID); ok {
		upcharge := l.percentOfSubtotal(paint.UpchargePercentage) + paint.UpchargeAmount
		if upcharge > 0 {
			l.add(KeyPaintUpcharge, upcharge)
		}
	}

	if room.Toggles.EmptyRoom {
		l.add(KeyEmptyRoomDiscount, -l.percentOfSubtotal(EmptyRoomDiscountPercent))
	}
	if room.Toggles.NoFloorCovering {
		l.add(KeyNoFloorCoveringDiscount, -l.percentOfSubtotal(NoFloorCoveringDiscountPercent))
	}

	out.Price = Round2(l.subtotal)
	out.PriceBreakdown = l.breakdown
	return out
}

// addOnSelected reports whether the catalog add-on key applies to room, either
// through the room's add-on selections or through an unpriced built-in toggle
// of the same name.
func addOnSelected(room models.Room, key string) bool {
	if room.AddOns[key] {
		return true
	}
	toggle, err := models.ParseToggle(key)
	if err != nil || toggle.Priced() {
		return false
	}
	return room.Toggles.Get(toggle)
}

// Round2 rounds a dollar amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
