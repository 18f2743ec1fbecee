package pricing

import (
	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
)

// SelectTier returns the tier with the highest threshold that subtotal meets or exceeds.
func SelectTier(subtotal float64, tiers []catalog.VolumeDiscountTier) (catalog.VolumeDiscountTier, bool) {
	for _, tier := range catalog.TiersDescending(tiers) {
		if subtotal >= tier.Threshold {
			return tier, true
		}
	}
	return catalog.VolumeDiscountTier{}, false
}

// ComputeSummary rolls priced rooms into a subtotal, applies the single
// matching volume discount tier and returns the total.
func ComputeSummary(rooms []models.Room, contact models.ContactInfo, tiers []catalog.VolumeDiscountTier) models.EstimateSummary {
	summary := models.EstimateSummary{
		Rooms:       make([]models.Room, 0, len(rooms)),
		ContactInfo: contact,
	}
	if len(rooms) == 0 {
		return summary
	}

	subtotal := 0.0
	for _, room := range rooms {
		subtotal += room.Price
		summary.Rooms = append(summary.Rooms, room.Clone())
	}
	subtotal = Round2(subtotal)

	discount := 0.0
	if tier, ok := SelectTier(subtotal, tiers); ok {
		discount = Round2(subtotal * tier.DiscountPercentage / 100.0)
	}

	summary.Subtotal = subtotal
	summary.VolumeDiscount = discount
	summary.Total = Round2(subtotal - discount)
	return summary
}
