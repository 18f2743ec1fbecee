package pricing

import (
	"sort"

	"github.com/Simplici0/paintpro/internal/models"
)

// Line-item keys recorded in a room's price breakdown. Catalog add-ons are
// recorded under their own add-on key.
const (
	KeyBasePrice               = "basePrice"
	KeyBaseboardUpcharge       = "baseboardUpcharge"
	KeyHighCeiling             = "highCeiling"
	KeyTwoColors               = "twoColors"
	KeyMillworkPriming         = "millworkPriming"
	KeyClosets                 = "closets"
	KeyFireplace               = "fireplace"
	KeyStairRailing            = "stairRailing"
	KeyRepairs                 = "repairs"
	KeyBaseboardInstall        = "baseboardInstall"
	KeyPaintUpcharge           = "paintUpcharge"
	KeyEmptyRoomDiscount       = "emptyRoomDiscount"
	KeyNoFloorCoveringDiscount = "noFloorCoveringDiscount"
)

// applicationOrder mirrors the order in which the engine applies line items.
var applicationOrder = []string{
	KeyBasePrice,
	KeyBaseboardUpcharge,
	KeyHighCeiling,
	KeyTwoColors,
	KeyMillworkPriming,
	KeyClosets,
	KeyFireplace,
	KeyStairRailing,
	KeyRepairs,
	KeyBaseboardInstall,
}

var labels = map[string]string{
	KeyBasePrice:               "Base Price",
	KeyBaseboardUpcharge:       "Baseboards",
	KeyHighCeiling:             "High Ceiling",
	KeyTwoColors:               "Two-Color",
	KeyMillworkPriming:         "Millwork Priming",
	KeyClosets:                 "Closets",
	KeyFireplace:               "Fireplace",
	KeyStairRailing:            "Stair Railing",
	KeyRepairs:                 "Repairs",
	KeyBaseboardInstall:        "Baseboard Installation",
	KeyPaintUpcharge:           "Paint Upcharge",
	KeyEmptyRoomDiscount:       "Empty Room Discount",
	KeyNoFloorCoveringDiscount: "No Floor Covering Discount",
}

// Label returns the display label for a built-in breakdown key, or the key itself.
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// OrderedKeys lists the keys of b in the order the engine applied them.
// Catalog add-on keys sit between the fixed add-ons and the paint upcharge, sorted by name.
func OrderedKeys(b models.Breakdown) []string {
	keys := make([]string, 0, len(b))
	for _, k := range applicationOrder {
		if _, ok := b[k]; ok {
			keys = append(keys, k)
		}
	}

	var extra []string
	for k := range b {
		if _, builtin := labels[k]; !builtin {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	for _, k := range []string{KeyPaintUpcharge, KeyEmptyRoomDiscount, KeyNoFloorCoveringDiscount} {
		if _, ok := b[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
