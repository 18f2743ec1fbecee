package catalog

import "fmt"

// BaseboardTier is a closed set; its upcharge is a percentage of the base price.
type BaseboardTier string

const (
	BaseboardNone    BaseboardTier = "No Baseboards"
	BaseboardBrushed BaseboardTier = "Brushed Baseboards"
	BaseboardSprayed BaseboardTier = "Sprayed Baseboards"
)

// BaseboardTiers lists the tiers in display order.
var BaseboardTiers = []BaseboardTier{BaseboardNone, BaseboardBrushed, BaseboardSprayed}

func (t BaseboardTier) Percentage() float64 {
	switch t {
	case BaseboardBrushed:
		return 25
	case BaseboardSprayed:
		return 50
	default:
		return 0
	}
}

func ParseBaseboardTier(raw string) (BaseboardTier, error) {
	for _, t := range BaseboardTiers {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown baseboard tier %q", raw)
}

// PaintMethod is recorded for doors and windows. It has no price effect.
type PaintMethod string

const (
	MethodSpray PaintMethod = "Spray"
	MethodBrush PaintMethod = "Brush"
	MethodRoll  PaintMethod = "Roll"
)

var PaintMethods = []PaintMethod{MethodSpray, MethodBrush, MethodRoll}

func ParsePaintMethod(raw string) (PaintMethod, error) {
	for _, m := range PaintMethods {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown paint method %q", raw)
}
