// Package export renders saved estimates as plain text, spreadsheets and PDFs.
package export

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/paintpro/internal/catalog"
	"github.com/Simplici0/paintpro/internal/models"
	"github.com/Simplici0/paintpro/internal/pricing"
)

const dateLayout = "Jan 2, 2006"

type Line struct {
	Label  string
	Amount float64
}

type RoomView struct {
	Number      int
	Name        string
	Description string
	Price       float64
	Lines       []Line
}

// Document is the format-neutral view shared by every renderer.
type Document struct {
	Title           string
	EstimateID      string
	Date            string
	Contact         models.ContactInfo
	Rooms           []RoomView
	Subtotal        float64
	VolumeDiscount  float64
	DiscountPercent float64
	Total           float64
}

// Build resolves catalog names for est. Ids missing from cat are shown as-is.
func Build(est models.SavedEstimate, cat catalog.Catalog) Document {
	s := est.Summary
	doc := Document{
		Title:          "Paint Pro Estimate: " + projectName(s.ContactInfo.ProjectName),
		EstimateID:     est.ID,
		Contact:        s.ContactInfo,
		Subtotal:       s.Subtotal,
		VolumeDiscount: s.VolumeDiscount,
		Total:          s.Total,
	}
	if !est.CreatedAt.IsZero() {
		doc.Date = est.CreatedAt.In(time.Local).Format(dateLayout)
	}
	doc.DiscountPercent = discountPercent(s.Subtotal, s.VolumeDiscount, cat.VolumeDiscounts)

	for i, r := range s.Rooms {
		view := RoomView{
			Number:      i + 1,
			Name:        r.Name,
			Description: describe(r, cat),
			Price:       r.Price,
		}
		for _, key := range pricing.OrderedKeys(r.PriceBreakdown) {
			view.Lines = append(view.Lines, Line{Label: lineLabel(key, cat), Amount: r.PriceBreakdown[key]})
		}
		doc.Rooms = append(doc.Rooms, view)
	}
	return doc
}

func projectName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "New Project"
	}
	return name
}

// discountPercent prefers the catalog tier that reproduces the stored discount
// and falls back to the ratio when prices changed since the estimate was saved.
func discountPercent(subtotal, discount float64, tiers []catalog.VolumeDiscountTier) float64 {
	if discount == 0 || subtotal == 0 {
		return 0
	}
	if tier, ok := pricing.SelectTier(subtotal, tiers); ok {
		if pricing.Round2(subtotal*tier.DiscountPercentage/100) == discount {
			return tier.DiscountPercentage
		}
	}
	return pricing.Round2(discount / subtotal * 100)
}

func describe(r models.Room, cat catalog.Catalog) string {
	parts := make([]string, 0, 3)
	if rt, ok := cat.RoomType(r.RoomTypeID); ok {
		parts = append(parts, rt.Name)
	} else if r.RoomTypeID != "" {
		parts = append(parts, r.RoomTypeID)
	}
	if size, ok := cat.Size(r.SizeID); ok {
		parts = append(parts, size.Label)
	}
	if paint, ok := cat.PaintType(r.PaintTypeID); ok {
		parts = append(parts, paint.Name)
	}
	return strings.Join(parts, ", ")
}

func lineLabel(key string, cat catalog.Catalog) string {
	if a, ok := cat.AddOn(key); ok {
		return a.Name
	}
	return pricing.Label(key)
}

// Money formats v as "$1,234.50", with a leading minus for negatives.
func Money(v float64) string {
	s := "$" + humanize.FormatFloat("#,###.##", math.Abs(v))
	if v < 0 {
		return "-" + s
	}
	return s
}

// SignedMoney always carries a sign: "+$50.00" or "-$97.50".
func SignedMoney(v float64) string {
	if v < 0 {
		return Money(v)
	}
	return "+" + Money(v)
}

func percent(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(humanize.FormatFloat("#.##", v), "0"), ".") + "%"
}
