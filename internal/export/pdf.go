package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	mutedColor  = &props.Color{Red: 90, Green: 90, Blue: 90}
	roomBgColor = &props.Color{Red: 240, Green: 240, Blue: 240}
	creditColor = &props.Color{Red: 16, Green: 185, Blue: 129}
)

// PDF renders doc as an A4 document.
func PDF(doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)
	addPDFHeader(m, doc)
	for _, r := range doc.Rooms {
		addPDFRoom(m, r)
	}
	addPDFTotals(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, doc Document) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(doc.Title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left})),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Estimate ID: "+doc.EstimateID, props.Text{Size: 8, Color: mutedColor})),
			col.New(6).Add(text.New(doc.Date, props.Text{Size: 8, Align: align.Right, Color: mutedColor})),
		),
	)

	c := doc.Contact
	for _, field := range [][2]string{
		{"Customer", c.FullName},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", c.Address},
	} {
		if field[1] == "" {
			continue
		}
		m.AddRows(row.New(5).Add(
			col.New(3).Add(text.New(field[0]+":", props.Text{Size: 9, Style: fontstyle.Bold})),
			col.New(9).Add(text.New(field[1], props.Text{Size: 9})),
		))
	}
	m.AddRows(row.New(6))
}

func addPDFRoom(m core.Maroto, r RoomView) {
	bg := &props.Cell{BackgroundColor: roomBgColor}
	m.AddRows(row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("Room %d: %s", r.Number, r.Name), props.Text{Size: 11, Style: fontstyle.Bold, Top: 1.5})).WithStyle(bg),
		col.New(4).Add(text.New(Money(r.Price), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Top: 1.5})).WithStyle(bg),
	))
	if r.Description != "" {
		m.AddRows(row.New(5).Add(
			col.New(12).Add(text.New(r.Description, props.Text{Size: 8, Color: mutedColor})),
		))
	}
	for _, l := range r.Lines {
		amount := props.Text{Size: 9, Align: align.Right}
		if l.Amount < 0 {
			amount.Color = creditColor
		}
		m.AddRows(row.New(5).Add(
			col.New(8).Add(text.New(l.Label, props.Text{Size: 9, Left: 3})),
			col.New(4).Add(text.New(SignedMoney(l.Amount), amount)),
		))
	}
	m.AddRows(row.New(4))
}

func addPDFTotals(m core.Maroto, doc Document) {
	label := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 10, Align: align.Right}

	m.AddRows(row.New(6).Add(
		col.New(8).Add(text.New("Subtotal", label)),
		col.New(4).Add(text.New(Money(doc.Subtotal), value)),
	))
	if doc.VolumeDiscount != 0 {
		credit := value
		credit.Color = creditColor
		m.AddRows(row.New(6).Add(
			col.New(8).Add(text.New(fmt.Sprintf("Volume discount (%s)", percent(doc.DiscountPercent)), label)),
			col.New(4).Add(text.New(Money(-doc.VolumeDiscount), credit)),
		))
	}
	total := value
	total.Style = fontstyle.Bold
	total.Size = 12
	m.AddRows(row.New(8).Add(
		col.New(8).Add(text.New("Total", label)),
		col.New(4).Add(text.New(Money(doc.Total), total)),
	))
}
