package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Estimate"

// XLSX renders doc as a single-sheet workbook. Amounts are numeric cells.
func XLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	for col, width := range map[string]float64{"A": 28, "B": 34, "C": 16} {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := "$#,##0.00;-$#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	if err := f.MergeCell(sheetName, "A1", "C1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(doc.Title))
	f.SetCellStyle(sheetName, "A1", "C1", titleStyle)

	row := 2
	put := func(label, value string) {
		if value == "" {
			return
		}
		f.SetCellValue(sheetName, cell("A", row), label)
		f.SetCellValue(sheetName, cell("B", row), sanitizeExcelCell(value))
		row++
	}
	put("Estimate ID", doc.EstimateID)
	put("Date", doc.Date)
	put("Customer", doc.Contact.FullName)
	put("Email", doc.Contact.Email)
	put("Phone", doc.Contact.Phone)
	put("Address", doc.Contact.Address)
	row++

	f.SetCellValue(sheetName, cell("A", row), "Room")
	f.SetCellValue(sheetName, cell("B", row), "Item")
	f.SetCellValue(sheetName, cell("C", row), "Amount")
	f.SetCellStyle(sheetName, cell("A", row), cell("C", row), headerStyle)
	row++

	for _, r := range doc.Rooms {
		roomLabel := fmt.Sprintf("%d. %s", r.Number, r.Name)
		for _, l := range r.Lines {
			f.SetCellValue(sheetName, cell("A", row), sanitizeExcelCell(roomLabel))
			f.SetCellValue(sheetName, cell("B", row), sanitizeExcelCell(l.Label))
			f.SetCellValue(sheetName, cell("C", row), l.Amount)
			f.SetCellStyle(sheetName, cell("C", row), cell("C", row), moneyStyle)
			row++
		}
		f.SetCellValue(sheetName, cell("A", row), sanitizeExcelCell(roomLabel))
		f.SetCellValue(sheetName, cell("B", row), "Room total")
		f.SetCellValue(sheetName, cell("C", row), r.Price)
		f.SetCellStyle(sheetName, cell("B", row), cell("C", row), totalStyle)
		row++
	}
	row++

	totals := []Line{{Label: "Subtotal", Amount: doc.Subtotal}}
	if doc.VolumeDiscount != 0 {
		totals = append(totals, Line{Label: fmt.Sprintf("Volume discount (%s)", percent(doc.DiscountPercent)), Amount: -doc.VolumeDiscount})
	}
	totals = append(totals, Line{Label: "Total", Amount: doc.Total})
	for _, t := range totals {
		f.SetCellValue(sheetName, cell("B", row), t.Label)
		f.SetCellValue(sheetName, cell("C", row), t.Amount)
		f.SetCellStyle(sheetName, cell("B", row), cell("C", row), totalStyle)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sanitizeExcelCell prefixes values that a spreadsheet would treat as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
