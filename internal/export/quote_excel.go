// Package export renders stored quotes into downloadable documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/renoquote/backend/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Quote"

// numFmtMoney is excelize's built-in "#,##0.00" format.
const numFmtMoney = 4

var (
	columns = []string{"A", "B", "C", "D", "E", "F", "G"}
	headers = []string{"Code", "Description", "Qty", "Unit", "Unit Price", "Base", "Extended"}
	widths  = []float64{14, 36, 10, 8, 14, 14, 16}
)

// headerRow is the row the line-item column headers are written to.
const headerRow = 6

// GenerateQuoteExcel renders a stored quote as a single-sheet workbook and
// returns the file contents.
func GenerateQuoteExcel(q *model.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	lastCol := columns[len(columns)-1]

	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f}

	// Header block.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	w.set("A1", "Renovation Quote")
	w.style("A1", lastCol+"1", styles.title)

	w.set("A2", "Quote: "+q.ID)
	// The fixed prefix keeps these cells from being read as formulas.
	w.set("A3", "Customer: "+customerLine(q.Customer))
	if !q.CreatedAt.IsZero() {
		w.set("A4", "Date: "+q.CreatedAt.Format("2006-01-02"))
	}

	for i, h := range headers {
		w.set(fmt.Sprintf("%s%d", columns[i], headerRow), h)
	}
	w.style(fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), styles.header)

	// Line items.
	row := headerRow + 1
	for _, it := range q.LineItems {
		r := fmt.Sprint(row)
		w.set("A"+r, sanitizeExcelCell(it.LineCode))
		w.set("B"+r, sanitizeExcelCell(it.LineName))
		w.set("C"+r, it.Quantity.InexactFloat64())
		w.set("D"+r, string(it.Unit))
		w.set("E"+r, it.UnitPrice.InexactFloat64())
		base := decimal.Zero
		if it.BaseApplied {
			base = it.BasePrice
		}
		w.set("F"+r, base.InexactFloat64())
		w.set("G"+r, it.Extended.InexactFloat64())
		w.style("A"+r, "D"+r, styles.cell)
		w.style("E"+r, "G"+r, styles.money)
		row++
	}

	// Totals.
	row++
	t := q.Totals
	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Labour subtotal", t.LabourSubtotal},
		{"Contingency", t.Contingency},
		{"Project management", t.PMFee},
		{"Condo uplift", t.CondoUplift},
		{"Older home uplift", t.OldHomeUplift},
		{"Grand total", t.GrandTotal},
	}
	for i, line := range totals {
		r := fmt.Sprint(row)
		w.set("F"+r, line.label)
		w.set("G"+r, line.value.InexactFloat64())
		valueStyle := styles.money
		if i == len(totals)-1 {
			valueStyle = styles.grandTotal
		}
		w.style("F"+r, "F"+r, styles.label)
		w.style("G"+r, "G"+r, valueStyle)
		row++
	}
	if w.err != nil {
		return nil, fmt.Errorf("fill sheet: %w", w.err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter writes cells on the quote sheet and keeps the first error;
// later calls are no-ops once an error is recorded.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(cell string, value any) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(sheetName, cell, value); err != nil {
		w.err = fmt.Errorf("set %s: %w", cell, err)
	}
}

func (w *sheetWriter) style(from, to string, id int) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellStyle(sheetName, from, to, id); err != nil {
		w.err = fmt.Errorf("style %s:%s: %w", from, to, err)
	}
}

type styleSet struct {
	title, header, cell, money, label, grandTotal int
}

func newStyles(f *excelize.File) (*styleSet, error) {
	var (
		s   styleSet
		err error
	)
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}); err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: numFmtMoney,
	}); err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	if s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}
	if s.grandTotal, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 12},
		NumFmt: numFmtMoney,
	}); err != nil {
		return nil, fmt.Errorf("create grand total style: %w", err)
	}
	return &s, nil
}

func customerLine(c model.Customer) string {
	if c.Email == "" {
		return c.Name
	}
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

// sanitizeExcelCell prefixes values a spreadsheet would treat as a formula.
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

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
