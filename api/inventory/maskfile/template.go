package maskfile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"Moulinette/api/inventory/engine"
)

// TemplateSheet is the single sheet of the counting workbook.
const TemplateSheet = "Saisie Inventaire"

// Template column order. QUANTITE_REELLE is the only cell the operator
// fills in; everything else is echoed back on re-upload.
var templateHeaders = []string{
	"NUMERO_SESSION",
	"NUMERO_INVENTAIRE",
	"CODE_ARTICLE",
	"QUANTITE_THEORIQUE",
	"QUANTITE_REELLE",
	"DEPOT",
	"EMPLACEMENT",
	"UNITE",
}

// Columns that must survive the operator's edits for the filled template
// to be matched back against the mask.
var requiredFilledColumns = []string{
	"NUMERO_INVENTAIRE",
	"CODE_ARTICLE",
	"DEPOT",
	"EMPLACEMENT",
	"QUANTITE_THEORIQUE",
	"QUANTITE_REELLE",
}

// BuildTemplate renders the counting workbook, one row per aggregated
// line, counted quantity pre-filled with 0.
func BuildTemplate(meta Metadata, lines []engine.AggregatedLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return nil, err
	}
	for col, h := range templateHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(TemplateSheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, line := range lines {
		values := []interface{}{
			meta.SessionNum,
			meta.InventoryNum,
			line.Product,
			line.Theoretical.InexactFloat64(),
			0.0,
			meta.Site,
			line.Location,
			line.Unit,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(TemplateSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(TemplateSheet, "A", "H", 15); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CountedRow is one line of the filled template keyed the way the
// aggregator keys lines.
type CountedRow struct {
	Product  string
	Location string
	Counted  decimal.Decimal
}

// ParseFilled reads the filled counting workbook. Modern .xlsx files go
// through excelize, legacy .xls through extrame/xls. Blank or missing
// counted quantities default to zero.
func ParseFilled(content []byte, ext string) ([]CountedRow, error) {
	var rows [][]string
	switch strings.ToLower(ext) {
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("cannot read xlsx file: %w", err)
		}
		defer f.Close()
		rows, err = f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, err
		}
	case ".xls":
		wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("cannot read xls file: %w", err)
		}
		rows = wb.ReadAllCells(65536)
	default:
		return nil, fmt.Errorf("unsupported template extension %q", ext)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("filled template is empty")
	}

	colIdx := make(map[string]int)
	for i, h := range rows[0] {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, h := range requiredFilledColumns {
		if _, ok := colIdx[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing template columns: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, name string) string {
		i := colIdx[name]
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var counted []CountedRow
	for _, row := range rows[1:] {
		product := cell(row, "CODE_ARTICLE")
		location := cell(row, "EMPLACEMENT")
		if product == "" && location == "" {
			continue
		}
		counted = append(counted, CountedRow{
			Product:  product,
			Location: location,
			Counted:  parseQuantity(cell(row, "QUANTITE_REELLE")),
		})
	}
	return counted, nil
}
