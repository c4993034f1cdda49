// Package maskfile reads and writes the Sage X3 file formats exchanged
// during a reconciliation: the semicolon separated mask extract, the
// Excel counting template and the corrected final export.
package maskfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"Moulinette/api/inventory/engine"
)

// Mask column layout. Lines are typed by column 0: E = session header,
// L = inventory header, S = stock row.
const (
	ColLineType     = 0
	ColSessionNum   = 1
	ColInventoryNum = 2
	ColSite         = 4
	ColQuantity     = 5
	ColAdjusted     = 6
	ColIndicator    = 7
	ColProduct      = 8
	ColLocation     = 9
	ColStatus       = 10
	ColUnit         = 11
	ColLot          = 14
)

// MinColumns is the narrowest mask Sage produces for this flow.
const MinColumns = 15

const (
	LineTypeSession   = "E"
	LineTypeInventory = "L"
	LineTypeStock     = "S"
)

// Mask is a parsed extract: the raw records in file order (padded to a
// uniform width) plus the typed stock rows with their record index, so
// the final file can be rendered back onto the original layout.
type Mask struct {
	Records [][]string
	Width   int
	SRows   []SRow
}

// SRow ties a typed stock row to its position in Records.
type SRow struct {
	Record int
	Site   string
	Row    engine.StockRow
}

// Metadata identifies the Sage session behind an extract.
type Metadata struct {
	SessionNum   string
	InventoryNum string
	Site         string
}

// Parse reads a semicolon separated, headerless mask file. Sage writes a
// different column count per line type, so every record is padded to the
// widest one before the layout check.
func Parse(content []byte) (*Mask, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid mask csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty mask file")
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	if width < MinColumns {
		return nil, fmt.Errorf("invalid mask layout: %d columns detected, %d required", width, MinColumns)
	}
	for i, rec := range records {
		if len(rec) < width {
			padded := make([]string, width)
			copy(padded, rec)
			records[i] = padded
		}
	}

	m := &Mask{Records: records, Width: width}
	for i, rec := range records {
		if strings.TrimSpace(rec[ColLineType]) != LineTypeStock {
			continue
		}
		m.SRows = append(m.SRows, SRow{
			Record: i,
			Site:   strings.TrimSpace(rec[ColSite]),
			Row: engine.StockRow{
				Product:  strings.TrimSpace(rec[ColProduct]),
				Location: strings.TrimSpace(rec[ColLocation]),
				Status:   strings.TrimSpace(rec[ColStatus]),
				Lot:      strings.TrimSpace(rec[ColLot]),
				Quantity: parseQuantity(rec[ColQuantity]),
				Unit:     strings.TrimSpace(rec[ColUnit]),
			},
		})
	}
	return m, nil
}

// StockRows returns the typed stock rows in file order.
func (m *Mask) StockRows() []engine.StockRow {
	rows := make([]engine.StockRow, len(m.SRows))
	for i, s := range m.SRows {
		rows[i] = s.Row
	}
	return rows
}

// Metadata pulls the Sage identifiers out of the header lines, with
// timestamped fallbacks when the extract omits them.
func (m *Mask) Metadata() Metadata {
	meta := Metadata{}
	for _, rec := range m.Records {
		switch strings.TrimSpace(rec[ColLineType]) {
		case LineTypeSession:
			if meta.SessionNum == "" {
				meta.SessionNum = strings.TrimSpace(rec[ColSessionNum])
			}
		case LineTypeInventory:
			if meta.InventoryNum == "" {
				meta.InventoryNum = strings.TrimSpace(rec[ColInventoryNum])
			}
		case LineTypeStock:
			if meta.Site == "" {
				meta.Site = strings.TrimSpace(rec[ColSite])
			}
		}
	}
	now := time.Now().Format("20060102150405")
	if meta.SessionNum == "" {
		meta.SessionNum = "AUTO_SESS_" + now
	}
	if meta.InventoryNum == "" {
		meta.InventoryNum = "AUTO_INV_" + now
	}
	if meta.Site == "" {
		meta.Site = "UNKNOWN"
	}
	return meta
}

var numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// parseQuantity reads a mask quantity cell. Sage emits comma decimal
// separators; anything unreadable counts as zero, as in the source flow.
func parseQuantity(cell string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	if match := numberPattern.FindString(s); match != "" {
		if d, err := decimal.NewFromString(match); err == nil {
			return d
		}
	}
	return decimal.Zero
}
