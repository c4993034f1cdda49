package maskfile

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"Moulinette/api/inventory/engine"
)

// LotEcartNumber replaces the lot number of a line created from a
// positive count on zero theoretical stock.
const LotEcartNumber = "LOECART"

// IndicatorExhausted marks stock rows whose final quantity is zero (and
// LOECART rows) so Sage treats them as closed on re-import.
const IndicatorExhausted = "2"

type lineRef struct {
	product  string
	location string
}

type lotRef struct {
	product  string
	location string
	lot      string
}

// RenderFinal writes the corrected export on top of the original mask
// layout: column F keeps the theoretical quantity, column G receives the
// computed final quantity, both as rounded integer strings. A lot spread
// over several source rows carries its whole final quantity on its first
// row, later duplicates drop to zero so the re-imported total is exact.
// Header (E/L) records pass through untouched.
func RenderFinal(m *Mask, adjustments []engine.Adjustment) ([]byte, error) {
	adjByLine := make(map[lineRef]*engine.Adjustment, len(adjustments))
	finalByLot := make(map[lotRef]decimal.Decimal)
	for i := range adjustments {
		adj := &adjustments[i]
		key := lineRef{adj.Product, adj.Location}
		adjByLine[key] = adj
		for _, d := range adj.Deltas {
			finalByLot[lotRef{adj.Product, adj.Location, d.Lot}] = d.Final
		}
	}
	lotSeen := make(map[lotRef]bool)
	ecartDone := make(map[lineRef]bool)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	sIdx := make(map[int]*SRow, len(m.SRows))
	for i := range m.SRows {
		sIdx[m.SRows[i].Record] = &m.SRows[i]
	}

	for i, rec := range m.Records {
		s, ok := sIdx[i]
		if !ok {
			if err := w.Write(rec); err != nil {
				return nil, err
			}
			continue
		}

		out := make([]string, len(rec))
		copy(out, rec)

		original := s.Row.Quantity
		final := original
		line := lineRef{s.Row.Product, s.Row.Location}
		lk := lotRef{s.Row.Product, s.Row.Location, s.Row.Lot}
		adj := adjByLine[line]
		if adj != nil && len(adj.Deltas) > 0 {
			if f, ok := finalByLot[lk]; ok {
				if lotSeen[lk] {
					final = decimal.Zero
				} else {
					lotSeen[lk] = true
					final = f
				}
			}
		}

		out[ColQuantity] = intString(original)
		out[ColAdjusted] = intString(final)
		if final.IsZero() {
			out[ColIndicator] = IndicatorExhausted
		}
		if adj != nil && adj.LotEcart && !ecartDone[line] && !final.IsZero() {
			ecartDone[line] = true
			out[ColLot] = LotEcartNumber
			out[ColIndicator] = IndicatorExhausted
		}

		if err := w.Write(out); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// intString renders a quantity the way Sage expects corrected exports:
// a plain integer, empty when the cell held nothing numeric to begin with.
func intString(d decimal.Decimal) string {
	return d.Round(0).String()
}

// FinalFileName, TemplateFileName and MaskFileName build the stored file
// names from the session identifiers, mirroring the legacy naming.
func MaskFileName(sessionID int64, meta Metadata) string {
	return fileName(sessionID, meta, "MASK.csv")
}

func TemplateFileName(sessionID int64, meta Metadata) string {
	return fileName(sessionID, meta, "TEMPLATE.xlsx")
}

func FinalFileName(sessionID int64, meta Metadata) string {
	return fileName(sessionID, meta, "FINAL.csv")
}

func fileName(sessionID int64, meta Metadata, suffix string) string {
	parts := []string{strconv.FormatInt(sessionID, 10), meta.InventoryNum, meta.Site, suffix}
	return strings.Join(parts, "_")
}
