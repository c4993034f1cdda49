package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type lineKey struct {
	product  string
	location string
}

// Aggregate groups an accepted row set into one line per (product,
// location). Line order is first-seen, lot order within a line is
// first-seen, and rows sharing a lot number within a group are summed
// into a single lot. The result is deterministic for a given input order.
func Aggregate(rows []StockRow) ([]AggregatedLine, error) {
	var order []lineKey
	groups := make(map[lineKey]*AggregatedLine)
	lotIdx := make(map[lineKey]map[string]int)

	for _, row := range rows {
		key := lineKey{row.Product, row.Location}
		line, ok := groups[key]
		if !ok {
			line = &AggregatedLine{
				Product:     row.Product,
				Location:    row.Location,
				Unit:        row.Unit,
				Theoretical: decimal.Zero,
			}
			groups[key] = line
			lotIdx[key] = make(map[string]int)
			order = append(order, key)
		}
		line.Theoretical = line.Theoretical.Add(row.Quantity)
		if i, ok := lotIdx[key][row.Lot]; ok {
			line.Lots[i].Quantity = line.Lots[i].Quantity.Add(row.Quantity)
		} else {
			lot := Lot{Number: row.Lot, Quantity: row.Quantity}
			if d, ok := ExtractLotDate(row.Lot); ok {
				lot.Date = &d
			}
			lotIdx[key][row.Lot] = len(line.Lots)
			line.Lots = append(line.Lots, lot)
		}
	}

	lines := make([]AggregatedLine, 0, len(order))
	for _, key := range order {
		line := groups[key]
		sum := decimal.Zero
		for _, lot := range line.Lots {
			sum = sum.Add(lot.Quantity)
		}
		// conservation invariant, checked on every build
		if !sum.Equal(line.Theoretical) {
			return nil, fmt.Errorf("aggregation mismatch for %s/%s: lots sum %s, line total %s",
				line.Product, line.Location, sum, line.Theoretical)
		}
		lines = append(lines, *line)
	}
	return lines, nil
}
