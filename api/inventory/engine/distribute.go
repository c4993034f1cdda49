package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// chronoOrder returns lot indices in strict chronological order: dated
// lots ascending by extracted date, ties broken by first-seen order;
// undated lots after all dated ones, in first-seen order.
func chronoOrder(lots []Lot) []int {
	idx := make([]int, len(lots))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		da, db := lots[idx[a]].Date, lots[idx[b]].Date
		switch {
		case da == nil && db == nil:
			return false
		case da == nil:
			return false
		case db == nil:
			return true
		default:
			return da.Before(*db)
		}
	})
	return idx
}

// DistributeGap spreads counted-theoretical over the line's lots.
//
// Surplus goes entirely to the most recent dated lot (LIFO placement);
// a line with only undated lots places it on the first-seen lot. A
// deficit is removed oldest-first (FIFO), never driving a lot below
// zero; whatever cannot be absorbed once every lot is empty is reported
// as Residual. A zero gap produces no deltas and no audit entries.
//
// Special case carried over from the Sage workflow: a line with zero
// theoretical stock but a positive count becomes a LOECART line - the
// first lot absorbs the whole counted quantity.
func DistributeGap(line AggregatedLine, counted decimal.Decimal) (Adjustment, []AuditEntry, error) {
	adj := Adjustment{
		Product:  line.Product,
		Location: line.Location,
		Gap:      counted.Sub(line.Theoretical),
		Residual: decimal.Zero,
	}
	if adj.Gap.IsZero() {
		return adj, nil, nil
	}

	var audits []AuditEntry

	if line.Theoretical.IsZero() && counted.IsPositive() {
		adj.LotEcart = true
		adj.Deltas = make([]LotDelta, len(line.Lots))
		for i, lot := range line.Lots {
			adj.Deltas[i] = LotDelta{Lot: lot.Number, Delta: decimal.Zero, Final: lot.Quantity}
		}
		adj.Deltas[0].Delta = counted
		adj.Deltas[0].Final = line.Lots[0].Quantity.Add(counted)
		audits = append(audits, AuditEntry{
			Action:  ActionLotEcartCreated,
			Details: fmt.Sprintf("LOECART %s/%s: stock théorique nul, quantité réelle %s", line.Product, line.Location, counted),
		})
		return adj, audits, checkConservation(adj)
	}

	order := chronoOrder(line.Lots)
	adj.Deltas = make([]LotDelta, len(line.Lots))
	for i, lot := range line.Lots {
		adj.Deltas[i] = LotDelta{Lot: lot.Number, Delta: decimal.Zero, Final: lot.Quantity}
	}

	if adj.Gap.IsPositive() {
		// most recent dated lot; all-undated lines fall back to first-seen
		target := 0
		for k := len(order) - 1; k >= 0; k-- {
			if line.Lots[order[k]].Date != nil {
				target = order[k]
				break
			}
		}
		adj.Deltas[target].Delta = adj.Gap
		adj.Deltas[target].Final = line.Lots[target].Quantity.Add(adj.Gap)
		return adj, nil, checkConservation(adj)
	}

	remaining := adj.Gap.Neg()
	for _, i := range order {
		if remaining.IsZero() {
			break
		}
		lot := line.Lots[i]
		take := decimal.Min(lot.Quantity, remaining)
		if take.IsZero() {
			continue
		}
		adj.Deltas[i].Delta = take.Neg()
		adj.Deltas[i].Final = lot.Quantity.Sub(take)
		remaining = remaining.Sub(take)
		if adj.Deltas[i].Final.IsZero() {
			audits = append(audits, AuditEntry{
				Action:  ActionLotExhausted,
				Details: fmt.Sprintf("Lot %s (%s/%s) épuisé lors de la distribution", lot.Number, line.Product, line.Location),
			})
		}
	}
	if remaining.IsPositive() {
		adj.Residual = remaining
		audits = append(audits, AuditEntry{
			Action:  ActionResidualGap,
			Details: fmt.Sprintf("Écart non résolu de %s sur %s/%s: tous les lots épuisés", remaining, line.Product, line.Location),
		})
	}
	return adj, audits, checkConservation(adj)
}

// checkConservation asserts sum(deltas) == gap - residual for a surplus
// and gap + residual for a deficit (residual is stored positive).
func checkConservation(adj Adjustment) error {
	sum := decimal.Zero
	for _, d := range adj.Deltas {
		sum = sum.Add(d.Delta)
		if d.Final.IsNegative() {
			return fmt.Errorf("lot %s on %s/%s driven below zero", d.Lot, adj.Product, adj.Location)
		}
	}
	resolved := adj.Gap
	if adj.Gap.IsNegative() {
		resolved = adj.Gap.Add(adj.Residual)
	}
	if !sum.Equal(resolved) {
		return fmt.Errorf("delta sum %s does not match resolved gap %s for %s/%s",
			sum, resolved, adj.Product, adj.Location)
	}
	return nil
}
