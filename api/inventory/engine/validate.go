package engine

import "fmt"

// ValidateExtract checks the whole row set against the chosen depot
// context. The extract is atomic: one offending row rejects everything,
// there is no per-row filtering.
//
// Quarantine rows are checked first and produce one audit entry per
// offending lot; the entries are returned even though the call fails so
// the caller can persist them and show the user which lots blocked the
// upload. On success the advisory stats are computed once and returned.
func ValidateExtract(rows []StockRow, depot DepotType) (Stats, []AuditEntry, error) {
	var audits []AuditEntry

	var qLots []string
	var qRows []int
	seenQ := make(map[string]bool)
	for i, row := range rows {
		if row.Status != StatusQuarantine {
			continue
		}
		qRows = append(qRows, i)
		if !seenQ[row.Lot] {
			seenQ[row.Lot] = true
			qLots = append(qLots, row.Lot)
			audits = append(audits, AuditEntry{
				Action:  ActionQuarantineDetected,
				Details: fmt.Sprintf("Lot %s (article %s, emplacement %s) en statut Q", row.Lot, row.Product, row.Location),
			})
		}
	}
	if len(qRows) > 0 {
		return Stats{}, audits, &QuarantineError{Lots: qLots, Rows: qRows}
	}

	allowed := make(map[string]bool)
	for _, s := range depot.AllowedStatuses() {
		allowed[s] = true
	}
	var badStatuses []string
	var badRows []int
	seenStatus := make(map[string]bool)
	for i, row := range rows {
		if allowed[row.Status] {
			continue
		}
		badRows = append(badRows, i)
		if !seenStatus[row.Status] {
			seenStatus[row.Status] = true
			badStatuses = append(badStatuses, row.Status)
		}
	}
	if len(badRows) > 0 {
		return Stats{}, nil, &ContextMismatchError{Depot: depot, Statuses: badStatuses, Rows: badRows}
	}

	return ComputeStats(rows), nil, nil
}

// ComputeStats recounts the advisory numbers for an already accepted
// extract, e.g. when a session is resumed and the cache has expired.
func ComputeStats(rows []StockRow) Stats {
	products := make(map[string]bool)
	lots := make(map[string]bool)
	for _, row := range rows {
		products[row.Product] = true
		lots[row.Lot] = true
	}
	return Stats{
		TotalRows:        len(rows),
		DistinctProducts: len(products),
		DistinctLots:     len(lots),
	}
}
