// Package engine implements the reconciliation core: extract validation,
// aggregation of stock rows into product/location lines, lot date parsing
// and FIFO/LIFO gap distribution. Everything here is pure computation over
// in-memory rows; persistence and file formats live in the caller.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DepotType is the compliance context chosen when a session is created.
type DepotType string

const (
	DepotConforme    DepotType = "Conforme"
	DepotNonConforme DepotType = "Non-Conforme"
)

// Stock status codes from the Sage mask (column 10).
const (
	StatusAccepted         = "A"
	StatusAcceptedModified = "AM"
	StatusRejected         = "R"
	StatusRejectedModified = "RM"
	StatusQuarantine       = "Q"
)

// AllowedStatuses returns the status codes acceptable under the context.
func (d DepotType) AllowedStatuses() []string {
	if d == DepotNonConforme {
		return []string{StatusRejected, StatusRejectedModified}
	}
	return []string{StatusAccepted, StatusAcceptedModified}
}

// ParseDepotType normalizes the user supplied depot type string.
func ParseDepotType(s string) (DepotType, error) {
	switch strings.TrimSpace(s) {
	case "Conforme", "conforme":
		return DepotConforme, nil
	case "Non-Conforme", "NonConforme", "non-conforme", "Non Conforme":
		return DepotNonConforme, nil
	}
	return "", fmt.Errorf("invalid depot type %q", s)
}

// StockRow is one stock ('S') line of the uploaded extract. Immutable once
// parsed; quantities are never negative in a well-formed mask.
type StockRow struct {
	Product  string
	Location string
	Status   string
	Lot      string
	Quantity decimal.Decimal
	Unit     string
}

// Lot is a constituent of an AggregatedLine. Date is nil when the lot
// number carries no parseable date; such lots sort after all dated ones.
type Lot struct {
	Number   string
	Quantity decimal.Decimal
	Date     *time.Time
}

// AggregatedLine is one (product, location) group of the extract. The sum
// of the constituent lot quantities equals Theoretical at creation time.
type AggregatedLine struct {
	Product     string
	Location    string
	Unit        string
	Theoretical decimal.Decimal
	Lots        []Lot
}

// Stats are the advisory numbers returned after a successful validation.
type Stats struct {
	TotalRows        int `json:"total_lines"`
	DistinctProducts int `json:"total_products"`
	DistinctLots     int `json:"total_lots"`
}

// Audit action kinds produced by the engine. The store persists them
// verbatim in inventory_audits.action_type.
const (
	ActionQuarantineDetected = "STATUT_Q_DETECTED"
	ActionLotExhausted       = "LOT_REDUCED_TO_ZERO"
	ActionResidualGap        = "RESIDUAL_GAP"
	ActionLotEcartCreated    = "LOECART_CREATED"
	ActionGapDistributed     = "GAP_DISTRIBUTED"
)

// AuditEntry is an append-only fact emitted alongside engine calls.
type AuditEntry struct {
	Action  string
	Details string
}

// LotDelta is the signed correction applied to a single lot.
type LotDelta struct {
	Lot   string
	Delta decimal.Decimal
	Final decimal.Decimal
}

// Adjustment is the outcome of distributing one line's gap. Residual is
// the part of a deficit that could not be absorbed (always >= 0).
type Adjustment struct {
	Product  string
	Location string
	Gap      decimal.Decimal
	Deltas   []LotDelta
	Residual decimal.Decimal
	LotEcart bool
}

// ContextMismatchError reports rows whose status code is incompatible with
// the chosen depot context. The whole extract is rejected.
type ContextMismatchError struct {
	Depot    DepotType
	Statuses []string
	Rows     []int
}

func (e *ContextMismatchError) Error() string {
	return fmt.Sprintf("depot %s chosen but statuses %s present on %d row(s)",
		e.Depot, strings.Join(e.Statuses, "/"), len(e.Rows))
}

// QuarantineError reports rows in blocking quarantine status Q.
type QuarantineError struct {
	Lots []string
	Rows []int
}

func (e *QuarantineError) Error() string {
	return fmt.Sprintf("extract contains %d lot(s) in status Q", len(e.Lots))
}
