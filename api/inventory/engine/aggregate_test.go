package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAggregateGroupsAndSums(t *testing.T) {
	rows := []StockRow{
		row("P1", "E1", StatusAccepted, "ABC010124", 10),
		row("P1", "E1", StatusAccepted, "ABC010324", 5),
		row("P2", "E1", StatusAccepted, "LOTX", 3),
		row("P1", "E1", StatusAccepted, "ABC010124", 2), // duplicate lot, summed
	}
	lines, err := Aggregate(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	// first-seen order
	if lines[0].Product != "P1" || lines[1].Product != "P2" {
		t.Fatalf("line order = %s, %s; want P1, P2", lines[0].Product, lines[1].Product)
	}

	p1 := lines[0]
	if !p1.Theoretical.Equal(decimal.NewFromInt(17)) {
		t.Errorf("P1 theoretical = %s, want 17", p1.Theoretical)
	}
	if len(p1.Lots) != 2 {
		t.Fatalf("P1 lots = %d, want 2", len(p1.Lots))
	}
	if p1.Lots[0].Number != "ABC010124" || !p1.Lots[0].Quantity.Equal(decimal.NewFromInt(12)) {
		t.Errorf("lot 0 = %s/%s, want ABC010124/12", p1.Lots[0].Number, p1.Lots[0].Quantity)
	}
	if p1.Lots[0].Date == nil || p1.Lots[1].Date == nil {
		t.Error("dated lot numbers should carry an extracted date")
	}

	p2 := lines[1]
	if p2.Lots[0].Date != nil {
		t.Error("LOTX has no embedded date, Date should be nil")
	}
	if !p2.Theoretical.Equal(decimal.NewFromInt(3)) {
		t.Errorf("P2 theoretical = %s, want 3", p2.Theoretical)
	}
}

func TestAggregateSameProductDifferentLocation(t *testing.T) {
	rows := []StockRow{
		row("P1", "E1", StatusAccepted, "LOTA", 4),
		row("P1", "E2", StatusAccepted, "LOTA", 6),
	}
	lines, err := Aggregate(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2 (location splits the group)", len(lines))
	}
}

func TestAggregateDeterministic(t *testing.T) {
	rows := []StockRow{
		row("B", "E1", StatusAccepted, "LOT1", 1),
		row("A", "E1", StatusAccepted, "LOT2", 2),
		row("C", "E1", StatusAccepted, "LOT3", 3),
	}
	first, err := Aggregate(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Aggregate(rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range first {
			if again[j].Product != first[j].Product {
				t.Fatalf("iteration %d: order changed, got %s at %d", i, again[j].Product, j)
			}
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	lines, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("lines = %d, want 0", len(lines))
	}
}
