package maskfile

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"

	"Moulinette/api/inventory/engine"
)

func parseFinal(t *testing.T, content []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("final file does not parse: %v", err)
	}
	return records
}

func TestRenderFinalWritesAdjustedQuantities(t *testing.T) {
	m, err := Parse([]byte(sampleMask))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adjustments := []engine.Adjustment{
		{
			Product:  "PROD1",
			Location: "EMP1",
			Gap:      decimal.NewFromInt(-13),
			Deltas: []engine.LotDelta{
				{Lot: "ABC010124", Delta: decimal.NewFromInt(-10), Final: decimal.Zero},
				{Lot: "ABC010324", Delta: decimal.NewFromInt(-3), Final: decimal.RequireFromString("2.5")},
			},
		},
	}
	out, err := RenderFinal(m, adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := parseFinal(t, out)
	if len(records) != 5 {
		t.Fatalf("records = %d, want 5", len(records))
	}

	// header lines untouched
	if records[0][ColLineType] != "E" || records[1][ColLineType] != "L" {
		t.Error("header records must pass through")
	}

	// first lot zeroed: original in F, 0 in G, indicator flipped
	r1 := records[2]
	if r1[ColQuantity] != "10" {
		t.Errorf("col F = %q, want 10", r1[ColQuantity])
	}
	if r1[ColAdjusted] != "0" {
		t.Errorf("col G = %q, want 0", r1[ColAdjusted])
	}
	if r1[ColIndicator] != IndicatorExhausted {
		t.Errorf("indicator = %q, want %q", r1[ColIndicator], IndicatorExhausted)
	}

	// second lot trimmed to 2.5, rendered as a rounded integer
	r2 := records[3]
	if r2[ColQuantity] != "6" { // 5.5 rounds up
		t.Errorf("col F = %q, want 6", r2[ColQuantity])
	}
	if r2[ColAdjusted] != "3" { // 2.5 rounds up
		t.Errorf("col G = %q, want 3", r2[ColAdjusted])
	}
	if r2[ColIndicator] == IndicatorExhausted {
		t.Error("a non-zero final must not be flagged exhausted")
	}

	// untouched line keeps its quantity in both columns
	r3 := records[4]
	if r3[ColQuantity] != "3" || r3[ColAdjusted] != "3" {
		t.Errorf("untouched line = F %q / G %q, want 3/3", r3[ColQuantity], r3[ColAdjusted])
	}
}

func TestRenderFinalDuplicateLotRows(t *testing.T) {
	content := "S;SES;INV;;SITE1;5;;1;P1;E1;A;UN;;;LOTA\n" +
		"S;SES;INV;;SITE1;5;;1;P1;E1;A;UN;;;LOTA\n"
	m, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adjustments := []engine.Adjustment{
		{
			Product:  "P1",
			Location: "E1",
			Gap:      decimal.NewFromInt(-4),
			Deltas: []engine.LotDelta{
				{Lot: "LOTA", Delta: decimal.NewFromInt(-4), Final: decimal.NewFromInt(6)},
			},
		},
	}
	out, err := RenderFinal(m, adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := parseFinal(t, out)
	// the lot's whole final lands on its first row, the duplicate drops
	// to zero so the re-imported sum stays 6
	if records[0][ColAdjusted] != "6" {
		t.Errorf("first row col G = %q, want 6", records[0][ColAdjusted])
	}
	if records[1][ColAdjusted] != "0" {
		t.Errorf("duplicate row col G = %q, want 0", records[1][ColAdjusted])
	}
	if records[1][ColIndicator] != IndicatorExhausted {
		t.Errorf("duplicate row indicator = %q, want %q", records[1][ColIndicator], IndicatorExhausted)
	}
}

func TestRenderFinalLotEcart(t *testing.T) {
	content := "S;SES;INV;;SITE1;0;;1;P1;E1;A;UN;;;LOTA\n"
	m, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adjustments := []engine.Adjustment{
		{
			Product:  "P1",
			Location: "E1",
			Gap:      decimal.NewFromInt(4),
			LotEcart: true,
			Deltas: []engine.LotDelta{
				{Lot: "LOTA", Delta: decimal.NewFromInt(4), Final: decimal.NewFromInt(4)},
			},
		},
	}
	out, err := RenderFinal(m, adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := parseFinal(t, out)
	r := records[0]
	if r[ColLot] != LotEcartNumber {
		t.Errorf("lot = %q, want %q", r[ColLot], LotEcartNumber)
	}
	if r[ColIndicator] != IndicatorExhausted {
		t.Errorf("indicator = %q, want %q", r[ColIndicator], IndicatorExhausted)
	}
	if r[ColAdjusted] != "4" {
		t.Errorf("col G = %q, want 4", r[ColAdjusted])
	}
}

func TestFileNames(t *testing.T) {
	meta := Metadata{SessionNum: "SES001", InventoryNum: "INV001", Site: "SITE1"}
	if got := MaskFileName(7, meta); got != "7_INV001_SITE1_MASK.csv" {
		t.Errorf("mask name = %q", got)
	}
	if got := TemplateFileName(7, meta); got != "7_INV001_SITE1_TEMPLATE.xlsx" {
		t.Errorf("template name = %q", got)
	}
	if got := FinalFileName(7, meta); got != "7_INV001_SITE1_FINAL.csv" {
		t.Errorf("final name = %q", got)
	}
}
