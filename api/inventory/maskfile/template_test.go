package maskfile

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"Moulinette/api/inventory/engine"
)

func sampleLines() []engine.AggregatedLine {
	return []engine.AggregatedLine{
		{Product: "PROD1", Location: "EMP1", Unit: "UN", Theoretical: decimal.RequireFromString("15.5")},
		{Product: "PROD2", Location: "EMP2", Unit: "KG", Theoretical: decimal.NewFromInt(3)},
	}
}

func TestBuildTemplateLayout(t *testing.T) {
	meta := Metadata{SessionNum: "SES001", InventoryNum: "INV001", Site: "SITE1"}
	content, err := BuildTemplate(meta, sampleLines())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("template does not open: %v", err)
	}
	defer f.Close()

	if f.GetSheetName(0) != TemplateSheet {
		t.Errorf("sheet = %q, want %q", f.GetSheetName(0), TemplateSheet)
	}
	rows, err := f.GetRows(TemplateSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 lines", len(rows))
	}
	for i, h := range templateHeaders {
		if rows[0][i] != h {
			t.Errorf("header %d = %q, want %q", i, rows[0][i], h)
		}
	}
	// data row echoes the session identifiers around the counted column
	r := rows[1]
	if r[0] != "SES001" || r[1] != "INV001" || r[2] != "PROD1" || r[5] != "SITE1" || r[6] != "EMP1" || r[7] != "UN" {
		t.Errorf("unexpected data row: %v", r)
	}
	if r[3] != "15.5" {
		t.Errorf("theoretical = %q, want 15.5", r[3])
	}
	if r[4] != "0" {
		t.Errorf("counted prefill = %q, want 0", r[4])
	}
}

func TestBuildTemplateParseFilledRoundTrip(t *testing.T) {
	meta := Metadata{SessionNum: "SES001", InventoryNum: "INV001", Site: "SITE1"}
	content, err := BuildTemplate(meta, sampleLines())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// operator fills in the first counted quantity
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SetCellValue(TemplateSheet, "E2", 12); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	buf, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	counted, err := ParseFilled(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counted) != 2 {
		t.Fatalf("counted rows = %d, want 2", len(counted))
	}
	if counted[0].Product != "PROD1" || counted[0].Location != "EMP1" {
		t.Errorf("row 0 key = %s/%s", counted[0].Product, counted[0].Location)
	}
	if !counted[0].Counted.Equal(decimal.NewFromInt(12)) {
		t.Errorf("row 0 counted = %s, want 12", counted[0].Counted)
	}
	if !counted[1].Counted.IsZero() {
		t.Errorf("row 1 counted = %s, want 0 (untouched prefill)", counted[1].Counted)
	}
}

func TestParseFilledMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "CODE_ARTICLE")
	f.SetCellValue("Sheet1", "B1", "QUANTITE_REELLE")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	if _, err := ParseFilled(buf.Bytes(), ".xlsx"); err == nil {
		t.Error("expected an error for missing required columns")
	}
}

func TestParseFilledUnsupportedExtension(t *testing.T) {
	if _, err := ParseFilled([]byte("whatever"), ".ods"); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}

func TestParseFilledSkipsBlankRows(t *testing.T) {
	meta := Metadata{SessionNum: "S", InventoryNum: "I", Site: "X"}
	content, err := BuildTemplate(meta, sampleLines()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// a stray value far below the data leaves fully blank key columns
	if err := f.SetCellValue(TemplateSheet, "E5", 9); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	buf, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	counted, err := ParseFilled(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counted) != 1 {
		t.Errorf("counted rows = %d, want 1 (blank keyed rows skipped)", len(counted))
	}
}
