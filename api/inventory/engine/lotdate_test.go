package engine

import (
	"testing"
	"time"
)

func TestExtractLotDate(t *testing.T) {
	tests := []struct {
		lot  string
		want string
		ok   bool
	}{
		{"ABC010124", "2024-01-01", true},
		{"ABIDJ150323", "2023-03-15", true},
		{"LOT010324", "2024-03-01", true},
		{"ABC01012499", "2024-01-01", true}, // trailing digits ignored
		{"LOT311299", "1999-12-31", true},
		{"AB010124", "", false},      // prefix too short
		{"ABCDEF010124", "", false},  // prefix too long
		{"abc010124", "", false},     // lowercase prefix
		{"ABC320124", "", false},     // day 32
		{"ABC011324", "", false},     // month 13
		{"ABC000124", "", false},     // day 0
		{"PRODUIT", "", false},       // no digits
		{"010124", "", false},        // date without prefix
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ExtractLotDate(tc.lot)
		if ok != tc.ok {
			t.Errorf("ExtractLotDate(%q): ok = %v, want %v", tc.lot, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		want, err := time.Parse("2006-01-02", tc.want)
		if err != nil {
			t.Fatalf("bad test date %q: %v", tc.want, err)
		}
		if !got.Equal(want) {
			t.Errorf("ExtractLotDate(%q) = %s, want %s", tc.lot, got.Format("2006-01-02"), tc.want)
		}
	}
}
