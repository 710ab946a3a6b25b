package util

import (
	"reflect"
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol("  aapl "); got != "AAPL" {
		t.Fatalf("unexpected symbol %q", got)
	}
}

func TestValidSymbol(t *testing.T) {
	cases := map[string]bool{
		"AAPL":        true,
		"BRK1":        true,
		"A":           true,
		"":            false,
		"TOOLONGNAME": false,
		"BRK.B":       false,
		"aapl":        false,
	}
	for sym, want := range cases {
		if got := ValidSymbol(sym); got != want {
			t.Fatalf("ValidSymbol(%q) = %v, want %v", sym, got, want)
		}
	}
}

func TestSplitSymbols(t *testing.T) {
	got := SplitSymbols(" aapl, TSLA ,,msft")
	want := []string{"AAPL", "TSLA", "MSFT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected split %v", got)
	}
}
