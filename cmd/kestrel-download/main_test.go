package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveSymbols_FlagList(t *testing.T) {
	symbols, err := resolveSymbols("aapl, msft ,AAPL,", "")
	if err != nil {
		t.Fatalf("resolveSymbols() error = %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "MSFT" {
		t.Errorf("symbols = %v, want [AAPL MSFT] uppercased and deduplicated", symbols)
	}
}

func TestResolveSymbols_FileWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.txt")
	content := "# watchlist\nGOOG\n\nmsft\nGOOG\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write symbols file: %v", err)
	}

	symbols, err := resolveSymbols("aapl", path)
	if err != nil {
		t.Fatalf("resolveSymbols() error = %v", err)
	}
	want := []string{"AAPL", "GOOG", "MSFT"}
	if len(symbols) != len(want) {
		t.Fatalf("symbols = %v, want %v", symbols, want)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbols[%d] = %q, want %q", i, symbols[i], want[i])
		}
	}
}

func TestResolveSymbols_MissingFile(t *testing.T) {
	if _, err := resolveSymbols("", "does-not-exist.txt"); err == nil {
		t.Error("expected error for missing symbols file")
	}
}
