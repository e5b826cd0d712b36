package aisle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify_Defaults(t *testing.T) {
	c := NewDefault()
	cases := []struct{ key, want string }{
		{"garlic", Produce},
		{"whole milk", Dairy},
		{"chicken breast", MeatSeafood},
		{"sourdough bread", Bakery},
		{"olive oil", Pantry},
		{"black pepper", Spices},
		{"frozen peas", Frozen},
		{"orange juice", Beverages},
		{"truffle shavings", DefaultAisle},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.key); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestClassify_OrderingWins(t *testing.T) {
	c := NewDefault()
	// Specific rules must beat the general keywords they contain.
	cases := []struct{ key, want string }{
		{"tomato paste", Pantry},
		{"tomato", Produce},
		{"eggplant", Produce},
		{"egg", Dairy},
		{"bell pepper", Produce},
		{"pepper", Spices},
		{"steak", MeatSeafood}, // must not match the "tea" beverage rule
		{"orange juice", Beverages},
		{"orange", Produce},
		{"frozen chicken", Frozen},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.key); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewDefault()
	first := c.Classify("garlic powder")
	for i := 0; i < 5; i++ {
		if got := c.Classify("garlic powder"); got != first {
			t.Fatalf("classification changed between calls: %q vs %q", first, got)
		}
	}
}

func TestLoadFile_ReplacesTable(t *testing.T) {
	c := NewDefault()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `
- keyword: dragonfruit
  aisle: Exotic
- keyword: ""
  aisle: Dropped
`
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("rules = %d, want 1 (empty keyword dropped)", c.Len())
	}
	if got := c.Classify("dragonfruit"); got != "Exotic" {
		t.Errorf("Classify(dragonfruit) = %q, want Exotic", got)
	}
	// Built-in rules are gone after a replace.
	if got := c.Classify("garlic"); got != DefaultAisle {
		t.Errorf("Classify(garlic) after replace = %q, want %q", got, DefaultAisle)
	}
}

func TestLoadFile_EmptyFileRejected(t *testing.T) {
	c := NewDefault()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFile(path); err == nil {
		t.Fatal("empty rules file should be rejected")
	}
	// The prior table survives a failed load.
	if got := c.Classify("garlic"); got != Produce {
		t.Errorf("Classify(garlic) = %q, want %q after failed load", got, Produce)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	c := NewDefault()
	if err := c.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
}
