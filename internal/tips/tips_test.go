package tips

import (
	"math/rand"
	"testing"
)

func TestTableIntegrity(t *testing.T) {
	if len(All) != 15 {
		t.Fatalf("expected 15 tips, got %d", len(All))
	}
	seen := make(map[string]bool)
	for _, tip := range All {
		if tip.ID == "" || tip.Title == "" || tip.Content == "" {
			t.Fatalf("tip with empty field: %+v", tip)
		}
		if seen[tip.ID] {
			t.Fatalf("duplicate tip id %q", tip.ID)
		}
		seen[tip.ID] = true
		switch tip.Category {
		case CategoryFocus, CategoryMemory, CategoryProductivity, CategoryWellbeing:
		default:
			t.Fatalf("tip %q has unknown category %q", tip.ID, tip.Category)
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(42)))
	b := Random(rand.New(rand.NewSource(42)))
	if a.ID != b.ID {
		t.Fatalf("same seed should pick the same tip: %q vs %q", a.ID, b.ID)
	}
}

func TestRandomCoversTable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[Random(rng).ID] = true
	}
	if len(seen) != len(All) {
		t.Fatalf("expected all %d tips reachable, saw %d", len(All), len(seen))
	}
}

func TestByCategory(t *testing.T) {
	total := 0
	for _, c := range []Category{CategoryFocus, CategoryMemory, CategoryProductivity, CategoryWellbeing} {
		got := ByCategory(c)
		for _, tip := range got {
			if tip.Category != c {
				t.Fatalf("tip %q leaked into category %q", tip.ID, c)
			}
		}
		total += len(got)
	}
	if total != len(All) {
		t.Fatalf("categories should partition the table: %d vs %d", total, len(All))
	}
}

func TestByCategoryUnknown(t *testing.T) {
	if got := ByCategory("nope"); len(got) != 0 {
		t.Fatalf("expected no tips, got %d", len(got))
	}
}
