package core

import "testing"

func TestResolverCaseInsensitive(t *testing.T) {
	r := NewResolver([]Category{
		{ID: 1, Name: "Food", Icon: "🍽️", Color: "bg-orange-100"},
		{ID: 2, Name: "Bills", Icon: "💳", Color: "bg-purple-100"},
	})

	for _, name := range []string{"Food", "FOOD", "food", "  food "} {
		c, ok := r.Resolve(name)
		if !ok {
			t.Fatalf("expected match for %q", name)
		}
		if c.ID != 1 {
			t.Fatalf("resolved wrong category for %q: %+v", name, c)
		}
	}
}

func TestResolverMiss(t *testing.T) {
	r := NewResolver([]Category{{ID: 1, Name: "Food"}})
	if _, ok := r.Resolve("transport"); ok {
		t.Fatalf("expected miss for unknown name")
	}
	icon, color := r.Display("transport")
	if icon != DefaultIcon || color != DefaultColor {
		t.Fatalf("expected fallback display, got %q %q", icon, color)
	}
}

func TestResolverLastWriteWins(t *testing.T) {
	// Two categories differing only by case cannot both be resolved; the
	// later registration wins.
	r := NewResolver([]Category{
		{ID: 1, Name: "food", Icon: "a"},
		{ID: 2, Name: "Food", Icon: "b"},
	})
	c, ok := r.Resolve("FOOD")
	if !ok || c.ID != 2 {
		t.Fatalf("expected last category to win, got %+v ok=%v", c, ok)
	}
}
