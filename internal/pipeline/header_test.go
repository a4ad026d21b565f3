package pipeline

import "testing"

func TestLocateHeader(t *testing.T) {
	wide := []string{"Nr", "City", "Address", "Base", "Height", "Size", "Rent", "Start", "End"}

	grid := [][]string{
		{"Oferta 2024"},
		{"", "Contact:", "vanzari@example.com"},
		wide,
		{"1", "Bucuresti", "Str. Unirii 1", "3", "2", "3x2", "500", "01/05/24", "30/06/24"},
	}
	if got := LocateHeader(grid, 9); got != 2 {
		t.Fatalf("header row = %d want 2", got)
	}

	// Whitespace-only cells do not count as populated.
	narrow := [][]string{
		{"Nr", " ", "Address", "Base", "", "Size", "Rent", "Start", "End"},
		{"1", "Bucuresti", "Str. Unirii 1"},
	}
	if got := LocateHeader(narrow, 9); got != -1 {
		t.Fatalf("header row = %d want -1", got)
	}

	if got := LocateHeader(nil, 9); got != -1 {
		t.Fatalf("empty grid = %d want -1", got)
	}
}
