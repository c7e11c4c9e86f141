package ui

import "testing"

func TestListWindow(t *testing.T) {
	tests := []struct {
		name                string
		n, selected, height int
		start, end          int
	}{
		{"fits", 5, 3, 10, 0, 5},
		{"top", 81, 0, 10, 0, 10},
		{"middle", 81, 40, 10, 35, 45},
		{"bottom", 81, 80, 10, 71, 81},
		{"empty", 0, 0, 10, 0, 0},
		{"no room", 10, 2, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := listWindow(tt.n, tt.selected, tt.height)
			if start != tt.start || end != tt.end {
				t.Fatalf("listWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.n, tt.selected, tt.height, start, end, tt.start, tt.end)
			}
			if tt.n > 0 && tt.height > 0 && (tt.selected < start || tt.selected >= end) {
				t.Fatalf("selected %d outside window [%d, %d)", tt.selected, start, end)
			}
		})
	}
}

func TestBodyAndTextWidth(t *testing.T) {
	if got := bodyHeight(30); got != 28 {
		t.Errorf("bodyHeight(30) = %d, want 28", got)
	}
	if got := bodyHeight(1); got != 1 {
		t.Errorf("bodyHeight(1) = %d, want 1", got)
	}
	if got := textWidth(200); got != maxTextWidth {
		t.Errorf("textWidth(200) = %d, want %d", got, maxTextWidth)
	}
	if got := textWidth(10); got != 20 {
		t.Errorf("textWidth(10) = %d, want 20", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a longer title", 6); got != "a lon…" {
		t.Errorf("truncate long = %q, want %q", got, "a lon…")
	}
	if got := truncate("x", 0); got != "" {
		t.Errorf("truncate zero width = %q", got)
	}
}
