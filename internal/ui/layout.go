package ui

import "time"

// Screen layout.
const (
	// headerHeight and footerHeight are the fixed bars around the body.
	headerHeight = 1
	footerHeight = 1

	// searchInputHeight is the input line plus its rule.
	searchInputHeight = 2

	// LayoutCompactWidth is the threshold below which the footer drops hints.
	LayoutCompactWidth = 80

	// maxTextWidth caps the chapter body so long lines stay readable.
	maxTextWidth = 100
)

// Timing constants.
const (
	// DefaultPollInterval is how often the loader snapshot is polled.
	DefaultPollInterval = 200 * time.Millisecond
)

// bodyHeight returns the rows left for the active view.
func bodyHeight(total int) int {
	h := total - headerHeight - footerHeight
	if h < 1 {
		return 1
	}
	return h
}

// textWidth returns the wrap width for chapter text.
func textWidth(total int) int {
	w := total - 4
	if w > maxTextWidth {
		w = maxTextWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// listWindow returns the [start, end) slice of an n-row list that keeps
// selected visible in height rows.
func listWindow(n, selected, height int) (int, int) {
	if height <= 0 || n <= 0 {
		return 0, 0
	}
	if n <= height {
		return 0, n
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
