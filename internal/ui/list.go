package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tao/internal/library"
)

// listItems returns the chapters shown by the active list view.
func (m Model) listItems() []library.Chapter {
	switch m.view {
	case ViewSearch:
		return m.session.Results()
	case ViewFavorites:
		return m.session.Favorites()
	default:
		return nil
	}
}

// selectedChapter returns the highlighted list entry.
func (m Model) selectedChapter() (library.Chapter, bool) {
	items := m.listItems()
	if m.selected < 0 || m.selected >= len(items) {
		return library.Chapter{}, false
	}
	return items[m.selected], true
}

// moveSelection shifts the highlight by delta, clamped to the list.
func (m *Model) moveSelection(delta int) {
	n := len(m.listItems())
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
}

// listRow formats one result line.
func (m Model) listRow(ch library.Chapter, width int, selected bool) string {
	styles := m.theme.Styles()

	marker := "  "
	if m.session.IsFavorite(ch.Ordinal) {
		marker = "★ "
	}
	text := fmt.Sprintf("%s%2d  %s", marker, ch.Ordinal, ch.Title)
	text = truncate(text, width)

	if selected {
		return styles.Selected.Width(width).Render(text)
	}
	if marker != "  " {
		return styles.StarText.Render(marker) + styles.Text.Render(strings.TrimPrefix(text, marker))
	}
	return styles.Text.Render(text)
}

// renderList renders items into height rows.
func (m Model) renderList(items []library.Chapter, height int, empty string) string {
	styles := m.theme.Styles()
	if len(items) == 0 {
		return styles.MutedText.Render(empty)
	}
	start, end := listWindow(len(items), m.selected, height)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.listRow(items[i], m.width-2, i == m.selected))
	}
	return strings.Join(rows, "\n")
}

// renderSearch renders the search input and its results.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	height := bodyHeight(m.height) - searchInputHeight

	input := m.searchInput.View()
	rule := styles.FaintText.Render(strings.Repeat("─", max(m.width-2, 0)))

	results := m.session.Results()
	empty := "No chapters match."
	if !m.snapshot.Loaded {
		empty = "Chapters are still loading."
	}
	list := m.renderList(results, height, empty)

	return lipgloss.JoinVertical(lipgloss.Left, input, rule, list)
}

// renderFavorites renders the favorites list.
func (m Model) renderFavorites() string {
	return m.renderList(m.session.Favorites(), bodyHeight(m.height),
		"No favorites yet. Press f on a chapter to mark it.")
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
