package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tao/internal/library"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	parts := []string{bg.Render("tao", styles.Logo)}

	switch {
	case m.snapshot.Failed():
		parts = append(parts, bg.Render("LOAD FAILED", styles.DangerText))
	case !m.snapshot.Loaded:
		parts = append(parts, bg.Render("loading chapters", styles.MutedText))
	default:
		parts = append(parts, bg.Render(m.viewTitle(), styles.Text))
		if m.view == ViewChapter && m.session.IsFavorite(m.session.CurrentOrdinal()) {
			parts = append(parts, bg.Render("★", styles.StarText))
		}
		if m.session.ShowOriginal() {
			parts = append(parts, bg.Render("original", styles.AccentText))
		}
	}

	content := bg.Join(parts, "  ")
	return bg.FillLine(content, m.width)
}

// viewTitle describes the active view for the header.
func (m Model) viewTitle() string {
	switch m.view {
	case ViewSearch:
		q := strings.TrimSpace(m.searchInput.Value())
		if q == "" {
			return fmt.Sprintf("Search  %d chapters", len(m.session.Results()))
		}
		return fmt.Sprintf("Search %q  %d found", q, len(m.session.Results()))
	case ViewFavorites:
		return fmt.Sprintf("Favorites  %d", len(m.session.Favorites()))
	default:
		return fmt.Sprintf("Chapter %d of %d", m.session.CurrentOrdinal(), library.MaxOrdinal)
	}
}

// renderFooter renders the key hints and the last status message.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	if m.status != "" {
		style := styles.MutedText
		if m.statusErr {
			style = styles.DangerText
		}
		return bg.FillLine(bg.Render(m.status, style), m.width)
	}

	var hints []string
	switch {
	case m.view == ViewSearch && m.searchFocused:
		hints = []string{"enter open", "↑/↓ select", "esc done"}
	case m.view == ViewChapter:
		hints = []string{"n/p next/prev", "r random", "/ search", "f favorite", "o original", "v favorites", "? help"}
	default:
		hints = []string{"j/k select", "enter open", "f favorite", "esc back", "? help"}
	}
	if m.width < LayoutCompactWidth && len(hints) > 3 {
		hints = append(hints[:3:3], "? help")
	}

	rendered := make([]string, 0, len(hints))
	for _, h := range hints {
		rendered = append(rendered, bg.Render(h, styles.MutedText))
	}
	return bg.FillLine(bg.Join(rendered, "  "), m.width)
}

// renderLoading renders the body while chapters are loading or failed.
func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	var msg string
	if m.snapshot.Failed() {
		msg = lipgloss.JoinVertical(lipgloss.Center,
			styles.DangerText.Render("The chapters could not be loaded."),
			"",
			styles.MutedText.Render(m.snapshot.LoadErr.Error()),
			"",
			styles.FaintText.Render("Check the content setting in your config, then restart. Press q to quit."),
		)
	} else {
		msg = m.spinner.View() + " " + styles.MutedText.Render("Loading chapters…")
	}
	return lipgloss.Place(m.width, bodyHeight(m.height), lipgloss.Center, lipgloss.Center, msg)
}
