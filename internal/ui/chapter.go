package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/five82/tao/internal/library"
)

// maxKeywordHotkeys is how many keywords get a digit shortcut.
const maxKeywordHotkeys = 9

// chapterMarkdown builds the markdown body for ch.
func chapterMarkdown(ch library.Chapter, showOriginal, favorite bool) string {
	var b strings.Builder

	heading := fmt.Sprintf("# Chapter %d", ch.Ordinal)
	if favorite {
		heading += " ★"
	}
	b.WriteString(heading)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "## %s\n\n", ch.Title)

	if showOriginal && strings.TrimSpace(ch.OriginalText) != "" {
		for _, line := range strings.Split(strings.TrimSpace(ch.OriginalText), "\n") {
			b.WriteString("> ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.TrimSpace(ch.Translation))
	b.WriteString("\n\n")

	if interp := strings.TrimSpace(ch.Interpretation); interp != "" {
		b.WriteString("### Interpretation\n\n")
		b.WriteString(interp)
		b.WriteString("\n\n")
	}

	if len(ch.Keywords) > 0 {
		b.WriteString("### Keywords\n\n")
		for i, kw := range ch.Keywords {
			if i < maxKeywordHotkeys {
				fmt.Fprintf(&b, "- `%d` %s\n", i+1, kw)
				continue
			}
			fmt.Fprintf(&b, "- %s\n", kw)
		}
	}

	return b.String()
}

// keywordAt returns the keyword bound to digit key d (1-based).
func keywordAt(ch library.Chapter, d int) (string, bool) {
	if d < 1 || d > maxKeywordHotkeys || d > len(ch.Keywords) {
		return "", false
	}
	return ch.Keywords[d-1], true
}

// markdownRenderer caches a glamour renderer per wrap width and style.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// render returns md rendered for the terminal, falling back to the raw
// markdown if glamour cannot build a renderer.
func (r *markdownRenderer) render(md, style string, width int) string {
	if r.renderer == nil || r.width != width || r.style != style {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			r.renderer = nil
			return md
		}
		r.renderer = tr
		r.width = width
		r.style = style
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// refreshChapter re-renders the current chapter into the viewport.
func (m *Model) refreshChapter() {
	if !m.ready {
		return
	}
	ch, ok := m.session.Current()
	if !ok {
		m.chapter.SetContent(m.theme.Styles().MutedText.Render(
			fmt.Sprintf("Chapter %d is not available.", m.session.CurrentOrdinal())))
		return
	}
	md := chapterMarkdown(ch, m.session.ShowOriginal(), m.session.IsFavorite(ch.Ordinal))
	m.chapter.SetContent(m.markdown.render(md, m.theme.Markdown, textWidth(m.width)))
}

// renderChapter renders the chapter view body.
func (m Model) renderChapter() string {
	return m.chapter.View()
}
