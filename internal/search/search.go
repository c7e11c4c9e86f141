// Package search filters a chapter collection by a free-text query.
//
// Matching is a case-folded substring test over the title, translation,
// interpretation and every keyword. There is no tokenizing, stemming or
// ranking: results keep the collection's ordinal order, and a one-letter
// query matches every chapter containing that letter.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/tao/internal/library"
)

// Search returns the chapters of c matching query in ordinal order. A query
// that is empty after trimming returns the whole collection.
func Search(c *library.Collection, query string) []library.Chapter {
	if strings.TrimSpace(query) == "" {
		return c.Chapters()
	}
	folder := cases.Fold()
	needle := folder.String(query)

	var out []library.Chapter
	for ch := range c.All {
		if matchFolded(folder, ch, needle) {
			out = append(out, ch)
		}
	}
	return out
}

// Matches reports whether ch matches query. An empty query matches every
// chapter.
func Matches(ch library.Chapter, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	folder := cases.Fold()
	return matchFolded(folder, ch, folder.String(query))
}

func matchFolded(folder cases.Caser, ch library.Chapter, needle string) bool {
	if strings.Contains(folder.String(ch.Title), needle) ||
		strings.Contains(folder.String(ch.Translation), needle) ||
		strings.Contains(folder.String(ch.Interpretation), needle) {
		return true
	}
	for _, kw := range ch.Keywords {
		if strings.Contains(folder.String(kw), needle) {
			return true
		}
	}
	return false
}

// State is the query a session is currently showing and its results.
type State struct {
	query   string
	results []library.Chapter
}

// Set runs query against c and stores the outcome.
func (s *State) Set(c *library.Collection, query string) []library.Chapter {
	s.query = query
	s.results = Search(c, query)
	return s.results
}

// Clear drops the query and its results.
func (s *State) Clear() {
	s.query = ""
	s.results = nil
}

// Query returns the raw query text.
func (s *State) Query() string {
	return s.query
}

// Results returns the last computed results.
func (s *State) Results() []library.Chapter {
	return s.results
}

// Active reports whether a non-blank query is in effect.
func (s *State) Active() bool {
	return strings.TrimSpace(s.query) != ""
}
