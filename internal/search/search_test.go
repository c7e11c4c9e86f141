package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tao/internal/library"
)

var words = []string{"water", "Valley", "sage", "Mother", "Heaven", "emptiness", "Virtue", "reed", "child", "Uncarved Block"}

func fixture(t *testing.T) *library.Collection {
	t.Helper()
	chapters := make([]library.Chapter, 0, library.MaxOrdinal)
	for n := library.MaxOrdinal; n >= library.MinOrdinal; n-- {
		ch := library.Chapter{
			Ordinal:        n,
			Title:          fmt.Sprintf("Chapter %d %s", n, words[n%len(words)]),
			OriginalText:   "道可道非常道",
			Translation:    "The " + words[(n+3)%len(words)] + " flows",
			Interpretation: "On " + words[(n*7)%len(words)],
			Keywords:       []string{words[(n*5)%len(words)], "Balance"},
		}
		if n == 1 {
			ch.Title = "Tao"
			ch.Keywords = []string{"Way", "Name"}
		}
		chapters = append(chapters, ch)
	}
	coll, err := library.NewCollection(chapters)
	require.NoError(t, err)
	return coll
}

// contains is the plain reference: lower-case every field and look for q.
func contains(ch library.Chapter, q string) bool {
	q = strings.ToLower(q)
	fields := append([]string{ch.Title, ch.Translation, ch.Interpretation}, ch.Keywords...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func ordinals(chapters []library.Chapter) []int {
	out := make([]int, len(chapters))
	for i, ch := range chapters {
		out[i] = ch.Ordinal
	}
	return out
}

func TestSearch_EmptyQueryReturnsEverything(t *testing.T) {
	coll := fixture(t)
	for _, q := range []string{"", "   ", "\t\n"} {
		got := Search(coll, q)
		assert.Equal(t, coll.Ordinals(), ordinals(got), "query %q", q)
	}
}

func TestSearch_SoundAndComplete(t *testing.T) {
	coll := fixture(t)
	queries := []string{"a", "WATER", "valley", "Mot", "balance", "chapter 1", "uncarved b", "flows", "zzz", "道"}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got := Search(coll, q)
			in := make(map[int]bool, len(got))
			for _, ch := range got {
				in[ch.Ordinal] = true
				assert.True(t, contains(ch, q), "chapter %d returned for %q without a match", ch.Ordinal, q)
			}
			for ch := range coll.All {
				if !in[ch.Ordinal] {
					assert.False(t, contains(ch, q), "chapter %d missing for %q", ch.Ordinal, q)
				}
			}
		})
	}
}

func TestSearch_OriginalTextIsNotSearched(t *testing.T) {
	coll := fixture(t)
	assert.Empty(t, Search(coll, "道可道"))
}

func TestSearch_KeepsOrdinalOrder(t *testing.T) {
	got := ordinals(Search(fixture(t), "a"))
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i])
	}
}

func TestSearch_KeywordScenario(t *testing.T) {
	coll := fixture(t)

	got := Search(coll, "way")
	assert.Contains(t, ordinals(got), 1)

	assert.Empty(t, Search(coll, "nonexistent-token"))
}

func TestSearch_UnicodeFolding(t *testing.T) {
	coll, err := library.NewCollection([]library.Chapter{
		{Ordinal: 1, Title: "STRASSE"},
		{Ordinal: 2, Title: "Ärger"},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, ordinals(Search(coll, "straße")))
	assert.Equal(t, []int{2}, ordinals(Search(coll, "äRGER")))
}

func TestMatches(t *testing.T) {
	ch := library.Chapter{Ordinal: 1, Title: "Tao", Keywords: []string{"Way"}}
	assert.True(t, Matches(ch, "WAY"))
	assert.True(t, Matches(ch, "  "))
	assert.False(t, Matches(ch, "river"))
}

func TestState(t *testing.T) {
	coll := fixture(t)
	var s State
	assert.False(t, s.Active())

	results := s.Set(coll, "way")
	assert.True(t, s.Active())
	assert.Equal(t, "way", s.Query())
	assert.Equal(t, results, s.Results())

	s.Set(coll, "  ")
	assert.False(t, s.Active())
	assert.Len(t, s.Results(), coll.Len())

	s.Clear()
	assert.Equal(t, "", s.Query())
	assert.Nil(t, s.Results())
}
