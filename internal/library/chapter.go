package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Ordinal bounds for a complete collection.
const (
	MinOrdinal = 1
	MaxOrdinal = 81
)

// Chapter is a single immutable chapter of the text.
type Chapter struct {
	Ordinal        int
	Title          string
	OriginalText   string
	Translation    string
	Interpretation string
	Keywords       []string
}

// chapterRecord mirrors one element of the content document. Pointer fields
// let Decode tell a missing field apart from a zero value.
type chapterRecord struct {
	ChapterNumber        *int      `json:"chapter_number"`
	Title                *string   `json:"title"`
	OriginalText         *string   `json:"original_text"`
	ModernTranslation    *string   `json:"modern_translation"`
	ModernInterpretation *string   `json:"modern_interpretation"`
	Keywords             *[]string `json:"keywords"`
}

func (r chapterRecord) chapter() (Chapter, error) {
	switch {
	case r.ChapterNumber == nil:
		return Chapter{}, missingField("chapter_number")
	case r.Title == nil:
		return Chapter{}, missingField("title")
	case r.OriginalText == nil:
		return Chapter{}, missingField("original_text")
	case r.ModernTranslation == nil:
		return Chapter{}, missingField("modern_translation")
	case r.ModernInterpretation == nil:
		return Chapter{}, missingField("modern_interpretation")
	case r.Keywords == nil:
		return Chapter{}, missingField("keywords")
	}
	n := *r.ChapterNumber
	if n < MinOrdinal || n > MaxOrdinal {
		return Chapter{}, fmt.Errorf("chapter_number %d out of range [%d,%d]", n, MinOrdinal, MaxOrdinal)
	}
	return Chapter{
		Ordinal:        n,
		Title:          *r.Title,
		OriginalText:   *r.OriginalText,
		Translation:    *r.ModernTranslation,
		Interpretation: *r.ModernInterpretation,
		Keywords:       slices.Clone(*r.Keywords),
	}, nil
}

// clone returns ch with its own copy of Keywords.
func (ch Chapter) clone() Chapter {
	ch.Keywords = slices.Clone(ch.Keywords)
	return ch
}

func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}

// Collection is the loaded, read-only set of chapters ordered by ordinal.
type Collection struct {
	chapters []Chapter
	index    map[int]int
}

// NewCollection validates chapters and builds a Collection from them.
func NewCollection(chapters []Chapter) (*Collection, error) {
	c := &Collection{
		chapters: make([]Chapter, 0, len(chapters)),
		index:    make(map[int]int, len(chapters)),
	}
	for _, ch := range chapters {
		if ch.Ordinal < MinOrdinal || ch.Ordinal > MaxOrdinal {
			return nil, fmt.Errorf("chapter_number %d out of range [%d,%d]", ch.Ordinal, MinOrdinal, MaxOrdinal)
		}
		if _, dup := c.index[ch.Ordinal]; dup {
			return nil, fmt.Errorf("duplicate chapter_number %d", ch.Ordinal)
		}
		c.index[ch.Ordinal] = -1
		c.chapters = append(c.chapters, ch.clone())
	}
	slices.SortFunc(c.chapters, func(a, b Chapter) int { return a.Ordinal - b.Ordinal })
	for i, ch := range c.chapters {
		c.index[ch.Ordinal] = i
	}
	return c, nil
}

// Decode parses a content document. Anything other than a JSON array of
// complete chapter objects is rejected.
func Decode(r io.Reader) (*Collection, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var records []chapterRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if records == nil {
		return nil, errors.New("decode content: expected a JSON array")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode content: unexpected data after array")
	}

	chapters := make([]Chapter, 0, len(records))
	for i, rec := range records {
		ch, err := rec.chapter()
		if err != nil {
			return nil, fmt.Errorf("chapter at index %d: %w", i, err)
		}
		chapters = append(chapters, ch)
	}
	return NewCollection(chapters)
}

// Len returns the number of chapters.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.chapters)
}

// Chapters returns a copy of every chapter in ordinal order.
func (c *Collection) Chapters() []Chapter {
	if c == nil {
		return nil
	}
	out := make([]Chapter, len(c.chapters))
	for i, ch := range c.chapters {
		out[i] = ch.clone()
	}
	return out
}

// Get returns the chapter with the given ordinal.
func (c *Collection) Get(ordinal int) (Chapter, bool) {
	if c == nil {
		return Chapter{}, false
	}
	i, ok := c.index[ordinal]
	if !ok {
		return Chapter{}, false
	}
	return c.chapters[i].clone(), true
}

// Contains reports whether ordinal is part of the collection.
func (c *Collection) Contains(ordinal int) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[ordinal]
	return ok
}

// Ordinals returns the loaded ordinals in ascending order.
func (c *Collection) Ordinals() []int {
	if c == nil {
		return nil
	}
	out := make([]int, len(c.chapters))
	for i, ch := range c.chapters {
		out[i] = ch.Ordinal
	}
	return out
}

// All iterates over the chapters in ordinal order.
func (c *Collection) All(yield func(Chapter) bool) {
	if c == nil {
		return
	}
	for _, ch := range c.chapters {
		if !yield(ch.clone()) {
			return
		}
	}
}
