// Package session ties the chapter store, favorites ledger, search state and
// navigation cursor into one explicit, per-reader state object.
//
// Nothing here is package-level: two Sessions in one process share no state.
// Every method runs synchronously on the caller's goroutine; a Session is
// meant to be driven by a single actor (the UI loop or a CLI command). The
// only shared piece is the library.Store, which tolerates a concurrent loader.
//
// Navigation and search are exclusive view modes over one cursor: any
// navigation clears the active query.
package session

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/tao/internal/favorites"
	"github.com/five82/tao/internal/library"
	"github.com/five82/tao/internal/nav"
	"github.com/five82/tao/internal/search"
)

// Session is one reader's state.
type Session struct {
	id     string
	logger *zap.Logger

	store  *library.Store
	ledger *favorites.Ledger
	cursor *nav.Controller
	query  search.State

	showOriginal bool
}

// Option configures a Session.
type Option func(*Session)

// WithNavOptions passes options through to the navigation controller.
func WithNavOptions(opts ...nav.Option) Option {
	return func(s *Session) {
		s.cursor = nav.New(s.store, opts...)
	}
}

// WithShowOriginal sets the initial original-text toggle.
func WithShowOriginal(show bool) Option {
	return func(s *Session) {
		s.showOriginal = show
	}
}

// New builds a Session over store and ledger.
func New(store *library.Store, ledger *favorites.Ledger, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	s := &Session{
		id:     id,
		logger: logger.With(zap.String("session", id)),
		store:  store,
		ledger: ledger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cursor == nil {
		s.cursor = nav.New(store)
	}
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *zap.Logger {
	return s.logger
}

// Store returns the chapter store.
func (s *Session) Store() *library.Store {
	return s.store
}

// Loaded reports whether chapters are available.
func (s *Session) Loaded() bool {
	return s.store.Snapshot().Loaded
}

// Chapters returns every loaded chapter, or nil before loading.
func (s *Session) Chapters() []library.Chapter {
	coll, err := s.store.Collection()
	if err != nil {
		return nil
	}
	return coll.Chapters()
}

// Search sets the active query and returns the matching chapters. Before the
// chapters are loaded it records the query and returns nothing.
func (s *Session) Search(query string) []library.Chapter {
	coll, err := s.store.Collection()
	if err != nil {
		s.query.Set(nil, query)
		return nil
	}
	results := s.query.Set(coll, query)
	s.logger.Debug("search", zap.String("query", query), zap.Int("results", len(results)))
	return results
}

// SearchKeyword searches for a chapter keyword, as when a keyword tag is
// selected.
func (s *Session) SearchKeyword(keyword string) []library.Chapter {
	return s.Search(keyword)
}

// Query returns the active query text.
func (s *Session) Query() string {
	return s.query.Query()
}

// Results returns the results of the active query.
func (s *Session) Results() []library.Chapter {
	return s.query.Results()
}

// Searching reports whether a non-blank query is active.
func (s *Session) Searching() bool {
	return s.query.Active()
}

// ClearSearch drops the active query.
func (s *Session) ClearSearch() {
	s.query.Clear()
}

// CurrentOrdinal returns the cursor.
func (s *Session) CurrentOrdinal() int {
	return s.cursor.Current()
}

// Current returns the chapter under the cursor, if loaded.
func (s *Session) Current() (library.Chapter, bool) {
	return s.store.Get(s.cursor.Current())
}

// Next moves to the following chapter and leaves search mode.
func (s *Session) Next() bool {
	s.query.Clear()
	return s.cursor.Next()
}

// Prev moves to the preceding chapter and leaves search mode.
func (s *Session) Prev() bool {
	s.query.Clear()
	return s.cursor.Prev()
}

// GoTo jumps to ordinal and leaves search mode. Out-of-range ordinals are
// rejected.
func (s *Session) GoTo(ordinal int) bool {
	s.query.Clear()
	ok := s.cursor.GoTo(ordinal)
	if !ok {
		s.logger.Debug("goto rejected", zap.Int("ordinal", ordinal))
	}
	return ok
}

// Random jumps to a random loaded chapter and leaves search mode.
func (s *Session) Random() (int, bool) {
	s.query.Clear()
	return s.cursor.Random()
}

// IsFavorite reports whether ordinal is marked.
func (s *Session) IsFavorite(ordinal int) bool {
	return s.ledger.IsFavorite(ordinal)
}

// ToggleFavorite flips ordinal in the ledger and returns the new state.
func (s *Session) ToggleFavorite(ctx context.Context, ordinal int) (bool, error) {
	return s.ledger.Toggle(ctx, ordinal)
}

// ToggleCurrentFavorite flips the chapter under the cursor.
func (s *Session) ToggleCurrentFavorite(ctx context.Context) (bool, error) {
	return s.ledger.Toggle(ctx, s.cursor.Current())
}

// FavoriteOrdinals returns every marked ordinal in the order it was added.
func (s *Session) FavoriteOrdinals() []int {
	return s.ledger.List()
}

// Favorites returns the loaded chapters that are marked, in ordinal order.
// Marked ordinals that are not loaded are skipped.
func (s *Session) Favorites() []library.Chapter {
	ordinals := s.ledger.List()
	slices.Sort(ordinals)
	out := make([]library.Chapter, 0, len(ordinals))
	for _, n := range ordinals {
		if ch, ok := s.store.Get(n); ok {
			out = append(out, ch)
		}
	}
	return out
}

// ShowOriginal reports whether the original text is displayed.
func (s *Session) ShowOriginal() bool {
	return s.showOriginal
}

// SetShowOriginal sets the original-text toggle.
func (s *Session) SetShowOriginal(show bool) {
	s.showOriginal = show
}

// ToggleOriginal flips the original-text toggle and returns the new value.
func (s *Session) ToggleOriginal() bool {
	s.showOriginal = !s.showOriginal
	return s.showOriginal
}
