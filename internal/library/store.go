package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

var (
	// ErrNotLoaded is returned when chapters are requested before a load succeeded.
	ErrNotLoaded = errors.New("chapters not loaded")
	// ErrLoadAttempted is returned by a second Load on the same Store.
	ErrLoadAttempted = errors.New("chapters already loaded or load failed")
)

// Source opens the content document. It is implemented by the content package.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// LoadError reports a content source that could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load chapters from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type loadState int

const (
	stateUnloaded loadState = iota
	stateLoading
	stateLoaded
	stateFailed
)

// Snapshot describes the store's load state at a point in time.
type Snapshot struct {
	Loaded   bool
	Loading  bool
	Chapters int
	LoadedAt time.Time
	LoadErr  error
}

// Failed reports whether the one load attempt failed.
func (s Snapshot) Failed() bool {
	return s.LoadErr != nil
}

// Store holds the session's chapter collection. It is populated at most once;
// consumers see either nothing or the complete collection.
//
// The zero value is ready to use.
type Store struct {
	mu       sync.RWMutex
	state    loadState
	coll     *Collection
	loadedAt time.Time
	loadErr  error
}

// Load fetches and decodes the content document from src. Only the first call
// does any work; a failure is terminal for the store.
func (s *Store) Load(ctx context.Context, src Source) error {
	s.mu.Lock()
	if s.state != stateUnloaded {
		s.mu.Unlock()
		return ErrLoadAttempted
	}
	s.state = stateLoading
	s.mu.Unlock()

	coll, err := fetch(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = stateFailed
		s.loadErr = err
		return err
	}
	s.state = stateLoaded
	s.coll = coll
	s.loadedAt = time.Now()
	return nil
}

func fetch(ctx context.Context, src Source) (*Collection, error) {
	if src == nil {
		return nil, &LoadError{Source: "<nil>", Err: errors.New("no content source configured")}
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	defer func() { _ = rc.Close() }()

	coll, err := Decode(rc)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	return coll, nil
}

// Collection returns the loaded collection, or ErrNotLoaded.
func (s *Store) Collection() (*Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != stateLoaded {
		return nil, ErrNotLoaded
	}
	return s.coll, nil
}

// Get returns the chapter for ordinal. It reports false when the store is not
// loaded or the ordinal is absent.
func (s *Store) Get(ordinal int) (Chapter, bool) {
	coll, err := s.Collection()
	if err != nil {
		return Chapter{}, false
	}
	return coll.Get(ordinal)
}

// Ordinals returns the loaded ordinals, or nil before a successful load.
func (s *Store) Ordinals() []int {
	coll, err := s.Collection()
	if err != nil {
		return nil
	}
	return coll.Ordinals()
}

// Snapshot returns the current load state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Loaded:   s.state == stateLoaded,
		Loading:  s.state == stateLoading,
		Chapters: s.coll.Len(),
		LoadedAt: s.loadedAt,
		LoadErr:  s.loadErr,
	}
}
