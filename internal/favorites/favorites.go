// Package favorites keeps the set of chapters a reader has marked, persisted
// under a single key of a durable kv.Store.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/five82/tao/internal/kv"
)

// Key is the durable store key holding the JSON array of ordinals.
const Key = "tao-favorites"

// Ledger is the in-memory favorite set plus its write-through persistence.
// It does not check ordinals against the loaded chapters.
type Ledger struct {
	store  kv.Store
	logger *zap.Logger

	// order keeps insertion order for List; set answers membership.
	order []int
	set   map[int]struct{}
}

// Load reads the favorite set from store. A missing key or a value that is
// not a JSON array of integers yields an empty set; Load never fails.
func Load(ctx context.Context, store kv.Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{
		store:  store,
		logger: logger,
		set:    make(map[int]struct{}),
	}

	raw, err := store.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Warn("favorites unreadable, starting empty", zap.Error(err))
		}
		return l
	}

	ordinals, err := decode(raw)
	if err != nil {
		logger.Warn("favorites malformed, starting empty",
			zap.String("key", Key),
			zap.ByteString("value", raw),
			zap.Error(err))
		return l
	}
	for _, n := range ordinals {
		l.add(n)
	}
	logger.Debug("favorites loaded", zap.Int("count", len(l.order)))
	return l
}

// decode parses a JSON array of integers. Null elements are rejected rather
// than read as zero.
func decode(raw []byte) ([]int, error) {
	var elems []*int
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(elems))
	for i, n := range elems {
		if n == nil {
			return nil, fmt.Errorf("element %d is null", i)
		}
		out = append(out, *n)
	}
	return out, nil
}

// IsFavorite reports whether ordinal is marked.
func (l *Ledger) IsFavorite(ordinal int) bool {
	_, ok := l.set[ordinal]
	return ok
}

// Toggle flips ordinal and rewrites the whole set to the store. It returns the
// new state. When the write fails the in-memory change is kept and the error
// is returned.
func (l *Ledger) Toggle(ctx context.Context, ordinal int) (bool, error) {
	var now bool
	if l.IsFavorite(ordinal) {
		l.remove(ordinal)
	} else {
		l.add(ordinal)
		now = true
	}
	if err := l.persist(ctx); err != nil {
		l.logger.Error("persist favorites", zap.Int("ordinal", ordinal), zap.Error(err))
		return now, err
	}
	return now, nil
}

// List returns the marked ordinals in the order they were added.
func (l *Ledger) List() []int {
	return slices.Clone(l.order)
}

// Len returns the number of marked ordinals.
func (l *Ledger) Len() int {
	return len(l.order)
}

func (l *Ledger) add(ordinal int) {
	if _, ok := l.set[ordinal]; ok {
		return
	}
	l.set[ordinal] = struct{}{}
	l.order = append(l.order, ordinal)
}

func (l *Ledger) remove(ordinal int) {
	delete(l.set, ordinal)
	l.order = slices.DeleteFunc(l.order, func(n int) bool { return n == ordinal })
}

func (l *Ledger) persist(ctx context.Context) error {
	ordinals := l.order
	if ordinals == nil {
		ordinals = []int{}
	}
	data, err := json.Marshal(ordinals)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := l.store.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}
