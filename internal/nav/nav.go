// Package nav tracks the chapter a session is showing.
package nav

import (
	"math/rand/v2"

	"github.com/five82/tao/internal/library"
)

// Catalog lists the ordinals that are currently loaded. *library.Store
// satisfies it.
type Catalog interface {
	Ordinals() []int
}

// Controller is the chapter cursor. Prev and Next clamp to
// [library.MinOrdinal, library.MaxOrdinal] and never wrap.
type Controller struct {
	catalog Catalog
	rng     *rand.Rand
	current int
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used by Random.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = rng
	}
}

// New returns a Controller positioned on the first chapter.
func New(catalog Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog: catalog,
		current: library.MinOrdinal,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Current returns the cursor.
func (c *Controller) Current() int {
	return c.current
}

// GoTo moves the cursor to ordinal. Ordinals outside
// [library.MinOrdinal, library.MaxOrdinal] are rejected and leave the cursor
// where it was.
func (c *Controller) GoTo(ordinal int) bool {
	if ordinal < library.MinOrdinal || ordinal > library.MaxOrdinal {
		return false
	}
	c.current = ordinal
	return true
}

// Next advances one chapter unless the cursor is on the last one.
func (c *Controller) Next() bool {
	if c.current >= library.MaxOrdinal {
		return false
	}
	c.current++
	return true
}

// Prev steps back one chapter unless the cursor is on the first one.
func (c *Controller) Prev() bool {
	if c.current <= library.MinOrdinal {
		return false
	}
	c.current--
	return true
}

// Random jumps to a uniformly chosen loaded chapter. It does nothing and
// reports false when no chapters are loaded.
func (c *Controller) Random() (int, bool) {
	var ordinals []int
	if c.catalog != nil {
		ordinals = c.catalog.Ordinals()
	}
	if len(ordinals) == 0 {
		return c.current, false
	}
	c.current = ordinals[c.rng.IntN(len(ordinals))]
	return c.current, true
}
