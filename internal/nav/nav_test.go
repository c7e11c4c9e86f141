package nav

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tao/internal/library"
)

type ordinals []int

func (o ordinals) Ordinals() []int { return o }

func full() ordinals {
	out := make(ordinals, 0, library.MaxOrdinal)
	for n := library.MinOrdinal; n <= library.MaxOrdinal; n++ {
		out = append(out, n)
	}
	return out
}

func TestController_StartsAtOne(t *testing.T) {
	c := New(full())
	assert.Equal(t, 1, c.Current())
}

func TestController_PrevClampsAtOne(t *testing.T) {
	c := New(full())
	assert.False(t, c.Prev())
	assert.Equal(t, 1, c.Current())
}

func TestController_NextReachesLastAndStops(t *testing.T) {
	c := New(full())
	for i := 0; i < 80; i++ {
		require.True(t, c.Next(), "step %d", i)
	}
	assert.Equal(t, 81, c.Current())

	assert.False(t, c.Next())
	assert.Equal(t, 81, c.Current())

	assert.True(t, c.Prev())
	assert.Equal(t, 80, c.Current())
}

func TestController_GoToRejectsOutOfRange(t *testing.T) {
	c := New(full())
	require.True(t, c.GoTo(40))

	for _, n := range []int{0, -3, 82, 1000} {
		assert.False(t, c.GoTo(n), "GoTo(%d)", n)
		assert.Equal(t, 40, c.Current())
	}

	assert.True(t, c.GoTo(81))
	assert.Equal(t, 81, c.Current())
}

func TestController_RandomStaysInCatalog(t *testing.T) {
	catalog := ordinals{3, 9, 27, 81}
	c := New(catalog, WithRand(rand.New(rand.NewPCG(1, 2))))

	allowed := map[int]bool{3: true, 9: true, 27: true, 81: true}
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n, ok := c.Random()
		require.True(t, ok)
		require.True(t, allowed[n], "Random() = %d, not in catalog", n)
		assert.Equal(t, n, c.Current())
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestController_RandomDefaultSource(t *testing.T) {
	c := New(full())
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n, ok := c.Random()
		require.True(t, ok)
		require.GreaterOrEqual(t, n, library.MinOrdinal)
		require.LessOrEqual(t, n, library.MaxOrdinal)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestController_RandomWithNothingLoaded(t *testing.T) {
	c := New(ordinals(nil))
	c.GoTo(12)

	n, ok := c.Random()
	assert.False(t, ok)
	assert.Equal(t, 12, n)

	var store library.Store
	c = New(&store)
	_, ok = c.Random()
	assert.False(t, ok)
}
