package pattern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusiveGroup_Evaluate(t *testing.T) {
	a := mustPattern(t, "a", [][]float32{east})
	b := mustPattern(t, "b", [][]float32{north})
	text := [][]float32{east, north, east, {0.6, 0.8}}

	g := NewExclusiveGroup("compass", a, b)
	res, err := g.Evaluate(text, 1)
	require.NoError(t, err)

	require.Len(t, res.Winners, 3)
	assert.Equal(t, 0, res.Winners[0].Pattern)
	assert.Equal(t, 1, res.Winners[1].Pattern)
	assert.Equal(t, 0, res.Winners[2].Pattern)
	assert.InDelta(t, 0, res.Winners[1].Distance, 1e-9)

	assert.Equal(t, 2, res.Ranges[0].Wins)
	assert.Equal(t, 1, res.Ranges[1].Wins)
	assert.InDelta(t, 0, res.Ranges[0].Max, 1e-9)
	assert.Empty(t, res.NeverWinning)

	// every position is kept by exactly one pattern
	for j := range res.Winners {
		kept := 0
		for i := range res.Distances {
			if !math.IsNaN(res.Distances[i][j]) {
				kept++
				assert.Equal(t, res.Winners[j].Pattern, i)
			}
		}
		assert.Equal(t, 1, kept, "position %d", j)
	}
}

func TestExclusiveGroup_NeverWinning(t *testing.T) {
	a := mustPattern(t, "a", [][]float32{east})
	twin := mustPattern(t, "twin", [][]float32{east})
	text := [][]float32{east, north, east}

	g := NewExclusiveGroup("twins", a, twin)
	res, err := g.Evaluate(text, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, res.NeverWinning)
	assert.Equal(t, Range{Min: math.Inf(1), Max: math.Inf(-1)}, res.Ranges[1])
	assert.Equal(t, 3, res.Ranges[0].Wins)
}

func TestExclusiveGroup_Errors(t *testing.T) {
	text := [][]float32{east, north}

	_, err := NewExclusiveGroup("empty").Evaluate(text, 0)
	assert.ErrorIs(t, err, ErrEmptyGroup)

	g := NewExclusiveGroup("g", mustPattern(t, "a", [][]float32{east}))
	_, err = g.Evaluate(text, 2)
	assert.ErrorIs(t, err, ErrInvalidPadding)

	assert.ErrorIs(t, g.Add(nil), ErrMemberRequired)
}

func TestExclusiveGroup_Distances(t *testing.T) {
	a := mustPattern(t, "a", [][]float32{east})
	b := mustPattern(t, "b", [][]float32{north})
	g := NewExclusiveGroup("compass", a, b)

	d, err := g.Distances([][]float32{east, north, {1, 1}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 1 - 1/math.Sqrt2}, d, 1e-6)

	match, err := g.Find([][]float32{north, {1, 1}, east}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, match.Index)
	assert.Len(t, g.Members(), 2)
}

func TestCompound_WeightedBlend(t *testing.T) {
	a := mustPattern(t, "a", [][]float32{east})
	b := mustPattern(t, "b", [][]float32{north})
	text := [][]float32{east, north, east}

	c := NewCompound("blend")
	require.NoError(t, c.Add(a, 1))
	require.NoError(t, c.Add(b, 1))
	d, err := c.Distances(text)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, d, 1e-9)

	repel := NewCompound("repel")
	require.NoError(t, repel.Add(a, 1))
	require.NoError(t, repel.Add(b, -1))
	d, err = repel.Distances(text)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, 0.5, -0.5}, d, 1e-9)

	match, err := repel.Find(text, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, match.Index)
}

func TestCompound_AddReplacesWeight(t *testing.T) {
	a := mustPattern(t, "a", [][]float32{east})

	c := NewCompound("c")
	require.NoError(t, c.Add(a, 1))
	require.NoError(t, c.Add(a, 3))
	assert.Equal(t, 1, c.Len())

	w, ok := c.Weight("a")
	assert.True(t, ok)
	assert.Equal(t, 3.0, w)

	_, ok = c.Weight("missing")
	assert.False(t, ok)
	assert.ErrorIs(t, c.Add(nil, 1), ErrMemberRequired)
}

func TestCompound_Confidence(t *testing.T) {
	a := mustPattern(t, "a", [][]float32{east})
	c := NewCompound("c")
	require.NoError(t, c.Add(a, 2))

	match, err := c.Find([][]float32{east, north, north, north}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, match.Index)
	assert.False(t, match.Degenerate)
	// std 0.433, |0 - 0.75| = 0.75
	assert.InDelta(t, math.Sqrt(0.1875)/0.75, match.Confidence, 1e-9)

	flat, err := c.Find(repeat(north, 4), 0)
	require.NoError(t, err)
	assert.True(t, flat.Degenerate)
	assert.Zero(t, flat.Confidence)
}

func TestCompound_Errors(t *testing.T) {
	text := [][]float32{east}

	_, err := NewCompound("empty").Distances(text)
	assert.ErrorIs(t, err, ErrEmptyGroup)

	c := NewCompound("zero")
	require.NoError(t, c.Add(mustPattern(t, "a", [][]float32{east}), 0))
	_, err = c.Distances(text)
	assert.ErrorIs(t, err, ErrZeroWeight)
}
