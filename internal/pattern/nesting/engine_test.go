package nesting_test

import (
	"testing"

	"polygo/internal/pattern/geometry"
	"polygo/internal/pattern/nesting"
	"polygo/internal/pattern/scheme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaledSeed(n int) *geometry.Polygon {
	return geometry.CreateRegular(n).ScaleTo(500, 500, 10)
}

func relative(amount float64, d scheme.Direction) nesting.Params {
	return nesting.Params{Mode: scheme.Relative, Amount: amount, Direction: d, Infinite: true}
}

func TestTriangleConverges(t *testing.T) {
	e := nesting.NewWithParams(scaledSeed(3), relative(5, scheme.Clockwise))

	prev := 0.0
	for i := 0; ; i++ {
		require.Less(t, i, 500, "must converge in bounded steps")
		if _, ok := e.Next(); !ok {
			break
		}
		if i > 0 {
			assert.Less(t, e.LastDisplacement(), prev, "step %d", i)
		}
		prev = e.LastDisplacement()
	}

	assert.Equal(t, nesting.Terminated, e.State())
	assert.Equal(t, nesting.Converged, e.Reason())
	assert.Greater(t, e.Iteration(), 10)

	_, ok := e.Next()
	assert.False(t, ok, "terminated is final")
	assert.Nil(t, e.PeekNext())
}

func TestCounterclockwiseConverges(t *testing.T) {
	seq, reason := nesting.Sequence(scaledSeed(5), relative(10, scheme.Counterclockwise))
	assert.Equal(t, nesting.Converged, reason)
	assert.Greater(t, len(seq), 2)

	// Each vertex moves toward its previous neighbor.
	seed, first := seq[0], seq[1]
	for v := 0; v < seed.Len(); v++ {
		toPrev := geometry.Distance(first.Vertices[v], seed.Vertex(v-1))
		side := geometry.Distance(seed.Vertex(v), seed.Vertex(v-1))
		assert.InDelta(t, side*0.9, toPrev, 1e-9)
	}
}

func TestFixedDisplacementCollapse(t *testing.T) {
	seed := scaledSeed(4)
	side := geometry.Distance(seed.Vertex(0), seed.Vertex(1))

	prm := nesting.Params{Mode: scheme.Fixed, Amount: side - 1, Infinite: true}
	seq, reason := nesting.Sequence(seed, prm)

	require.Len(t, seq, 1)
	assert.Equal(t, seed.Vertices, seq[0].Vertices)
	assert.Equal(t, nesting.Degenerate, reason)
}

func TestFixedDisplacementStops(t *testing.T) {
	prm := nesting.Params{Mode: scheme.Fixed, Amount: 20, Infinite: true}
	seq, reason := nesting.Sequence(scaledSeed(3), prm)

	assert.Equal(t, nesting.Degenerate, reason)
	assert.Greater(t, len(seq), 1)
	last := seq[len(seq)-1]
	assert.Less(t, geometry.Distance(last.Vertex(0), last.Vertex(1)), 21.0+1e-9)
}

func TestFiniteDepth(t *testing.T) {
	prm := relative(5, scheme.Clockwise)
	prm.Infinite = false
	prm.Iterations = 7

	seq, reason := nesting.Sequence(scaledSeed(6), prm)
	assert.Len(t, seq, 8)
	assert.Equal(t, nesting.DepthReached, reason)
}

func TestPeekDoesNotAdvance(t *testing.T) {
	prm := relative(5, scheme.Clockwise)
	prm.Infinite = false
	prm.Iterations = 2
	e := nesting.NewWithParams(scaledSeed(3), prm)

	peek := e.PeekNext()
	require.NotNil(t, peek)
	assert.Equal(t, 0, e.Iteration())
	assert.Equal(t, nesting.Iterating, e.State())

	next, ok := e.Next()
	require.True(t, ok)
	assert.Equal(t, peek.Vertices, next.Vertices)

	require.NotNil(t, e.PeekNext())
	_, ok = e.Next()
	require.True(t, ok)
	assert.Equal(t, 2, e.Iteration())

	assert.Nil(t, e.PeekNext(), "no lookahead past the last polygon")
	assert.Equal(t, nesting.Iterating, e.State())
}

func TestNewReadsScheme(t *testing.T) {
	s := scheme.New()
	require.True(t, s.SetInfinite(false))
	require.True(t, s.SetIterations(3))

	seed := s.BasePolygon().ScaleTo(300, 300, 10)
	e := nesting.New(seed, s)
	n := 0
	for {
		if _, ok := e.Next(); !ok {
			break
		}
		n++
	}
	assert.Equal(t, 3, n)
	assert.Equal(t, nesting.DepthReached, e.Reason())
}

func TestForward(t *testing.T) {
	assert.Equal(t, 1, nesting.Forward(0, 4, scheme.Clockwise))
	assert.Equal(t, 0, nesting.Forward(3, 4, scheme.Clockwise))
	assert.Equal(t, 3, nesting.Forward(0, 4, scheme.Counterclockwise))
	assert.Equal(t, 1, nesting.Forward(2, 4, scheme.Counterclockwise))
}
