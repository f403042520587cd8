package geometry_test

import (
	"encoding/json"
	"math"
	"testing"

	"polygo/internal/pattern/geometry"

	"github.com/jbeda/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSamePolygon(t *testing.T, want, got *geometry.Polygon, tol float64) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for v := range want.Vertices {
		assert.InDelta(t, want.Vertices[v].X, got.Vertices[v].X, tol, "vertex %d x", v)
		assert.InDelta(t, want.Vertices[v].Y, got.Vertices[v].Y, tol, "vertex %d y", v)
	}
}

func TestCreateRegular(t *testing.T) {
	for n := 3; n <= 20; n++ {
		p := geometry.CreateRegular(n)
		require.Equal(t, n, p.Len())
		assert.Equal(t, geom.Coord{}, p.Vertices[0], "vertex 0 at origin")

		want := float64(180*(n-2)) / float64(n)
		for i, a := range p.Angles() {
			assert.InDelta(t, want, a, 1e-9, "n=%d angle %d", n, i)
		}
		for i := 0; i < n; i++ {
			assert.InDelta(t, 1.0, geometry.Distance(p.Vertex(i), p.Vertex(i+1)), 1e-9)
		}
		assert.True(t, p.IsValid(), "regular %d-gon", n)
	}
}

func TestAngleSumInvariant(t *testing.T) {
	m := geometry.NewModel(5)
	m.Rotate(33)
	m.Stretch(1.05)
	m.SetAngle(1, 120)
	m.SetAngle(3, 95)

	p := m.Polygon()
	require.True(t, p.IsValid())
	sum := 0.0
	for _, a := range p.Angles() {
		assert.GreaterOrEqual(t, a, geometry.MinAngle)
		assert.LessOrEqual(t, a, geometry.MaxAngle)
		sum += a
	}
	assert.Equal(t, 180*3, int(math.Round(sum)))
}

func TestRotateRoundTrip(t *testing.T) {
	for _, d := range []float64{1, 45, 90, -37, 180} {
		m := geometry.NewModel(6)
		m.SetAngle(2, 100)
		before := m.Polygon()

		m.Rotate(d)
		m.Rotate(-d)

		assertSamePolygon(t, before, m.Polygon(), 1e-9)
	}
}

func TestRotateKeepsShape(t *testing.T) {
	m := geometry.NewModel(4)
	require.True(t, m.SetAngle(0, 70))
	before := m.Angles()

	m.Rotate(60)

	after := m.Angles()
	for i := range before {
		assert.InDelta(t, before[i], after[i], 1e-9)
	}
	assert.Equal(t, geom.Coord{}, m.Polygon().Vertices[0])
}

func TestSetAngleToCurrentIsNoop(t *testing.T) {
	m := geometry.NewModel(5)
	require.True(t, m.Stretch(1.05))
	before := m.Polygon()

	angles := m.Angles()
	require.True(t, m.SetAngle(2, angles[2]))

	assertSamePolygon(t, before, m.Polygon(), 1e-9)
}

func TestSetAngle(t *testing.T) {
	m := geometry.NewModel(4)
	require.True(t, m.SetAngle(1, 60))

	angles := m.Angles()
	assert.InDelta(t, 60, angles[1], 1e-9)
	assert.InDelta(t, 120, angles[2], 1e-9, "next vertex absorbs the change")
	assert.InDelta(t, 90, angles[3], 1e-9)
	assert.InDelta(t, 90, angles[0], 1e-9)
}

func TestSetAngleRejected(t *testing.T) {
	m := geometry.NewModel(3)
	before := m.Polygon()

	// the next angle would have to drop to 5 degrees
	assert.False(t, m.SetAngle(0, 115))
	assertSamePolygon(t, before, m.Polygon(), 0)

	assert.False(t, m.SetAngle(7, 50), "index out of range")
	assert.False(t, m.SetAngle(-1, 50))
}

func TestStretch(t *testing.T) {
	m := geometry.NewModel(4)
	before := m.Polygon()

	require.True(t, m.Stretch(1.05))
	after := m.Polygon()
	for v := range before.Vertices {
		assert.InDelta(t, before.Vertices[v].X*1.05, after.Vertices[v].X, 1e-12)
		assert.Equal(t, before.Vertices[v].Y, after.Vertices[v].Y)
	}
}

func TestStretchRejectedAtLimit(t *testing.T) {
	m := geometry.NewModel(3)

	applied := 0
	for i := 0; i < 200; i++ {
		if !m.Stretch(1.05) {
			break
		}
		applied++
	}
	require.Less(t, applied, 200, "stretching must eventually hit the angle limit")

	before := m.Polygon()
	assert.False(t, m.Stretch(1.05))
	assertSamePolygon(t, before, m.Polygon(), 0)
	assert.True(t, m.Polygon().IsValid())
}

func TestIsValid(t *testing.T) {
	bowtie := &geometry.Polygon{Vertices: []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	assert.False(t, bowtie.IsValid())

	sliver := &geometry.Polygon{Vertices: []geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 0.2}}}
	assert.False(t, sliver.IsValid())

	assert.False(t, (&geometry.Polygon{Vertices: []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}}).IsValid())
}

func TestScaleTo(t *testing.T) {
	square := geometry.CreateRegular(4)

	scaled := square.ScaleTo(500, 300, 10)
	b := scaled.Bounds()
	assert.InDelta(t, 280, b.Height(), 1e-9, "height limits the scale")
	assert.InDelta(t, 280, b.Width(), 1e-9)
	assert.InDelta(t, 10, b.Min.Y, 1e-9)
	assert.InDelta(t, 110, b.Min.X, 1e-9, "x is centered")

	wide := square.Stretched(2).ScaleTo(500, 500, 10)
	b = wide.Bounds()
	assert.InDelta(t, 480, b.Width(), 1e-9)
	assert.InDelta(t, 240, b.Height(), 1e-9)
	assert.InDelta(t, 130, b.Min.Y, 1e-9, "y is centered")

	angles := square.Angles()
	for i, a := range scaled.Angles() {
		assert.InDelta(t, angles[i], a, 1e-9)
	}
}

func TestModelJSON(t *testing.T) {
	m := geometry.NewModel(5)
	m.Rotate(17)
	require.True(t, m.SetAngle(0, 100))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var out geometry.Model
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, m.Polygon().Vertices, out.Polygon().Vertices)

	bad := []byte(`{"vertices":[{"X":0,"Y":0},{"X":1,"Y":1},{"X":1,"Y":0},{"X":0,"Y":1}]}`)
	assert.Error(t, json.Unmarshal(bad, &out))
}

func TestRewound(t *testing.T) {
	pent := geometry.CreateRegular(5)
	assert.Greater(t, pent.SignedArea(), 0.0)
	assertSamePolygon(t, pent, pent.Rewound(), 0)

	backwards := &geometry.Polygon{Vertices: []geom.Coord{
		pent.Vertices[0], pent.Vertices[4], pent.Vertices[3], pent.Vertices[2], pent.Vertices[1],
	}}
	assert.Less(t, backwards.SignedArea(), 0.0)
	assert.False(t, backwards.IsValid(), "angles read as exterior in the wrong winding")
	assertSamePolygon(t, pent, backwards.Rewound(), 0)
}

func TestModelJSONOppositeWinding(t *testing.T) {
	pent := geometry.CreateRegular(5)
	rev := make([]geom.Coord, 0, 5)
	for v := 4; v >= 0; v-- {
		rev = append(rev, pent.Vertices[v])
	}
	data, err := json.Marshal(geometry.Polygon{Vertices: rev})
	require.NoError(t, err)

	var m geometry.Model
	require.NoError(t, json.Unmarshal(data, &m))
	for _, a := range m.Angles() {
		assert.InDelta(t, 108, a, 1e-9)
	}

	// mirroring flips the winding but keeps each vertex's angle
	quad := geometry.NewModel(4)
	require.True(t, quad.SetAngle(1, 60))
	mirrored := quad.Polygon()
	for v := range mirrored.Vertices {
		mirrored.Vertices[v].Y = -mirrored.Vertices[v].Y
	}
	data, err = json.Marshal(mirrored)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &m))

	// vertex order becomes 0, 3, 2, 1
	want := []float64{90, 90, 120, 60}
	for i, a := range m.Angles() {
		assert.InDelta(t, want[i], a, 1e-9, "angle %d", i)
	}
	assert.Greater(t, m.Polygon().SignedArea(), 0.0)

	assert.Error(t, json.Unmarshal([]byte(`{"vertices":[]}`), &m))
}
