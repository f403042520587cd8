package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// ============================================================
// Limits
// ============================================================

const (
	MinAngle = 10.0
	MaxAngle = 180 - MinAngle

	// MinSides is the smallest polygon the model accepts.
	MinSides = 3
)

// ============================================================
// Polygon
// ============================================================

// Polygon is an ordered list of float vertices with cyclic adjacency.
// Coordinates are in arbitrary units until the compositor rounds them.
type Polygon struct {
	Vertices []geom.Coord `json:"vertices"`
}

func NewPolygon(numSides int) *Polygon {
	return &Polygon{Vertices: make([]geom.Coord, numSides)}
}

func (p *Polygon) Len() int {
	return len(p.Vertices)
}

// Vertex returns the vertex at i, wrapping the index modulo Len.
func (p *Polygon) Vertex(i int) geom.Coord {
	return p.Vertices[wrapIndex(i, len(p.Vertices))]
}

func (p *Polygon) Clone() *Polygon {
	out := NewPolygon(p.Len())
	copy(out.Vertices, p.Vertices)
	return out
}

// CreateRegular builds a regular polygon with unit sides. Vertex 0 sits at
// the origin and each following vertex is reached by turning the exterior
// angle.
func CreateRegular(numSides int) *Polygon {
	p := NewPolygon(numSides)
	angle := float64(180*(numSides-2)) / float64(numSides)
	orientation := 0.0
	for s := 0; s < numSides-1; s++ {
		p.Vertices[s+1] = AddPolar(p.Vertices[s], 1, orientation)
		orientation += 180 - angle
	}
	return p
}

// Rotated re-walks every edge from vertex 0 with its orientation turned by
// degrees. Edge lengths are preserved, so the shape is unchanged.
func (p *Polygon) Rotated(degrees float64) *Polygon {
	n := p.Len()
	out := NewPolygon(n)
	out.Vertices[0] = p.Vertices[0]
	for v := 0; v < n-1; v++ {
		dist := Distance(p.Vertices[v], p.Vertices[v+1])
		orientation := Orientation(p.Vertices[v], p.Vertices[v+1])
		out.Vertices[v+1] = AddPolar(out.Vertices[v], dist, orientation+degrees)
	}
	return out
}

// Stretched scales the x coordinate of every vertex by factor.
func (p *Polygon) Stretched(factor float64) *Polygon {
	out := p.Clone()
	for v := range out.Vertices {
		out.Vertices[v].X *= factor
	}
	return out
}

// WithAngle returns a copy whose interior angle at index equals newAngle.
// Vertex index+1 slides along the line through index+1 and index+2, so the
// angle at index+1 absorbs the difference and every other angle is kept.
func (p *Polygon) WithAngle(index int, newAngle float64) *Polygon {
	out := p.Clone()

	before := p.Vertex(index - 1)
	point := p.Vertex(index)
	after := p.Vertex(index + 1)
	afterAfter := p.Vertex(index + 2)

	side := Distance(point, after)
	angle := Angle(before, point, after)
	angleAfter := Angle(point, after, afterAfter)
	diff := newAngle - angle

	newDist := side * math.Sin(toRadians(angleAfter)) / math.Sin(toRadians(angleAfter-diff))
	newOrientation := Orientation(point, after) - diff

	out.Vertices[wrapIndex(index+1, p.Len())] = AddPolar(point, newDist, newOrientation)
	return out
}

// Angles returns the interior angle at every vertex, in degrees.
func (p *Polygon) Angles() []float64 {
	n := p.Len()
	angles := make([]float64, n)
	for a := 0; a < n; a++ {
		angles[a] = Angle(p.Vertex(a-1), p.Vertex(a), p.Vertex(a+1))
	}
	return angles
}

// IsValid reports whether every angle is within [MinAngle, MaxAngle], the
// rounded angle sum equals 180*(n-2) and no two sides cross.
func (p *Polygon) IsValid() bool {
	n := p.Len()
	if n < MinSides {
		return false
	}

	sum := 0.0
	for _, a := range p.Angles() {
		if math.IsNaN(a) || a < MinAngle || a > MaxAngle {
			return false
		}
		sum += a
	}
	if int(math.Round(sum)) != 180*(n-2) {
		return false
	}

	return p.isSimple()
}

// isSimple checks every pair of non-adjacent sides for an intersection.
func (p *Polygon) isSimple() bool {
	n := p.Len()
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsCross(p.Vertex(i), p.Vertex(i+1), p.Vertex(j), p.Vertex(j+1)) {
				return false
			}
		}
	}
	return true
}

// SignedArea is the shoelace area. CreateRegular produces a positive area;
// the angle math in this package assumes that winding.
func (p *Polygon) SignedArea() float64 {
	area := 0.0
	for v := 0; v < p.Len(); v++ {
		a, b := p.Vertex(v), p.Vertex(v+1)
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// Rewound returns p in the CreateRegular winding. A polygon wound the other
// way is walked backwards from vertex 0, so vertex 0 keeps its place.
func (p *Polygon) Rewound() *Polygon {
	if p.SignedArea() >= 0 {
		return p.Clone()
	}
	n := p.Len()
	out := NewPolygon(n)
	for v := 0; v < n; v++ {
		out.Vertices[v] = p.Vertex(-v)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (p *Polygon) Bounds() geom.Rect {
	r := geom.NilRect()
	for _, v := range p.Vertices {
		r.ExpandToContainCoord(v)
	}
	return r
}

// ScaleTo fits the polygon into a width x height surface leaving margin on
// every edge. The limiting axis fills the available space and the other axis
// is centered.
func (p *Polygon) ScaleTo(width, height, margin int) *Polygon {
	bounds := p.Bounds()
	spanX, spanY := bounds.Width(), bounds.Height()
	availX := float64(width - 2*margin)
	availY := float64(height - 2*margin)

	xRatio := spanX / availX
	yRatio := spanY / availY
	ratio := math.Max(xRatio, yRatio)
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}

	offX := float64(margin) + (availX-spanX/ratio)/2
	offY := float64(margin) + (availY-spanY/ratio)/2

	out := NewPolygon(p.Len())
	for v, c := range p.Vertices {
		norm := c.Minus(bounds.Min)
		out.Vertices[v] = geom.Coord{
			X: norm.X/ratio + offX,
			Y: norm.Y/ratio + offY,
		}
	}
	return out
}
