package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// ============================================================
// Math/Geometry helpers
// ============================================================

// Tolerance for comparing coordinates after repeated edits.
const FloatEqualThresh = 1e-9

func FloatAlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < FloatEqualThresh
}

func AlmostEqualsCoord(a, b geom.Coord) bool {
	return FloatAlmostEqual(a.X, b.X) && FloatAlmostEqual(a.Y, b.Y)
}

// AddPolar moves point by dist along orientationDegrees.
func AddPolar(point geom.Coord, dist, orientationDegrees float64) geom.Coord {
	rad := toRadians(orientationDegrees)
	return point.Plus(geom.Coord{X: math.Cos(rad), Y: math.Sin(rad)}.Times(dist))
}

// Orientation returns the direction from a to b in degrees, in (-180, 180].
func Orientation(a, b geom.Coord) float64 {
	d := b.Minus(a)
	return toDegrees(math.Atan2(d.Y, d.X))
}

func Distance(a, b geom.Coord) float64 {
	return a.DistanceFrom(b)
}

// Angle returns the interior angle at b formed by a-b-c, in [0, 180).
// Vertices are expected in the winding CreateRegular produces.
func Angle(a, b, c geom.Coord) float64 {
	turn := Orientation(b, c) - Orientation(a, b)
	return math.Mod(360-turn, 180)
}

func toRadians(d float64) float64 {
	return d * math.Pi / 180
}

func toDegrees(r float64) float64 {
	return r * 180 / math.Pi
}

func wrapIndex(index, length int) int {
	i := index % length
	if i < 0 {
		i += length
	}
	return i
}

func orientation(p, q, r geom.Coord) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if val == 0 {
		return 0 // colinear
	}
	if val > 0 {
		return 1 // clock wise
	}
	return 2 // counterclock wise
}

func onSegment(p, q, r geom.Coord) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

func segmentsCross(p1, p2, p3, p4 geom.Coord) bool {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	return (o1 == 0 && onSegment(p1, p3, p2)) ||
		(o2 == 0 && onSegment(p1, p4, p2)) ||
		(o3 == 0 && onSegment(p3, p1, p4)) ||
		(o4 == 0 && onSegment(p3, p2, p4))
}
