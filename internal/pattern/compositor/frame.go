package compositor

import (
	"fmt"
	"image"
	"math"

	"polygo/internal/pattern/geometry"
	"polygo/internal/pattern/nesting"
	"polygo/internal/pattern/palette"
	"polygo/internal/pattern/scheme"

	"github.com/jbeda/geom"
)

const (
	// CanvasMargin is left blank on every edge of the surface.
	CanvasMargin = 10

	// MaxSurface bounds each surface dimension; the raster backend
	// allocates width*height*4 bytes.
	MaxSurface = 4096
)

// ============================================================
// Draw commands
// ============================================================

// Surface is the device area a frame is composed for.
type Surface struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Surface) Validate() error {
	if s.Width <= 2*CanvasMargin || s.Height <= 2*CanvasMargin {
		return fmt.Errorf("surface %dx%d too small", s.Width, s.Height)
	}
	if s.Width > MaxSurface || s.Height > MaxSurface {
		return fmt.Errorf("surface %dx%d exceeds %dx%d", s.Width, s.Height, MaxSurface, MaxSurface)
	}
	return nil
}

type Kind int

const (
	Fill Kind = iota
	Stroke
)

func (k Kind) MarshalText() ([]byte, error) {
	if k == Stroke {
		return []byte("stroke"), nil
	}
	return []byte("fill"), nil
}

// Command is one drawing operation in device pixels. A stroke is a single
// side segment; a fill is a closed polygon.
type Command struct {
	Kind      Kind          `json:"kind"`
	Points    []image.Point `json:"points"`
	Color     palette.Color `json:"color"`
	Width     int           `json:"width,omitempty"`
	Iteration int           `json:"iteration"`
	Side      int           `json:"side"`
}

// Frame is the committed result of one regeneration.
type Frame struct {
	Surface    Surface             `json:"surface"`
	Background palette.Color       `json:"background"`
	Commands   []Command           `json:"commands"`
	Polygons   []*geometry.Polygon `json:"polygons"`
	Reason     string              `json:"termination"`
}

// ============================================================
// Compose
// ============================================================

// Compose scales the base polygon of s onto surface, runs the nesting engine
// in device units and records the draw commands for every nested pair.
func Compose(s *scheme.Scheme, surface Surface) *Frame {
	seed := s.BasePolygon().ScaleTo(surface.Width, surface.Height, CanvasMargin)
	e := nesting.New(seed, s)

	c := &composer{
		s:     s,
		frame: &Frame{Surface: surface, Background: s.Background},
	}
	c.frame.Polygons = append(c.frame.Polygons, e.Current())

	outer, index := e.Current(), 0
	for {
		inner, ok := e.Next()
		if !ok {
			break
		}
		innerInner := e.PeekNext()

		c.fillGaps(outer, inner, innerInner, index)
		c.strokeOutline(outer, index)
		c.strokeOutline(inner, index+1)

		c.frame.Polygons = append(c.frame.Polygons, inner)
		outer, index = inner, index+1
	}

	c.fillLast(outer)
	c.strokeOutline(outer, index)

	c.frame.Reason = e.Reason().String()
	Logger().Debug("frame composed",
		"polygons", len(c.frame.Polygons),
		"commands", len(c.frame.Commands),
		"termination", c.frame.Reason)
	return c.frame
}

type composer struct {
	s     *scheme.Scheme
	frame *Frame
}

// fillGaps fills the triangle between each side of outer and inner. When the
// polygon after inner is known its matching vertex is added as a fourth point
// so neighbouring fills overlap and no rounding seams show through.
func (c *composer) fillGaps(outer, inner, innerInner *geometry.Polygon, index int) {
	n := outer.Len()
	cw := c.s.Direction == scheme.Clockwise

	for side := 0; side < n; side++ {
		corner := side
		if cw {
			corner = side + 1
		}

		pts := []image.Point{
			toPoint(inner.Vertex(side)),
			toPoint(outer.Vertex(corner)),
			toPoint(inner.Vertex(side + 1)),
		}
		if innerInner != nil {
			pts = append(pts, toPoint(innerInner.Vertex(corner)))
		}

		col, ok := palette.ColorFor(c.s.FillColorScheme, c.s.FillColors, index, side, n)
		if !ok {
			col = c.s.Background
		}
		c.frame.Commands = append(c.frame.Commands, Command{
			Kind:      Fill,
			Points:    pts,
			Color:     col,
			Iteration: index,
			Side:      side,
		})
	}
}

func (c *composer) strokeOutline(p *geometry.Polygon, index int) {
	n := p.Len()
	for side := 0; side < n; side++ {
		col, ok := palette.ColorFor(c.s.LineColorScheme, c.s.LineColors, index, side, n)
		if !ok {
			continue
		}
		c.frame.Commands = append(c.frame.Commands, Command{
			Kind:      Stroke,
			Points:    []image.Point{toPoint(p.Vertex(side)), toPoint(p.Vertex(side + 1))},
			Color:     col,
			Width:     c.s.LineWidth,
			Iteration: index,
			Side:      side,
		})
	}
}

// fillLast covers the innermost polygon. The inner fill color only applies
// to finite depth; otherwise the center shows the background.
func (c *composer) fillLast(p *geometry.Polygon) {
	col := c.s.Background
	if c.s.InnerFill && !c.s.Infinite {
		col = c.s.InnerFillColor
	}

	pts := make([]image.Point, p.Len())
	for v := range pts {
		pts[v] = toPoint(p.Vertices[v])
	}
	c.frame.Commands = append(c.frame.Commands, Command{
		Kind:      Fill,
		Points:    pts,
		Color:     col,
		Iteration: len(c.frame.Polygons) - 1,
		Side:      -1,
	})
}

func toPoint(c geom.Coord) image.Point {
	return image.Point{X: int(math.Round(c.X)), Y: int(math.Round(c.Y))}
}
