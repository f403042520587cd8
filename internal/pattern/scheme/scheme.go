package scheme

import (
	"polygo/internal/pattern/geometry"
	"polygo/internal/pattern/palette"
)

// ============================================================
// Scheme
// ============================================================

// Scheme is the parameter set that drives one pattern. It is created with
// defaults and then changed in place by the edit methods; fields are
// exported for reading and must not be assigned directly. Every edit either
// applies completely and returns true or leaves the scheme untouched and
// returns false.
type Scheme struct {
	NumSides int
	Rotation int
	Base     *geometry.Model

	DisplacementMode DisplacementMode
	Displacement     int
	Direction        Direction

	Infinite   bool
	Iterations int

	LineColorScheme palette.Scheme
	LineColors      palette.Palette
	LineWidth       int

	FillColorScheme palette.Scheme
	FillColors      palette.Palette

	Background     palette.Color
	InnerFill      bool
	InnerFillColor palette.Color
}

// New returns a scheme with default values.
func New() *Scheme {
	s := &Scheme{
		NumSides:         DefaultNumSides,
		Rotation:         DefaultRotation,
		DisplacementMode: DefaultDisplacementMode,
		Displacement:     defaultDisplacement(DefaultDisplacementMode),
		Direction:        DefaultDirection,
		Infinite:         DefaultInfinite,
		Iterations:       DefaultIterations,
		LineColorScheme:  palette.OneColor,
		LineWidth:        DefaultLineWidth,
		FillColorScheme:  palette.OneSideOneColor,
		Background:       palette.White,
		InnerFill:        DefaultInnerFill,
		InnerFillColor:   palette.White,
	}
	s.Base = geometry.NewModel(s.NumSides)
	s.Base.Rotate(float64(s.Rotation))
	s.LineColors = palette.LineDefaults.Initial(s.LineColorScheme, s.NumSides)
	s.FillColors = palette.FillDefaults.Initial(s.FillColorScheme, s.NumSides)
	return s
}

// Clone returns a deep copy, e.g. for rendering a preview in isolation.
func (s *Scheme) Clone() *Scheme {
	out := *s
	out.Base = s.Base.Clone()
	out.LineColors = s.LineColors.Clone()
	out.FillColors = s.FillColors.Clone()
	return &out
}

// BasePolygon returns a copy of the current base shape.
func (s *Scheme) BasePolygon() *geometry.Polygon {
	return s.Base.Polygon()
}

// Angles returns the base polygon's interior angles.
func (s *Scheme) Angles() []float64 {
	return s.Base.Angles()
}

// Palette returns the color scheme and colors of target.
func (s *Scheme) Palette(target Target) (palette.Scheme, palette.Palette) {
	if target == Fill {
		return s.FillColorScheme, s.FillColors
	}
	return s.LineColorScheme, s.LineColors
}

func defaultDisplacement(mode DisplacementMode) int {
	if mode == Fixed {
		return DefaultDisplacementPixels
	}
	return DefaultDisplacementPercent
}

func maxDisplacement(mode DisplacementMode) int {
	if mode == Fixed {
		return MaxDisplacementPixels
	}
	return MaxDisplacementPercent
}

func defaultsFor(target Target) palette.Defaults {
	if target == Fill {
		return palette.FillDefaults
	}
	return palette.LineDefaults
}
