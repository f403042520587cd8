package scheme

import (
	"polygo/internal/pattern/geometry"
	"polygo/internal/pattern/palette"
)

// ============================================================
// Shape edits
// ============================================================

// SetSides switches to a regular polygon with n sides. Rotation resets to
// zero and per-side palettes grow or shrink to match.
func (s *Scheme) SetSides(n int) bool {
	if n < geometry.MinSides || n > MaxNumSides {
		return false
	}
	s.NumSides = n
	s.Rotation = 0
	s.Base.Reset(n)
	s.resizeSidePalette(Line)
	s.resizeSidePalette(Fill)
	return true
}

// SetRotation sets the absolute rotation of the base polygon in degrees.
func (s *Scheme) SetRotation(degrees int) bool {
	if degrees < MinRotation || degrees > MaxRotation {
		return false
	}
	s.Base.Rotate(float64(degrees - s.Rotation))
	s.Rotation = degrees
	return true
}

// Stretch widens (Horizontal) or narrows (Vertical) the base polygon by one
// step. Shapes that would break the angle limits are rejected.
func (s *Scheme) Stretch(axis Axis) bool {
	if axis != Horizontal && axis != Vertical {
		return false
	}
	return s.Base.Stretch(StretchFactor(axis))
}

// SetAngle sets the interior angle at index to degrees.
func (s *Scheme) SetAngle(index int, degrees float64) bool {
	if degrees < geometry.MinAngle || degrees > geometry.MaxAngle {
		return false
	}
	return s.Base.SetAngle(index, degrees)
}

// ============================================================
// Nesting edits
// ============================================================

// SetDisplacementMode switches mode and resets the amount to its default.
func (s *Scheme) SetDisplacementMode(mode DisplacementMode) bool {
	if mode != Relative && mode != Fixed {
		return false
	}
	s.DisplacementMode = mode
	s.Displacement = defaultDisplacement(mode)
	return true
}

// SetDisplacement sets the percentage or pixel amount for the current mode.
func (s *Scheme) SetDisplacement(amount int) bool {
	if amount < MinDisplacement || amount > maxDisplacement(s.DisplacementMode) {
		return false
	}
	s.Displacement = amount
	return true
}

func (s *Scheme) SetDirection(d Direction) bool {
	if d != Clockwise && d != Counterclockwise {
		return false
	}
	s.Direction = d
	return true
}

// SetInfinite toggles nesting until convergence.
func (s *Scheme) SetInfinite(infinite bool) bool {
	s.Infinite = infinite
	return true
}

// SetIterations sets the depth used when nesting is finite.
func (s *Scheme) SetIterations(n int) bool {
	if n < MinIterations || n > MaxIterations {
		return false
	}
	s.Iterations = n
	return true
}

// ============================================================
// Color edits
// ============================================================

// SetColorScheme switches target to scheme and reshapes its palette.
func (s *Scheme) SetColorScheme(target Target, scheme palette.Scheme) bool {
	if !scheme.Valid() || !validTarget(target) {
		return false
	}
	d := defaultsFor(target)
	colors := s.colors(target)

	switch {
	case len(*colors) == 0:
		*colors = d.Initial(scheme, s.NumSides)
	case scheme == palette.OneColor, scheme == palette.OneSideOneColor:
		*colors = d.Initial(scheme, s.NumSides)
	case scheme.Flexible() && len(*colors) == 1:
		*colors = append((*colors).Clone(), d.Cycle[1])
	}

	if target == Fill {
		s.FillColorScheme = scheme
	} else {
		s.LineColorScheme = scheme
	}
	return true
}

// SetColor replaces the color at index of target's palette.
func (s *Scheme) SetColor(target Target, index int, c palette.Color) bool {
	if !validTarget(target) {
		return false
	}
	colors := s.colors(target)
	if index < 0 || index >= len(*colors) {
		return false
	}
	(*colors)[index] = c
	return true
}

// AddColor appends the next default color. Only the flexible schemes
// accept new colors.
func (s *Scheme) AddColor(target Target) bool {
	if !validTarget(target) || !s.scheme(target).Flexible() {
		return false
	}
	colors := s.colors(target)
	*colors = append(*colors, defaultsFor(target).Next(len(*colors)))
	return true
}

// RemoveColor drops the last color. Flexible palettes never shrink below
// palette.MinFlexible entries.
func (s *Scheme) RemoveColor(target Target) bool {
	if !validTarget(target) || !s.scheme(target).Flexible() {
		return false
	}
	colors := s.colors(target)
	if len(*colors) <= palette.MinFlexible {
		return false
	}
	*colors = (*colors)[:len(*colors)-1]
	return true
}

func (s *Scheme) SetLineWidth(width int) bool {
	if width < MinLineWidth || width > MaxLineWidth {
		return false
	}
	s.LineWidth = width
	return true
}

func (s *Scheme) SetBackground(c palette.Color) bool {
	s.Background = c
	return true
}

// SetInnerFill toggles filling the innermost polygon when depth is finite.
func (s *Scheme) SetInnerFill(enabled bool) bool {
	s.InnerFill = enabled
	return true
}

func (s *Scheme) SetInnerFillColor(c palette.Color) bool {
	s.InnerFillColor = c
	return true
}

// ============================================================
// Helpers
// ============================================================

func (s *Scheme) resizeSidePalette(target Target) {
	if s.scheme(target) != palette.OneSideOneColor {
		return
	}
	colors := s.colors(target)
	*colors = defaultsFor(target).Resize(*colors, s.NumSides)
}

func (s *Scheme) colors(target Target) *palette.Palette {
	if target == Fill {
		return &s.FillColors
	}
	return &s.LineColors
}

func (s *Scheme) scheme(target Target) palette.Scheme {
	if target == Fill {
		return s.FillColorScheme
	}
	return s.LineColorScheme
}

func validTarget(t Target) bool {
	return t == Line || t == Fill
}
