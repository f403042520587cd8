package scheme

import (
	"fmt"
)

// ============================================================
// Enumerations
// ============================================================

// DisplacementMode selects how far each vertex moves per iteration.
type DisplacementMode int

const (
	// Relative moves a vertex by a percentage of its side length.
	Relative DisplacementMode = iota
	// Fixed moves a vertex by a fixed number of pixels.
	Fixed
)

// Direction selects the forward neighbor each vertex moves toward.
type Direction int

const (
	Clockwise Direction = iota
	Counterclockwise
)

// Axis selects the stretch direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Target selects one of the two palettes.
type Target int

const (
	Line Target = iota
	Fill
)

var (
	modeNames      = []string{"RELATIVE", "FIXED"}
	directionNames = []string{"CLOCKWISE", "COUNTERCLOCKWISE"}
	axisNames      = []string{"HORIZONTAL", "VERTICAL"}
	targetNames    = []string{"LINE", "FILL"}
)

func (m DisplacementMode) String() string { return enumName(modeNames, int(m)) }
func (d Direction) String() string        { return enumName(directionNames, int(d)) }
func (a Axis) String() string             { return enumName(axisNames, int(a)) }
func (t Target) String() string           { return enumName(targetNames, int(t)) }

func ParseDisplacementMode(s string) (DisplacementMode, error) {
	i, err := enumIndex(modeNames, "displacement mode", s)
	return DisplacementMode(i), err
}

func ParseDirection(s string) (Direction, error) {
	i, err := enumIndex(directionNames, "direction", s)
	return Direction(i), err
}

func ParseAxis(s string) (Axis, error) {
	i, err := enumIndex(axisNames, "axis", s)
	return Axis(i), err
}

func ParseTarget(s string) (Target, error) {
	i, err := enumIndex(targetNames, "palette target", s)
	return Target(i), err
}

func (m DisplacementMode) MarshalText() ([]byte, error) { return enumText(modeNames, "displacement mode", int(m)) }
func (d Direction) MarshalText() ([]byte, error)        { return enumText(directionNames, "direction", int(d)) }

func (m *DisplacementMode) UnmarshalText(text []byte) error {
	v, err := ParseDisplacementMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%d", i)
	}
	return names[i]
}

func enumIndex(names []string, kind, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

func enumText(names []string, kind string, i int) ([]byte, error) {
	if i < 0 || i >= len(names) {
		return nil, fmt.Errorf("unknown %s %d", kind, i)
	}
	return []byte(names[i]), nil
}

// ============================================================
// Limits & defaults
// ============================================================

const (
	MaxNumSides = 20
	MinRotation = -180
	MaxRotation = 180

	// StretchPercent is the compounding step of one stretch edit.
	StretchPercent = 5

	MinDisplacement        = 1
	MaxDisplacementPercent = 50
	MaxDisplacementPixels  = 999

	MinIterations = 1
	MaxIterations = 9999

	MinLineWidth = 1
	MaxLineWidth = 20
)

const (
	DefaultNumSides            = 3
	DefaultRotation            = 0
	DefaultDisplacementMode    = Relative
	DefaultDisplacementPercent = 5
	DefaultDisplacementPixels  = 5
	DefaultDirection           = Clockwise
	DefaultIterations          = 100
	DefaultInfinite            = true
	DefaultLineWidth           = 1
	DefaultInnerFill           = false
)

// StretchFactor is the x scale applied by one stretch edit along axis.
func StretchFactor(axis Axis) float64 {
	if axis == Vertical {
		return 100 / float64(100+StretchPercent)
	}
	return float64(100+StretchPercent) / 100
}
