package palette

import (
	"fmt"
)

// ============================================================
// Color schemes
// ============================================================

// Scheme selects how a palette maps onto sides and polygons.
type Scheme int

const (
	OneColor Scheme = iota
	OneSideOneColor
	OnePolygonOneColor
	Custom
	None
)

var schemeNames = map[Scheme]string{
	OneColor:           "ONE_COLOR",
	OneSideOneColor:    "ONE_SIDE_ONE_COLOR",
	OnePolygonOneColor: "ONE_POLYGON_ONE_COLOR",
	Custom:             "CUSTOM",
	None:               "NONE",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

func (s Scheme) Valid() bool {
	_, ok := schemeNames[s]
	return ok
}

// Flexible reports whether colors may be added to or removed from the palette.
func (s Scheme) Flexible() bool {
	return s == OnePolygonOneColor || s == Custom
}

func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown color scheme %q", name)
}

func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown color scheme %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ============================================================
// Palette
// ============================================================

// MinFlexible is the smallest palette the flexible schemes keep.
const MinFlexible = 2

// Palette is an ordered list of colors indexed cyclically.
type Palette []Color

func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// At returns p[i mod len(p)].
func (p Palette) At(i int) Color {
	n := len(p)
	return p[((i%n)+n)%n]
}

// ColorFor picks the color of side sideIndex of the polygon at iteration.
// It returns false when the scheme draws nothing or the palette is empty.
func ColorFor(scheme Scheme, p Palette, iteration, sideIndex, numSides int) (Color, bool) {
	if len(p) == 0 {
		return Color{}, false
	}

	switch scheme {
	case OneColor:
		return p[0], true
	case OneSideOneColor:
		return p.At(sideIndex), true
	case OnePolygonOneColor:
		return p.At(iteration), true
	case Custom:
		return p.At(iteration*numSides + sideIndex), true
	default:
		return Color{}, false
	}
}
