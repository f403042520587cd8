package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"polygo/internal/pattern/palette"
	"polygo/internal/pattern/scheme"
)

// ErrBadEdit wraps malformed edit requests: unknown ops, enum names or colors.
var ErrBadEdit = errors.New("bad edit")

// ============================================================
// Edit
// ============================================================

// Edit is one named operation on a scheme. Only the fields the op reads
// need to be set.
type Edit struct {
	Op      string  `json:"op"`
	Target  string  `json:"target,omitempty"`
	Index   int     `json:"index,omitempty"`
	Value   float64 `json:"value,omitempty"`
	Enabled bool    `json:"enabled,omitempty"`
	Name    string  `json:"name,omitempty"`
	Color   string  `json:"color,omitempty"`
}

type editFunc func(s *scheme.Scheme, e Edit) (bool, error)

var edits = map[string]editFunc{
	"rotate": func(s *scheme.Scheme, e Edit) (bool, error) {
		deg, err := e.intValue()
		if err != nil {
			return false, err
		}
		return s.SetRotation(deg), nil
	},
	"stretch_horizontal": func(s *scheme.Scheme, e Edit) (bool, error) {
		return s.Stretch(scheme.Horizontal), nil
	},
	"stretch_vertical": func(s *scheme.Scheme, e Edit) (bool, error) {
		return s.Stretch(scheme.Vertical), nil
	},
	"set_angle": func(s *scheme.Scheme, e Edit) (bool, error) {
		return s.SetAngle(e.Index, e.Value), nil
	},
	"set_sides": func(s *scheme.Scheme, e Edit) (bool, error) {
		n, err := e.intValue()
		if err != nil {
			return false, err
		}
		return s.SetSides(n), nil
	},
	"displacement_mode": func(s *scheme.Scheme, e Edit) (bool, error) {
		mode, err := scheme.ParseDisplacementMode(e.Name)
		if err != nil {
			return false, badEdit(err)
		}
		return s.SetDisplacementMode(mode), nil
	},
	"displacement": func(s *scheme.Scheme, e Edit) (bool, error) {
		amount, err := e.intValue()
		if err != nil {
			return false, err
		}
		return s.SetDisplacement(amount), nil
	},
	"direction": func(s *scheme.Scheme, e Edit) (bool, error) {
		d, err := scheme.ParseDirection(e.Name)
		if err != nil {
			return false, badEdit(err)
		}
		return s.SetDirection(d), nil
	},
	"infinite": func(s *scheme.Scheme, e Edit) (bool, error) {
		return s.SetInfinite(e.Enabled), nil
	},
	"depth": func(s *scheme.Scheme, e Edit) (bool, error) {
		n, err := e.intValue()
		if err != nil {
			return false, err
		}
		return s.SetIterations(n), nil
	},
	"color_scheme": func(s *scheme.Scheme, e Edit) (bool, error) {
		t, err := e.target()
		if err != nil {
			return false, err
		}
		cs, err := palette.ParseScheme(e.Name)
		if err != nil {
			return false, badEdit(err)
		}
		return s.SetColorScheme(t, cs), nil
	},
	"set_color": func(s *scheme.Scheme, e Edit) (bool, error) {
		t, err := e.target()
		if err != nil {
			return false, err
		}
		c, err := e.color()
		if err != nil {
			return false, err
		}
		return s.SetColor(t, e.Index, c), nil
	},
	"add_color": func(s *scheme.Scheme, e Edit) (bool, error) {
		t, err := e.target()
		if err != nil {
			return false, err
		}
		return s.AddColor(t), nil
	},
	"remove_color": func(s *scheme.Scheme, e Edit) (bool, error) {
		t, err := e.target()
		if err != nil {
			return false, err
		}
		return s.RemoveColor(t), nil
	},
	"line_width": func(s *scheme.Scheme, e Edit) (bool, error) {
		w, err := e.intValue()
		if err != nil {
			return false, err
		}
		return s.SetLineWidth(w), nil
	},
	"background": func(s *scheme.Scheme, e Edit) (bool, error) {
		c, err := e.color()
		if err != nil {
			return false, err
		}
		return s.SetBackground(c), nil
	},
	"inner_fill": func(s *scheme.Scheme, e Edit) (bool, error) {
		return s.SetInnerFill(e.Enabled), nil
	},
	"inner_fill_color": func(s *scheme.Scheme, e Edit) (bool, error) {
		c, err := e.color()
		if err != nil {
			return false, err
		}
		return s.SetInnerFillColor(c), nil
	},
}

// Ops lists the supported edit names in order.
func Ops() []string {
	out := make([]string, 0, len(edits))
	for op := range edits {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

// Apply runs e against s. Edits that fall outside the allowed ranges are
// rejected with (false, nil) and leave s unchanged.
func (e Edit) Apply(s *scheme.Scheme) (bool, error) {
	fn, ok := edits[e.Op]
	if !ok {
		return false, fmt.Errorf("%w: unknown op %q", ErrBadEdit, e.Op)
	}
	return fn(s, e)
}

func (e Edit) intValue() (int, error) {
	if e.Value != math.Trunc(e.Value) || math.IsInf(e.Value, 0) {
		return 0, fmt.Errorf("%w: %s needs an integer value, got %v", ErrBadEdit, e.Op, e.Value)
	}
	return int(e.Value), nil
}

func (e Edit) target() (scheme.Target, error) {
	t, err := scheme.ParseTarget(e.Target)
	if err != nil {
		return 0, badEdit(err)
	}
	return t, nil
}

func (e Edit) color() (palette.Color, error) {
	c, err := palette.ParseHex(e.Color)
	if err != nil {
		return palette.Color{}, badEdit(err)
	}
	return c, nil
}

func badEdit(err error) error {
	return fmt.Errorf("%w: %v", ErrBadEdit, err)
}
