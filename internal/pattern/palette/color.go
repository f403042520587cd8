package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ============================================================
// Color
// ============================================================

// Color is an opaque 8-bit RGB color. It implements color.Color and
// encodes as a "#rrggbb" string.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, 0xffff
}

func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// ParseHex reads "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := cc.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ============================================================
// Named colors
// ============================================================

var (
	Black     = RGB(0, 0, 0)
	White     = RGB(255, 255, 255)
	Red       = RGB(255, 0, 0)
	Green     = RGB(0, 255, 0)
	Blue      = RGB(0, 0, 255)
	Yellow    = RGB(255, 255, 0)
	Magenta   = RGB(255, 0, 255)
	Cyan      = RGB(0, 255, 255)
	DarkGray  = RGB(64, 64, 64)
	Orange    = RGB(255, 200, 0)
	Pink      = RGB(255, 175, 175)
	LightGray = RGB(192, 192, 192)
)
