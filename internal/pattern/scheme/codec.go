package scheme

import (
	"encoding/json"
	"errors"
	"fmt"

	"polygo/internal/pattern/geometry"
	"polygo/internal/pattern/palette"
)

// ============================================================
// Serialization
// ============================================================

// FileExtension is used for scheme files written by export and the CLI.
const FileExtension = "polygo"

// document is the persisted form of a Scheme. Every field round-trips
// exactly: floats use the shortest exact encoding and colors are 8-bit.
type document struct {
	NumSides         int              `json:"num_sides"`
	Rotation         int              `json:"rotation"`
	BasePolygon      *geometry.Model  `json:"base_polygon"`
	DisplacementMode DisplacementMode `json:"displacement_mode"`
	Displacement     int              `json:"displacement"`
	Direction        Direction        `json:"direction"`
	Infinite         bool             `json:"infinite"`
	Iterations       int              `json:"iterations"`
	LineColorScheme  palette.Scheme   `json:"line_color_scheme"`
	LineColors       palette.Palette  `json:"line_colors"`
	LineWidth        int              `json:"line_width"`
	FillColorScheme  palette.Scheme   `json:"fill_color_scheme"`
	FillColors       palette.Palette  `json:"fill_colors"`
	Background       palette.Color    `json:"background_color"`
	InnerFill        bool             `json:"inner_fill"`
	InnerFillColor   palette.Color    `json:"inner_fill_color"`
}

// Marshal encodes the whole scheme.
func Marshal(s *Scheme) ([]byte, error) {
	return json.MarshalIndent(document{
		NumSides:         s.NumSides,
		Rotation:         s.Rotation,
		BasePolygon:      s.Base,
		DisplacementMode: s.DisplacementMode,
		Displacement:     s.Displacement,
		Direction:        s.Direction,
		Infinite:         s.Infinite,
		Iterations:       s.Iterations,
		LineColorScheme:  s.LineColorScheme,
		LineColors:       s.LineColors,
		LineWidth:        s.LineWidth,
		FillColorScheme:  s.FillColorScheme,
		FillColors:       s.FillColors,
		Background:       s.Background,
		InnerFill:        s.InnerFill,
		InnerFillColor:   s.InnerFillColor,
	}, "", "  ")
}

// Unmarshal decodes and validates a scheme. A document that violates any
// limit is rejected as a whole.
func Unmarshal(data []byte) (*Scheme, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode scheme: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scheme: %w", err)
	}

	return &Scheme{
		NumSides:         doc.NumSides,
		Rotation:         doc.Rotation,
		Base:             doc.BasePolygon,
		DisplacementMode: doc.DisplacementMode,
		Displacement:     doc.Displacement,
		Direction:        doc.Direction,
		Infinite:         doc.Infinite,
		Iterations:       doc.Iterations,
		LineColorScheme:  doc.LineColorScheme,
		LineColors:       doc.LineColors,
		LineWidth:        doc.LineWidth,
		FillColorScheme:  doc.FillColorScheme,
		FillColors:       doc.FillColors,
		Background:       doc.Background,
		InnerFill:        doc.InnerFill,
		InnerFillColor:   doc.InnerFillColor,
	}, nil
}

func (d *document) validate() error {
	if d.NumSides < geometry.MinSides || d.NumSides > MaxNumSides {
		return fmt.Errorf("num_sides %d out of range", d.NumSides)
	}
	if d.BasePolygon == nil {
		return errors.New("base_polygon missing")
	}
	if d.BasePolygon.NumSides() != d.NumSides {
		return fmt.Errorf("base_polygon has %d vertices, want %d", d.BasePolygon.NumSides(), d.NumSides)
	}
	if d.Rotation < MinRotation || d.Rotation > MaxRotation {
		return fmt.Errorf("rotation %d out of range", d.Rotation)
	}
	if d.Displacement < MinDisplacement || d.Displacement > maxDisplacement(d.DisplacementMode) {
		return fmt.Errorf("displacement %d out of range for %s", d.Displacement, d.DisplacementMode)
	}
	if d.Iterations < MinIterations || d.Iterations > MaxIterations {
		return fmt.Errorf("iterations %d out of range", d.Iterations)
	}
	if d.LineWidth < MinLineWidth || d.LineWidth > MaxLineWidth {
		return fmt.Errorf("line_width %d out of range", d.LineWidth)
	}
	if err := validatePalette("line", d.LineColorScheme, d.LineColors); err != nil {
		return err
	}
	return validatePalette("fill", d.FillColorScheme, d.FillColors)
}

func validatePalette(kind string, s palette.Scheme, colors palette.Palette) error {
	if len(colors) == 0 {
		return fmt.Errorf("%s_colors empty", kind)
	}
	if s.Flexible() && len(colors) < palette.MinFlexible {
		return fmt.Errorf("%s_colors needs at least %d colors for %s", kind, palette.MinFlexible, s)
	}
	return nil
}
