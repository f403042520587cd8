package compositor

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ============================================================
// SVG output
// ============================================================

// RenderSVG builds an SVG document from the frame's commands.
func RenderSVG(f *Frame) (string, error) {
	if f == nil {
		return "", fmt.Errorf("frame is nil")
	}
	if err := f.Surface.Validate(); err != nil {
		return "", err
	}

	width, height := f.Surface.Width, f.Surface.Height

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height))
	builder.WriteString("\n")

	builder.WriteString("  ")
	builder.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s" />`, width, height, f.Background.Hex()))
	builder.WriteString("\n")

	for _, cmd := range f.Commands {
		elem := renderCommand(cmd)
		if elem == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func renderCommand(cmd Command) string {
	if len(cmd.Points) < 2 {
		return ""
	}

	if cmd.Kind == Stroke {
		a, b := cmd.Points[0], cmd.Points[1]
		return fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%s" stroke-linecap="round" />`,
			a.X, a.Y, b.X, b.Y, cmd.Color.Hex(), formatFloat(float64(cmd.Width)))
	}

	return fmt.Sprintf(`<polygon points="%s" fill="%s" />`, formatPoints(cmd.Points), cmd.Color.Hex())
}

func formatPoints(pts []image.Point) string {
	parts := make([]string, 0, len(pts))
	for _, p := range pts {
		parts = append(parts, strconv.Itoa(p.X)+","+strconv.Itoa(p.Y))
	}
	return strings.Join(parts, " ")
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
