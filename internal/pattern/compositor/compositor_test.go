package compositor_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"

	"polygo/internal/pattern/compositor"
	"polygo/internal/pattern/palette"
	"polygo/internal/pattern/scheme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var surface = compositor.Surface{Width: 200, Height: 200}

func commands(f *compositor.Frame, kind compositor.Kind) []compositor.Command {
	var out []compositor.Command
	for _, c := range f.Commands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func fillers(f *compositor.Frame) []compositor.Command {
	var out []compositor.Command
	for _, c := range commands(f, compositor.Fill) {
		if c.Side >= 0 {
			out = append(out, c)
		}
	}
	return out
}

func TestComposeFillerOverlap(t *testing.T) {
	f := compositor.Compose(scheme.New(), surface)
	require.Greater(t, len(f.Polygons), 3)
	assert.Equal(t, "converged", f.Reason)

	last := len(f.Polygons) - 2
	for _, c := range fillers(f) {
		if c.Iteration == last {
			assert.Len(t, c.Points, 3, "no lookahead for the last pair")
		} else {
			assert.Len(t, c.Points, 4, "iteration %d side %d", c.Iteration, c.Side)
		}
	}
	assert.Len(t, fillers(f), 3*(len(f.Polygons)-1))
}

func TestComposeFillColors(t *testing.T) {
	f := compositor.Compose(scheme.New(), surface)
	for _, c := range fillers(f) {
		assert.Equal(t, palette.DefaultFillCycle[c.Side], c.Color)
	}
	for _, c := range commands(f, compositor.Stroke) {
		assert.Equal(t, palette.Black, c.Color)
		assert.Equal(t, 1, c.Width)
	}
}

func TestComposeClockwiseCorner(t *testing.T) {
	f := compositor.Compose(scheme.New(), surface)
	outer := f.Polygons[0]
	for _, c := range fillers(f)[:3] {
		v := outer.Vertex(c.Side + 1)
		assert.Equal(t, image.Pt(int(math.Round(v.X)), int(math.Round(v.Y))), c.Points[1])
	}
}

func TestComposeCounterclockwiseCorner(t *testing.T) {
	s := scheme.New()
	require.True(t, s.SetDirection(scheme.Counterclockwise))

	f := compositor.Compose(s, surface)
	outer := f.Polygons[0]
	for _, c := range fillers(f)[:3] {
		v := outer.Vertex(c.Side)
		assert.Equal(t, image.Pt(int(math.Round(v.X)), int(math.Round(v.Y))), c.Points[1])
	}
}

func TestComposeNoneSchemes(t *testing.T) {
	s := scheme.New()
	require.True(t, s.SetColorScheme(scheme.Line, palette.None))
	require.True(t, s.SetColorScheme(scheme.Fill, palette.None))
	require.True(t, s.SetBackground(palette.Orange))

	f := compositor.Compose(s, surface)
	assert.Empty(t, commands(f, compositor.Stroke))
	for _, c := range commands(f, compositor.Fill) {
		assert.Equal(t, palette.Orange, c.Color)
	}
}

func TestComposeInnerFill(t *testing.T) {
	s := scheme.New()
	require.True(t, s.SetInnerFill(true))
	require.True(t, s.SetInnerFillColor(palette.Cyan))

	center := func(f *compositor.Frame) compositor.Command {
		for _, c := range f.Commands {
			if c.Kind == compositor.Fill && c.Side < 0 {
				return c
			}
		}
		t.Fatal("no center fill")
		return compositor.Command{}
	}

	assert.Equal(t, palette.White, center(compositor.Compose(s, surface)).Color, "infinite depth shows the background")

	require.True(t, s.SetInfinite(false))
	require.True(t, s.SetIterations(4))
	f := compositor.Compose(s, surface)
	assert.Len(t, f.Polygons, 5)
	assert.Equal(t, "depth reached", f.Reason)
	assert.Equal(t, palette.Cyan, center(f).Color)
}

func TestComposeDegenerateSeed(t *testing.T) {
	s := scheme.New()
	require.True(t, s.SetDisplacementMode(scheme.Fixed))
	require.True(t, s.SetDisplacement(999))

	f := compositor.Compose(s, surface)
	require.Len(t, f.Polygons, 1)
	assert.Empty(t, fillers(f))
	assert.Len(t, commands(f, compositor.Stroke), 3, "seed outline stroked once")
}

func TestEncodePNG(t *testing.T) {
	s := scheme.New()
	require.True(t, s.SetBackground(palette.RGB(10, 20, 30)))

	var buf bytes.Buffer
	require.NoError(t, compositor.EncodePNG(&buf, compositor.Compose(s, surface)))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})

	differs := false
	for y := 0; y < 200 && !differs; y += 5 {
		for x := 0; x < 200; x += 5 {
			r, g, b, _ := img.At(x, y).RGBA()
			if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
				differs = true
				break
			}
		}
	}
	assert.True(t, differs, "pattern painted over the background")

	err = compositor.EncodePNG(&buf, &compositor.Frame{Surface: compositor.Surface{Width: 5, Height: 5}})
	assert.Error(t, err)
}

func TestSurfaceValidate(t *testing.T) {
	assert.NoError(t, surface.Validate())
	assert.NoError(t, compositor.Surface{Width: compositor.MaxSurface, Height: compositor.MaxSurface}.Validate())
	assert.Error(t, compositor.Surface{Width: 20, Height: 500}.Validate())
	assert.Error(t, compositor.Surface{Width: 200000, Height: 200000}.Validate())
	assert.Error(t, compositor.Surface{Width: 500, Height: compositor.MaxSurface + 1}.Validate())
}

func TestRenderSVG(t *testing.T) {
	svg, err := compositor.RenderSVG(compositor.Compose(scheme.New(), surface))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml`))
	assert.Contains(t, svg, `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200"`)
	assert.Contains(t, svg, `<polygon points="`)
	assert.Contains(t, svg, `stroke="#000000"`)
	assert.True(t, strings.HasSuffix(svg, `</svg>`))

	_, err = compositor.RenderSVG(nil)
	assert.Error(t, err)
}

func TestFrameJSON(t *testing.T) {
	data, err := json.Marshal(compositor.Compose(scheme.New(), surface))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"stroke"`)
	assert.Contains(t, string(data), `"termination":"converged"`)
}
