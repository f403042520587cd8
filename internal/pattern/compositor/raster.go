package compositor

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
)

// ============================================================
// Raster backend
// ============================================================

// EncodePNG paints f and writes it as PNG.
func EncodePNG(w io.Writer, f *Frame) error {
	dc, err := paint(f)
	if err != nil {
		return err
	}
	defer dc.Close()

	_ = dc.FlushGPU()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func paint(f *Frame) (*gg.Context, error) {
	if err := f.Surface.Validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(f.Surface.Width, f.Surface.Height)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	dc.SetColor(f.Background)
	dc.DrawRectangle(0, 0, float64(f.Surface.Width), float64(f.Surface.Height))
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("fill background: %w", err)
	}

	for i, cmd := range f.Commands {
		if len(cmd.Points) < 2 {
			continue
		}
		dc.SetColor(cmd.Color)
		dc.MoveTo(float64(cmd.Points[0].X), float64(cmd.Points[0].Y))
		for _, p := range cmd.Points[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}

		var err error
		if cmd.Kind == Stroke {
			dc.SetLineWidth(float64(cmd.Width))
			err = dc.Stroke()
		} else {
			dc.ClosePath()
			err = dc.Fill()
		}
		if err != nil {
			dc.Close()
			return nil, fmt.Errorf("draw command %d: %w", i, err)
		}
	}

	Logger().Debug("frame rasterized", "width", f.Surface.Width, "height", f.Surface.Height, "commands", len(f.Commands))
	return dc, nil
}
