package palette

// Default cycles used to seed and grow palettes. Polygons with more sides
// than a cycle has entries wrap around.
var (
	DefaultLineCycle = Palette{Yellow, Blue, Green, Red, Magenta, Cyan, DarkGray, Orange, Pink, LightGray}
	DefaultFillCycle = Palette{Red, Green, Blue, Yellow, Magenta, Cyan, DarkGray, Orange, Pink, LightGray}

	DefaultLineSingle = Black
	DefaultFillSingle = White
)

// Defaults describes the seed colors of one palette kind.
type Defaults struct {
	Cycle  Palette
	Single Color
}

var (
	LineDefaults = Defaults{Cycle: DefaultLineCycle, Single: DefaultLineSingle}
	FillDefaults = Defaults{Cycle: DefaultFillCycle, Single: DefaultFillSingle}
)

// Initial builds the palette a scheme starts with for a polygon of numSides.
func (d Defaults) Initial(scheme Scheme, numSides int) Palette {
	switch scheme {
	case OneSideOneColor:
		out := make(Palette, numSides)
		for c := range out {
			out[c] = d.Cycle.At(c)
		}
		return out
	case OnePolygonOneColor, Custom:
		return Palette{d.Cycle[0], d.Cycle[1]}
	default:
		return Palette{d.Single}
	}
}

// Resize grows p from the cycle or truncates it from the end so it holds n
// colors. Existing entries keep their order.
func (d Defaults) Resize(p Palette, n int) Palette {
	if len(p) >= n {
		return p[:n:n].Clone()
	}
	out := p.Clone()
	for c := len(out); c < n; c++ {
		out = append(out, d.Cycle.At(c))
	}
	return out
}

// Next returns the color appended when a palette of length n grows by one.
func (d Defaults) Next(n int) Color {
	return d.Cycle.At(n)
}
