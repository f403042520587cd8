// Command polyrender renders a nested polygon pattern to a PNG or SVG file.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"polygo/internal/pattern/compositor"
	"polygo/internal/pattern/scheme"
	"polygo/internal/pattern/service"
)

func main() {
	var (
		in     = flag.String("in", "", "scheme file (.polygo); defaults when empty")
		width  = flag.Int("width", 500, "image width")
		height = flag.Int("height", 500, "image height")
		output = flag.String("output", "pattern.png", "output file (.png or .svg)")
		save   = flag.String("save", "", "write the edited scheme to this file")
		sides  = flag.Int("sides", 0, "number of sides (3-20)")
		depth  = flag.Int("depth", 0, "finite depth; 0 keeps the scheme setting")
		edits  []service.Edit
	)
	flag.Func("edit", `JSON edit, repeatable, e.g. {"op":"rotate","value":15}`, func(v string) error {
		var e service.Edit
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return err
		}
		edits = append(edits, e)
		return nil
	})
	flag.Parse()

	s := scheme.New()
	if *in != "" {
		data, err := os.ReadFile(*in)
		if err != nil {
			log.Fatalf("Failed to read scheme: %v", err)
		}
		if s, err = scheme.Unmarshal(data); err != nil {
			log.Fatalf("Invalid scheme %s: %v", *in, err)
		}
	}

	if *sides != 0 {
		edits = append([]service.Edit{{Op: "set_sides", Value: float64(*sides)}}, edits...)
	}
	if *depth > 0 {
		edits = append(edits,
			service.Edit{Op: "infinite", Enabled: false},
			service.Edit{Op: "depth", Value: float64(*depth)},
		)
	}
	for _, e := range edits {
		applied, err := e.Apply(s)
		if err != nil {
			log.Fatalf("Edit %s: %v", e.Op, err)
		}
		if !applied {
			log.Printf("Edit %s ignored", e.Op)
		}
	}

	surface := compositor.Surface{Width: *width, Height: *height}
	if err := surface.Validate(); err != nil {
		log.Fatalf("Bad size: %v", err)
	}
	frame := compositor.Compose(s, surface)

	if err := write(*output, frame); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *save != "" {
		doc, err := scheme.Marshal(s)
		if err != nil {
			log.Fatalf("Failed to encode scheme: %v", err)
		}
		if err := os.WriteFile(*save, doc, 0644); err != nil {
			log.Fatalf("Failed to save scheme: %v", err)
		}
	}

	log.Printf("Pattern saved to %s (%dx%d, %d polygons, %s)\n",
		*output, *width, *height, len(frame.Polygons), frame.Reason)
}

func write(path string, frame *compositor.Frame) error {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		svg, err := compositor.RenderSVG(frame)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(svg), 0644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := compositor.EncodePNG(f, frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
