// Package export renders worlds and metric series as standalone SVG.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

const background = "#0a0a0a"

func hexColor(c life.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// WorldToSVG draws sprites, as returned by World.Draw, on a width x height
// canvas. Particles are grouped by color to keep the file small.
func WorldToSVG(sprites []sim.Sprite, width, height int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	for _, c := range life.Colors() {
		started := false
		for _, s := range sprites {
			if s.Color != c {
				continue
			}
			if !started {
				fmt.Fprintf(&sb, "<g fill=\"%s\">\n", hexColor(c))
				started = true
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", s.Position.X(), s.Position.Y(), s.Radius)
		}
		if started {
			sb.WriteString("</g>\n")
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SnapshotSVG fits the whole world into a canvas width pixels wide.
func SnapshotSVG(w *sim.World, width int) string {
	p := w.Params()
	scale := float32(width) / p.Width
	height := int(p.Height * scale)
	sprites := w.Draw(sim.Viewport{Scale: scale, Width: float32(width), Height: float32(height)})
	return WorldToSVG(sprites, width, height)
}

// SeriesToSVG plots values left to right as a polyline, padded by a tenth of
// the value range.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("nothing to write to %s", path)
	}
	return os.WriteFile(path, []byte(svg), 0o644)
}
