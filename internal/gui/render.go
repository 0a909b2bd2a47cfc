package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plife/internal/life"
)

func particleColor(c life.Color) rl.Color {
	r, g, b, a := c.RGBA()
	return rl.NewColor(r, g, b, a)
}

func (a *App) drawWorld() {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	v := a.Camera.Viewport(w, h)

	p := a.World.Params()
	origin := life.Vec{}.Sub(v.Origin).Mul(v.Scale)
	rl.DrawRectangleLines(int32(origin.X()), int32(origin.Y()), int32(p.Width*v.Scale), int32(p.Height*v.Scale), ColBorder)

	for _, s := range a.World.Draw(v) {
		rl.DrawCircleV(rl.NewVector2(s.Position.X(), s.Position.Y()), s.Radius, particleColor(s.Color))
	}
}

// telemetryPoints fits values into the rectangle at (x, y) with the
// smallest value on the bottom edge.
func telemetryPoints(values []float64, x, y, width, height float32) []rl.Vector2 {
	if len(values) < 2 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, val := range values {
		px := x + float32(i)/float32(len(values)-1)*width
		norm := (val - lo) / (hi - lo)
		points[i] = rl.NewVector2(px, y+height-float32(norm)*height)
	}
	return points
}

func (a *App) DrawTelemetry() {
	const rectX, rectY, width, height = 30, 580, 400, 60

	points := telemetryPoints(a.Telemetry, rectX, rectY, width, height)
	if points == nil {
		return
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("KE: %.2e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func levelBar(level float64, width int) string {
	n := max(0, min(int(level*float64(width)), width))
	return "[" + strings.Repeat("|", n) + strings.Repeat(" ", width-n) + "]"
}
