package analysis

import (
	"math"

	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

// Separation is the RMS distance between matching particles of two stores.
// Extra particles in the longer store are ignored.
func Separation(a, b []life.Particle) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := a[i].Position.Sub(b[i].Position)
		dx, dy := float64(d.X()), float64(d.Y())
		sum += dx*dx + dy*dy
	}
	return math.Sqrt(sum / float64(n))
}

// TrackDivergence ticks both worlds in lockstep and records their separation
// after every tick. The worlds should share a seed so that respawns in
// emergence mode draw the same positions.
func TrackDivergence(ref, perturbed *sim.World, ticks int) []float64 {
	seps := make([]float64, 0, ticks)
	for i := 0; i < ticks; i++ {
		ref.Tick()
		perturbed.Tick()
		seps = append(seps, Separation(ref.Snapshot(), perturbed.Snapshot()))
	}
	return seps
}

// LyapunovExponent fits ln(sep/d0) = λ·t through the origin by least
// squares, t counted in ticks. A positive value means the perturbation grows.
//
// Samples at zero separation carry no information and are skipped.
func LyapunovExponent(separations []float64, d0 float64) float64 {
	if d0 <= 0 {
		return 0
	}

	var num, den float64
	for i, sep := range separations {
		if sep <= 0 {
			continue
		}
		t := float64(i + 1)
		num += t * math.Log(sep/d0)
		den += t * t
	}
	if den == 0 {
		return 0
	}
	return num / den
}
