// Package metrics reduces particle snapshots to scalar series. Every type
// here satisfies sim.Metric; Value reports the latest observation.
package metrics

import "github.com/san-kum/plife/internal/sim"

// Defaults returns the metrics recorded by headless runs.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMeanSpeed(),
		NewCalm(DefaultCalmSpeed),
		NewSpread(),
	}
}
