// Package analysis inspects metric series recorded from particle runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a series
//   - [DominantPeriod]: strongest oscillation period, in samples
//   - [TrackDivergence], [LyapunovExponent]: sensitivity of a world to a
//     small perturbation of its initial state
//   - [NewPhasePortrait]: one series plotted against another
//
// # Oscillation
//
// Kinetic energy of an emergence world often pulses as clusters form and
// break apart:
//
//	period, ok := analysis.DominantPeriod(series["kinetic_energy"])
//	if ok {
//	    fmt.Printf("energy pulses every %.1f samples\n", period)
//	}
package analysis
