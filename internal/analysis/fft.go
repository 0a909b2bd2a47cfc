package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first len(data)/2 frequency
// bins of data with its mean removed.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod reports the period, in samples, of the strongest non-DC
// bin. It fails for series that are too short or flat.
func DominantPeriod(data []float64) (float64, bool) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, false
	}

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if ps[peak] < 1e-12 {
		return 0, false
	}
	return float64(len(data)) / float64(peak), true
}
