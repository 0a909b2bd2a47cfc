// Package audio sonifies a running world: an ambient pad whose filter opens
// with kinetic energy and whose voices follow the color populations.
package audio

import (
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/metrics"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	baseCutoff = 300.0
	maxCutoff  = 1200.0
	volume     = 0.25
)

// One voice per color: G2, Bb2, D3, F3.
var voiceFreqs = [life.NumColors]float64{98.00, 116.54, 146.83, 174.61}

// Levels are smoothed band magnitudes of the rendered output in [0, 1].
type Levels struct {
	Bass, Mid, High float64
}

type Processor struct {
	stream *portaudio.Stream

	mu      sync.Mutex
	energy  float64
	weights [life.NumColors]float64
	levels  Levels

	// render state, touched only by the audio callback
	time         float64
	energySmooth float64
	filter       [2]float64
	delay        [2][]float64
	delayHead    int
	spectrum     []complex128
	maxLevel     float64

	active bool
}

func NewProcessor() *Processor {
	delayLen := int(float64(SampleRate) * 0.6)
	p := &Processor{
		delay:    [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		spectrum: make([]complex128, BufferSize),
		maxLevel: 0.1,
	}
	for i := range p.weights {
		p.weights[i] = 1.0 / life.NumColors
	}
	return p
}

// Start opens the default output device.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Render)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}

	log.Printf("audio: output stream started at %d Hz", SampleRate)
	a.stream = stream
	a.active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.active {
		return
	}
	if err := a.stream.Stop(); err != nil {
		log.Printf("audio: stop: %v", err)
	}
	a.stream.Close()
	portaudio.Terminate()
	a.active = false
}

func (a *Processor) Active() bool { return a.active }

// OnTick feeds the synth from a snapshot, so a Processor can be attached to
// a sim.Runner as an observer.
func (a *Processor) OnTick(_ int, particles []life.Particle) {
	a.Observe(particles)
}

// Observe takes the total kinetic energy and the share of each color.
func (a *Processor) Observe(particles []life.Particle) {
	var counts [life.NumColors]int
	for i := range particles {
		if particles[i].Color.Valid() {
			counts[particles[i].Color]++
		}
	}
	energy := metrics.Kinetic(particles)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.energy = energy
	if len(particles) == 0 {
		return
	}
	for i, n := range counts {
		a.weights[i] = float64(n) / float64(len(particles))
	}
}

func (a *Processor) Levels() Levels {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.levels
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one pole low pass filter.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Cutoff maps smoothed kinetic energy to the filter frequency.
func Cutoff(energy float64) float64 {
	return baseCutoff + math.Min(energy/5.0, maxCutoff-baseCutoff)
}

// Render fills both output channels. It is the stream callback and can be
// driven directly without a device.
func (a *Processor) Render(out [][]float32) {
	a.mu.Lock()
	target := a.energy
	weights := a.weights
	a.mu.Unlock()

	a.energySmooth = a.energySmooth*0.995 + target*0.005
	cutoff := Cutoff(a.energySmooth)
	dt := 1.0 / float64(SampleRate)

	for i := range out[0] {
		var sampleL, sampleR float64
		for j, f := range voiceFreqs {
			lfo := math.Sin(a.time*0.2 + float64(j))
			g := weights[j] * (0.7 + 0.3*lfo)
			sampleL += triangle(a.time*f*0.999) * g
			sampleR += triangle(a.time*f*1.001) * g
		}

		a.filter[0] = lpf(sampleL, cutoff, dt, a.filter[0])
		a.filter[1] = lpf(sampleR, cutoff, dt, a.filter[1])

		delayL := a.delay[0][a.delayHead]
		delayR := a.delay[1][a.delayHead]
		mixL := a.filter[0] + delayL*0.3 + delayR*0.1
		mixR := a.filter[1] + delayR*0.3 + delayL*0.1
		a.delay[0][a.delayHead] = mixL * 0.7
		a.delay[1][a.delayHead] = mixR * 0.7
		a.delayHead = (a.delayHead + 1) % len(a.delay[0])

		out[0][i] = float32(mixL * volume)
		out[1][i] = float32(mixR * volume)

		a.time += dt
	}

	a.analyze(out[0])
}

// analyze updates the band levels from a Hann-windowed FFT of the block.
func (a *Processor) analyze(block []float32) {
	n := min(len(block), len(a.spectrum))
	if n < 2 {
		return
	}
	buf := a.spectrum[:n]
	for i, v := range block[:n] {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex(float64(v)*window, 0)
	}
	spectrum := fft.FFT(buf)

	// bin width is SampleRate/n; split at roughly 200 Hz and 2 kHz
	binHz := float64(SampleRate) / float64(n)
	var bass, mid, high float64
	for i := 1; i < n/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch f := float64(i) * binHz; {
		case f < 200:
			bass += mag
		case f < 2000:
			mid += mag
		default:
			high += mag
		}
	}

	peak := math.Max(bass, math.Max(mid, high))
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= 0.999
	}
	gain := 1.0
	if a.maxLevel > 0.001 {
		gain = 1.0 / a.maxLevel
	}

	a.mu.Lock()
	a.levels.Bass = a.levels.Bass*0.9 + math.Min(bass*gain, 1)*0.1
	a.levels.Mid = a.levels.Mid*0.9 + math.Min(mid*gain, 1)*0.1
	a.levels.High = a.levels.High*0.9 + math.Min(high*gain, 1)*0.1
	a.mu.Unlock()
}
