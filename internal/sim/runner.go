package sim

import (
	"context"
	"fmt"
	"time"
)

// Runner drives a World without a renderer.
type Runner struct {
	world     *World
	metrics   []Metric
	observers []Observer
}

func NewRunner(w *World) *Runner {
	return &Runner{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run ticks the world cfg.Ticks times. Metrics and observers see a snapshot
// before the first tick and then every cfg.SampleEvery ticks. A cancelled
// context stops between ticks and returns the partial result.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every == 0 {
		every = 1
	}

	result := &Result{
		TickTimes: make([]time.Duration, 0, cfg.Ticks),
		Series:    make(map[string][]float64),
		Metrics:   make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	r.sample(0, result)

	var total time.Duration
	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, total)
			return result, ctx.Err()
		default:
		}

		start := time.Now()
		r.world.Tick()
		elapsed := time.Since(start)

		total += elapsed
		result.TickTimes = append(result.TickTimes, elapsed)
		result.Ticks++

		if i%every == 0 {
			r.sample(i, result)
		}
	}

	r.finish(result, total)
	return result, nil
}

func (r *Runner) sample(tick int, result *Result) {
	if len(r.metrics) == 0 && len(r.observers) == 0 {
		return
	}

	snapshot := r.world.Snapshot()
	result.SampleTicks = append(result.SampleTicks, tick)
	for _, m := range r.metrics {
		m.Observe(snapshot)
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
	for _, obs := range r.observers {
		obs.OnTick(tick, snapshot)
	}
}

func (r *Runner) finish(result *Result, total time.Duration) {
	if result.Ticks > 0 {
		result.TickAverage = total / time.Duration(result.Ticks)
	}
	for name, series := range result.Series {
		var sum float64
		for _, v := range series {
			sum += v
		}
		result.Metrics[name] = sum / float64(len(series))
	}
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must not be negative, got %d", cfg.SampleEvery)
	}
	return nil
}
