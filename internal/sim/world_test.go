package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/life"
)

func newTestWorld(t *testing.T, particles []life.Particle, mode life.PhysicsMode) *World {
	t.Helper()
	w, err := New(particles, life.ForcesTable{}, mode, Config{
		Params:  life.DefaultParams(),
		Backend: compute.SerialBackend{},
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestNew_Validation(t *testing.T) {
	bad := life.DefaultParams()
	bad.WorldUnit = 0

	tests := []struct {
		name      string
		particles []life.Particle
		mode      life.PhysicsMode
		params    life.Params
		want      error
	}{
		{"unknown mode", nil, life.PhysicsMode(9), life.DefaultParams(), life.ErrUnknownMode},
		{"bad params", nil, life.Real, bad, life.ErrInvalidParams},
		{"bad color", []life.Particle{{Color: life.Color(12)}}, life.Real, life.DefaultParams(), life.ErrUnknownColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.particles, life.ForcesTable{}, tt.mode, Config{Params: tt.params, Backend: compute.SerialBackend{}})
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_CopiesParticles(t *testing.T) {
	particles := []life.Particle{life.NewParticle(life.Vec{1, 1}, life.Vec{}, life.Red)}
	w := newTestWorld(t, particles, life.Real)

	particles[0].Position = life.Vec{50, 50}
	if got := w.Snapshot()[0].Position; got != (life.Vec{1, 1}) {
		t.Errorf("world shares caller's slice: position %v", got)
	}
}

func TestDraw(t *testing.T) {
	w := newTestWorld(t, []life.Particle{
		life.NewParticle(life.Vec{100, 100}, life.Vec{}, life.Red),
		life.NewParticle(life.Vec{150, 120}, life.Vec{}, life.Green),
		life.NewParticle(life.Vec{900, 900}, life.Vec{}, life.Blue),
	}, life.Real)

	sprites := w.Draw(Viewport{Origin: life.Vec{50, 50}, Scale: 2, Width: 400, Height: 400})
	if len(sprites) != 2 {
		t.Fatalf("got %d sprites, want 2", len(sprites))
	}

	want := []Sprite{
		{Position: life.Vec{100, 100}, Radius: 6, Color: life.Red},
		{Position: life.Vec{200, 140}, Radius: 6, Color: life.Green},
	}
	for i := range want {
		if sprites[i] != want[i] {
			t.Errorf("sprite %d = %+v, want %+v", i, sprites[i], want[i])
		}
	}
}

func TestDraw_DoesNotMutate(t *testing.T) {
	w := newTestWorld(t, []life.Particle{
		life.NewParticle(life.Vec{10, 10}, life.Vec{1, 1}, life.Red),
	}, life.Real)
	before := w.Snapshot()

	w.Draw(Viewport{Scale: 1, Width: 100, Height: 100})

	if after := w.Snapshot(); after[0] != before[0] {
		t.Errorf("Draw changed particle: %+v -> %+v", before[0], after[0])
	}
}

func TestAccelerateAll(t *testing.T) {
	w := newTestWorld(t, []life.Particle{
		life.NewParticle(life.Vec{10, 10}, life.Vec{3, 4}, life.Red),
		life.NewParticle(life.Vec{20, 20}, life.Vec{}, life.Blue),
	}, life.Real)

	w.AccelerateAll(-5)
	ps := w.Snapshot()

	if got := ps[0].Velocity; math.Abs(float64(got.Len()-10)) > 1e-5 {
		t.Errorf("speed = %v, want 10", got.Len())
	}
	if got := ps[0].Velocity; math.Abs(float64(got.X()-6)) > 1e-5 || math.Abs(float64(got.Y()-8)) > 1e-5 {
		t.Errorf("direction changed: %v", got)
	}
	if got := ps[1].Velocity.Len(); math.Abs(float64(got-5)) > 1e-5 {
		t.Errorf("resting particle speed = %v, want 5", got)
	}
}

func TestAccelerateAll_RestingParticleSeeded(t *testing.T) {
	resting := func() []life.Particle {
		return []life.Particle{
			life.NewParticle(life.Vec{10, 10}, life.Vec{}, life.Red),
			life.NewParticle(life.Vec{30, 30}, life.Vec{}, life.Green),
		}
	}
	a := newTestWorld(t, resting(), life.Real)
	b := newTestWorld(t, resting(), life.Real)

	a.AccelerateAll(2)
	b.AccelerateAll(2)
	pa, pb := a.Snapshot(), b.Snapshot()

	for i := range pa {
		v := pa[i].Velocity
		if math.IsNaN(float64(v.X())) || math.IsNaN(float64(v.Y())) {
			t.Fatalf("particle %d velocity is NaN", i)
		}
		if math.Abs(float64(v.Len()-2)) > 1e-5 {
			t.Errorf("particle %d speed = %v, want 2", i, v.Len())
		}
		if v != pb[i].Velocity {
			t.Errorf("particle %d: %v and %v differ for the same seed", i, v, pb[i].Velocity)
		}
	}
	if pa[0].Velocity == pa[1].Velocity {
		t.Error("resting particles share one direction")
	}
}

func TestRandomizeForces(t *testing.T) {
	w := newTestWorld(t, nil, life.Emergence)

	table := w.RandomizeForces(-0.3, 1)
	if w.Forces() != table {
		t.Fatal("RandomizeForces did not install its table")
	}
	for _, from := range life.Colors() {
		for _, to := range life.Colors() {
			if v := table.Get(from, to); v < -0.3 || v > 1 {
				t.Errorf("table[%s][%s] = %v out of range", from, to, v)
			}
		}
	}

	w.ResetForces()
	if w.Forces() != (life.ForcesTable{}) {
		t.Errorf("ResetForces did not restore initial table")
	}
}

func TestTick_MatchesAcrossBackends(t *testing.T) {
	params := life.DefaultParams()
	params.Width, params.Height = 300, 300
	forces := life.ForcesTable{}.
		With(life.Red, life.Red, 0.4).
		With(life.Blue, life.Red, 0.3).
		With(life.Green, life.Blue, 0.2)

	var particles []life.Particle
	for i := 0; i < 120; i++ {
		x := float32(i%12) * 25
		y := float32(i/12) * 25
		particles = append(particles, life.NewParticle(life.Vec{x + 1, y + 1}, life.Vec{}, life.Color(i%life.NumColors)))
	}

	run := func(backend compute.Backend) []life.Particle {
		w, err := New(particles, forces, life.Emergence, Config{Params: params, Backend: backend, Seed: 3})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer w.Close()
		w.Tick()
		return w.Snapshot()
	}

	serial := run(compute.SerialBackend{})
	parallel := run(compute.NewCPUBackend(7))

	for i := range serial {
		d := serial[i].Velocity.Sub(parallel[i].Velocity)
		if math.Abs(float64(d.X())) > 1e-4 || math.Abs(float64(d.Y())) > 1e-4 {
			t.Fatalf("particle %d: serial %v, parallel %v", i, serial[i].Velocity, parallel[i].Velocity)
		}
	}
}
