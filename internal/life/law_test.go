package life

import (
	"math"
	"testing"
)

func TestForce_ZeroDistance(t *testing.T) {
	p := DefaultParams()
	for _, mode := range []PhysicsMode{Real, Emergence} {
		for _, affinity := range []float32{-10, -0.3, 0, 0.4, 10} {
			if got := p.Force(mode, affinity, 0); got != 0 {
				t.Errorf("%s: Force(%v, 0) = %v, want 0", mode, affinity, got)
			}
		}
	}
}

func TestForce_RealBounded(t *testing.T) {
	p := DefaultParams()
	affinities := []float32{-1e6, -10, -0.5, -1e-3, 1e-3, 0.5, 10, 1e6}
	distances := []float32{1e-30, 1e-6, 0.01, 0.5, 1, 3, 100}

	for _, a := range affinities {
		for _, d := range distances {
			f := p.Force(Real, a, d)
			if math.IsNaN(float64(f)) {
				t.Fatalf("Force(%v, %v) is NaN", a, d)
			}
			if abs(f) > p.MaxAppliedForce {
				t.Errorf("Force(%v, %v) = %v exceeds %v", a, d, f, p.MaxAppliedForce)
			}
			if (a > 0) != (f > 0) {
				t.Errorf("Force(%v, %v) = %v has wrong sign", a, d, f)
			}
		}
	}
}

func TestForce_RealInverseSquare(t *testing.T) {
	p := DefaultParams()
	got := p.Force(Real, 0.01, 2)
	want := float32(0.01 / 4)
	if abs(got-want) > 1e-9 {
		t.Errorf("Force = %v, want %v", got, want)
	}
}

func TestForce_Emergence(t *testing.T) {
	p := DefaultParams()
	r := p.RepelRadius
	mid := (1 + r) / 2

	tests := []struct {
		name     string
		affinity float32
		d        float32
		want     float32
	}{
		{"repel near zero", 1, 1e-6, 1e-6/r - 1},
		{"repel ignores affinity", -5, r / 2, -0.5},
		{"zero at radius", 1, r, 0},
		{"peak at midpoint", 0.4, mid, 0.4},
		{"negative affinity peak", -0.3, mid, -0.3},
		{"zero at one unit", 1, 1, 0},
		{"zero beyond range", 1, 2.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Force(Emergence, tt.affinity, tt.d)
			if abs(got-tt.want) > 1e-6 {
				t.Errorf("Force(%v, %v) = %v, want %v", tt.affinity, tt.d, got, tt.want)
			}
		})
	}
}

func TestForce_EmergenceContinuity(t *testing.T) {
	p := DefaultParams()
	if got := p.Force(Emergence, 0.9, p.RepelRadius); got != 0 {
		t.Errorf("force at repel radius = %v, want exactly 0", got)
	}
	just := p.RepelRadius + 1e-4
	if got := p.Force(Emergence, 0.9, just); abs(got) > 1e-3 {
		t.Errorf("force just past repel radius = %v, want ~0", got)
	}
}

func TestAcceleration_Direction(t *testing.T) {
	p := DefaultParams()
	forces := ForcesTable{}.With(Red, Blue, 10)

	a := NewParticle(Vec{500, 500}, Vec{}, Red)
	b := NewParticle(Vec{600, 500}, Vec{}, Blue)

	acc := p.Acceleration(&a, &b, &forces, Real)
	if !acc.Valid {
		t.Fatal("expected an acceleration")
	}
	want := p.MaxAppliedForce * p.ForceScalar
	if abs(acc.V.X()-want) > 1e-6 || acc.V.Y() != 0 {
		t.Errorf("acceleration = %v, want (%v, 0)", acc.V, want)
	}

	back := p.Acceleration(&b, &a, &forces, Real)
	if back.Valid {
		t.Errorf("blue->red affinity is 0, got %v", back.V)
	}
}

func TestAcceleration_RepulsionPointsAway(t *testing.T) {
	p := DefaultParams()
	var forces ForcesTable

	a := NewParticle(Vec{100, 100}, Vec{}, Green)
	b := NewParticle(Vec{100, 110}, Vec{}, Green)

	acc := p.Acceleration(&a, &b, &forces, Emergence)
	if !acc.Valid || acc.V.Y() >= 0 {
		t.Errorf("expected push toward -y, got %+v", acc)
	}
}

func TestAcceleration_Overlap(t *testing.T) {
	p := DefaultParams()
	forces := ForcesTable{}.With(Red, Red, 1)
	a := NewParticle(Vec{10, 10}, Vec{}, Red)
	if acc := p.Acceleration(&a, &a, &forces, Emergence); acc.Valid {
		t.Errorf("self interaction produced %v", acc.V)
	}
}

func TestAccel_Plus(t *testing.T) {
	none := Accel{}
	x := Some(Vec{1, 2})
	y := Some(Vec{3, -1})

	if got := none.Plus(none); got.Valid {
		t.Error("None + None should stay None")
	}
	if got := none.Plus(x); !got.Valid || got.V != x.V {
		t.Errorf("None + x = %+v", got)
	}
	if got := x.Plus(none); !got.Valid || got.V != x.V {
		t.Errorf("x + None = %+v", got)
	}
	if got := x.Plus(y); got.V != (Vec{4, 1}) {
		t.Errorf("x + y = %v", got.V)
	}
}

func TestApplyFriction(t *testing.T) {
	p := DefaultParams()
	pt := NewParticle(Vec{}, Vec{2, -4}, Red)
	p.ApplyFriction(&pt)
	if abs(pt.Velocity.X()-1.3) > 1e-6 || abs(pt.Velocity.Y()+2.6) > 1e-6 {
		t.Errorf("velocity after friction = %v", pt.Velocity)
	}
}
