package camera

import (
	"testing"

	"github.com/san-kum/plife/internal/life"
)

func TestMove(t *testing.T) {
	tests := []struct {
		dir   Direction
		scale float32
		want  life.Vec
	}{
		{Up, 1, life.Vec{0, -20}},
		{Down, 1, life.Vec{0, 20}},
		{Left, 2, life.Vec{-10, 0}},
		{Right, 0.5, life.Vec{40, 0}},
	}

	for _, tt := range tests {
		c := &Camera{Scale: tt.scale}
		c.Move(tt.dir)
		if c.Position != tt.want {
			t.Errorf("Move(%d) at scale %v = %v, want %v", tt.dir, tt.scale, c.Position, tt.want)
		}
	}
}

func TestZoomBounds(t *testing.T) {
	c := New()
	for i := 0; i < 100; i++ {
		c.Zoom(1)
	}
	if c.Scale != MaxScale {
		t.Errorf("scale = %v, want %v", c.Scale, MaxScale)
	}

	for i := 0; i < 100; i++ {
		c.Zoom(-1)
	}
	if c.Scale != MinScale {
		t.Errorf("scale = %v, want %v", c.Scale, MinScale)
	}
}

func TestCenter(t *testing.T) {
	c := New()
	c.Scale = 2
	c.Center(life.Vec{1000, 1000}, 800, 600)

	want := life.Vec{800, 850}
	if c.Position != want {
		t.Errorf("position = %v, want %v", c.Position, want)
	}

	v := c.Viewport(800, 600)
	if v.Origin != want || v.Scale != 2 || v.Width != 800 {
		t.Errorf("viewport = %+v", v)
	}
}

func TestPan(t *testing.T) {
	c := New()
	c.Pan(Right, 250)
	c.Pan(Down, 125)
	if want := (life.Vec{250, 125}); c.Position != want {
		t.Errorf("Position = %v, want %v", c.Position, want)
	}
}
