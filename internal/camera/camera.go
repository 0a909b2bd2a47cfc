// Package camera tracks the pan and zoom of a renderer over the world.
package camera

import (
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

const (
	MoveSensitivity = 20.0
	ZoomStep        = 0.05
	MinScale        = 0.1
	MaxScale        = 3.0
)

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

type Camera struct {
	Position life.Vec
	Scale    float32
}

func New() *Camera {
	return &Camera{Scale: 1}
}

// Move pans by a fixed screen distance, so the world step shrinks as the
// camera zooms in.
func (c *Camera) Move(d Direction) {
	c.Pan(d, MoveSensitivity/c.Scale)
}

// Pan shifts the camera by distance world units.
func (c *Camera) Pan(d Direction, distance float32) {
	switch d {
	case Up:
		c.Position[1] -= distance
	case Down:
		c.Position[1] += distance
	case Left:
		c.Position[0] -= distance
	case Right:
		c.Position[0] += distance
	}
}

// Zoom changes the scale by steps*ZoomStep, bounded to [MinScale, MaxScale].
func (c *Camera) Zoom(steps float32) {
	s := c.Scale + steps*ZoomStep
	if s < MinScale {
		s = MinScale
	}
	if s > MaxScale {
		s = MaxScale
	}
	c.Scale = s
}

// Center places the world point p in the middle of a width x height screen.
func (c *Camera) Center(p life.Vec, width, height float32) {
	c.Position = p.Sub(life.Vec{width, height}.Mul(0.5 / c.Scale))
}

func (c *Camera) Viewport(width, height float32) sim.Viewport {
	return sim.Viewport{Origin: c.Position, Scale: c.Scale, Width: width, Height: height}
}
