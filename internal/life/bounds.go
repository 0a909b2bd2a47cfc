package life

import (
	"math"
	"math/rand/v2"
)

type Edge uint8

const (
	NoEdge Edge = iota
	LeftEdge
	RightEdge
	BottomEdge
	TopEdge
)

func (e Edge) String() string {
	switch e {
	case LeftEdge:
		return "left"
	case RightEdge:
		return "right"
	case BottomEdge:
		return "bottom"
	case TopEdge:
		return "top"
	}
	return "none"
}

func (p Params) OutOfBounds(pos Vec) bool {
	return pos.X() < 0 || pos.X() > p.Width || pos.Y() < 0 || pos.Y() > p.Height
}

// CrossedEdge reports the violated edge with the smallest penetration. When
// a position is outside on two axes only that closest edge is corrected.
// Ties keep the first edge in left, right, bottom, top order.
func (p Params) CrossedEdge(pos Vec) Edge {
	best, depth := NoEdge, float32(math.MaxFloat32)
	consider := func(e Edge, d float32) {
		if d > 0 && d < depth {
			best, depth = e, d
		}
	}
	consider(LeftEdge, -pos.X())
	consider(RightEdge, pos.X()-p.Width)
	consider(BottomEdge, pos.Y()-p.Height)
	consider(TopEdge, -pos.Y())
	return best
}

// Integrate advances one particle by its velocity and applies the boundary
// policy of mode: reflection in Real, random respawn in Emergence.
func (p Params) Integrate(pt *Particle, mode PhysicsMode, rng *rand.Rand) {
	pt.Position = pt.Position.Add(pt.Velocity)

	switch mode {
	case Real:
		p.reflect(pt)
	case Emergence:
		if p.OutOfBounds(pt.Position) {
			pt.Position = p.RandomPosition(rng)
		}
	}
}

func (p Params) reflect(pt *Particle) {
	switch p.CrossedEdge(pt.Position) {
	case LeftEdge:
		pt.Velocity[0] = -pt.Velocity[0]
		pt.Position[0] = 0
	case RightEdge:
		pt.Velocity[0] = -pt.Velocity[0]
		pt.Position[0] = p.Width
	case BottomEdge:
		pt.Velocity[1] = -pt.Velocity[1]
		pt.Position[1] = p.Height
	case TopEdge:
		pt.Velocity[1] = -pt.Velocity[1]
		pt.Position[1] = 0
	}
}

// RandomPosition returns a uniform point in [0, Width) x [0, Height).
func (p Params) RandomPosition(rng *rand.Rand) Vec {
	return Vec{below(rng.Float32()*p.Width, p.Width), below(rng.Float32()*p.Height, p.Height)}
}

// float32 rounding can push rng.Float32()*limit up to limit itself.
func below(v, limit float32) float32 {
	if v >= limit {
		return math.Nextafter32(limit, 0)
	}
	return v
}
