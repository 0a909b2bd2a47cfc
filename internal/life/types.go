package life

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec is a 2-D float32 vector used for positions, velocities and accelerations.
type Vec = mgl32.Vec2

type Color uint8

const (
	Red Color = iota
	Green
	Blue
	Yellow
)

// NumColors is the size of the color set and of each ForcesTable dimension.
const NumColors = 4

var colorNames = [NumColors]string{"red", "green", "blue", "yellow"}

// Colors lists every color in ordinal order.
func Colors() []Color {
	return []Color{Red, Green, Blue, Yellow}
}

func (c Color) String() string {
	if int(c) < NumColors {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

func (c Color) Valid() bool { return int(c) < NumColors }

// RGBA returns the display color used by renderers.
func (c Color) RGBA() (r, g, b, a uint8) {
	switch c {
	case Red:
		return 255, 0, 0, 255
	case Green:
		return 0, 255, 0, 255
	case Blue:
		return 0, 0, 255, 255
	case Yellow:
		return 255, 255, 0, 255
	}
	return 255, 255, 255, 255
}

func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

type PhysicsMode uint8

const (
	Real PhysicsMode = iota
	Emergence
)

func (m PhysicsMode) String() string {
	switch m {
	case Real:
		return "real"
	case Emergence:
		return "emergence"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

func ParseMode(s string) (PhysicsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "real":
		return Real, nil
	case "emergence":
		return Emergence, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type Particle struct {
	Position Vec
	Velocity Vec
	Color    Color
}

func NewParticle(position, velocity Vec, color Color) Particle {
	return Particle{Position: position, Velocity: velocity, Color: color}
}

// Accel is an optional acceleration. The zero value means no measurable force.
type Accel struct {
	V     Vec
	Valid bool
}

// Some wraps v as a present acceleration.
func Some(v Vec) Accel { return Accel{V: v, Valid: true} }

// Plus combines two optional accelerations: absent values are the identity,
// so a vector is only built once some interaction produced a force.
func (a Accel) Plus(b Accel) Accel {
	switch {
	case !b.Valid:
		return a
	case !a.Valid:
		return b
	}
	return Accel{V: a.V.Add(b.V), Valid: true}
}
