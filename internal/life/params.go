package life

import "fmt"

const (
	DefaultWorldWidth      = 2000.0
	DefaultWorldHeight     = 2000.0
	DefaultWorldUnit       = 100.0
	DefaultForceScalar     = 0.25
	DefaultMaxAppliedForce = 0.1
	DefaultRepelRadius     = 0.35
	DefaultFriction        = 0.65
)

// Params holds every physics constant. CPU and accelerator backends read the
// same Params value so their results stay interchangeable.
type Params struct {
	Width           float32
	Height          float32
	WorldUnit       float32
	ForceScalar     float32
	MaxAppliedForce float32
	RepelRadius     float32
	Friction        float32
}

func DefaultParams() Params {
	return Params{
		Width:           DefaultWorldWidth,
		Height:          DefaultWorldHeight,
		WorldUnit:       DefaultWorldUnit,
		ForceScalar:     DefaultForceScalar,
		MaxAppliedForce: DefaultMaxAppliedForce,
		RepelRadius:     DefaultRepelRadius,
		Friction:        DefaultFriction,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: world size %gx%g", ErrInvalidParams, p.Width, p.Height)
	case p.WorldUnit <= 0:
		return fmt.Errorf("%w: world unit %g", ErrInvalidParams, p.WorldUnit)
	case p.MaxAppliedForce <= 0:
		return fmt.Errorf("%w: max applied force %g", ErrInvalidParams, p.MaxAppliedForce)
	case p.RepelRadius <= 0 || p.RepelRadius >= 1:
		return fmt.Errorf("%w: repel radius %g not in (0, 1)", ErrInvalidParams, p.RepelRadius)
	case p.Friction < 0 || p.Friction > 1:
		return fmt.Errorf("%w: friction %g not in [0, 1]", ErrInvalidParams, p.Friction)
	}
	return nil
}
