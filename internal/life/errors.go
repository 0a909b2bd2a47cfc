package life

import "errors"

// Domain errors for world construction.
var (
	// ErrUnknownColor indicates a color name outside the closed set.
	ErrUnknownColor = errors.New("life: unknown color")

	// ErrUnknownMode indicates a physics mode name that is neither real nor emergence.
	ErrUnknownMode = errors.New("life: unknown physics mode")

	// ErrInvalidParams indicates a physics constant outside its valid range.
	ErrInvalidParams = errors.New("life: physics parameter out of valid bounds")
)
