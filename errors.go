package gale

import "errors"

// Sentinel errors surfaced by configuration and scene I/O operations.
// Physics operations proper never return an error — they degrade
// gracefully instead.
var (
	// ErrInvalidParameter is returned by SetFixedTimeStep for a
	// non-positive timestep.
	ErrInvalidParameter = errors.New("gale: invalid parameter")

	// ErrSceneParse is returned by LoadScene when the input does not
	// match the line-oriented scene format.
	ErrSceneParse = errors.New("gale: scene: parse error")
)
