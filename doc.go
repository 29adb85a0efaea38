// Package gale is a real-time, impulse-based 3D rigid-body physics
// engine. It integrates bodies with semi-implicit Euler, finds
// candidate contact pairs with a uniform spatial hash grid, resolves
// sphere/box/oriented-box overlaps with a sequential-impulse solver,
// and drives a small set of articulated constraints (point-to-point,
// distance, hinge, slider, cone-twist) plus single-body kinematic
// drivers on top.
//
// Engine is the host-facing entry point: it owns a World, advances it
// on a fixed timestep accumulator, and exposes body/constraint
// creation, scene persistence, and debug-draw data. World owns the
// simulation state itself and can be used directly by callers that
// want to manage their own timestep loop.
package gale
