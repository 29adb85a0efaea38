// Package body implements rigid-body kinematic state, mass properties,
// and collision shapes for the gale physics core.
package body

import "github.com/go-gl/mathgl/mgl32"

// Transform is a rigid body's position and orientation in world space.
type Transform struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// NewTransform returns the identity transform: origin, no rotation.
func NewTransform() Transform {
	return Transform{
		Position:    mgl32.Vec3{0, 0, 0},
		Orientation: mgl32.QuatIdent(),
	}
}

// RotationMatrix converts the orientation quaternion to a 3x3 rotation
// matrix using the standard identities (1-2y²-2z², ...).
func (t Transform) RotationMatrix() mgl32.Mat3 {
	return t.Orientation.Mat4().Mat3()
}
