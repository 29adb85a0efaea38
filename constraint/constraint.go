// Package constraint implements the articulated-joint solver family:
// point-to-point, hinge, slider, distance, and cone-twist, plus the
// single-body kinematic hinge Driver. Every two-body constraint shares
// the same preSolve/solve/postSolve shape and a Jacobian/effective-mass
// pattern; rows tolerate zero effective mass (both bodies static) by
// skipping themselves rather than dividing by zero.
package constraint

import (
	"math"

	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

const nearZero = 1e-6

// Constraint is satisfied by every two-body articulated joint. A
// single-body kinematic Driver deliberately does NOT implement this
// interface — it is stepped through its own Drive method so a
// constraint list can never contain a joint whose Solve would
// dereference a nil companion body.
type Constraint interface {
	PreSolve(dt float32)
	Solve(dt float32)
	PostSolve()
}

// effectiveLinearMass returns 1/(invMassA+invMassB), or 0 if both bodies
// are static (the row must then be skipped by the caller).
func effectiveLinearMass(a, b *body.Body) float32 {
	sum := a.InvMass() + b.InvMass()
	if sum < nearZero {
		return 0
	}
	return 1 / sum
}

// rotationalInvInertia returns a body's contribution to a rotational
// row's effective mass. invInertiaTensor is always the identity for a
// dynamic body and zero for a static one, so every axis contributes
// the same scalar.
func rotationalInvInertia(b *body.Body) float32 {
	if b.IsStatic() {
		return 0
	}
	return 1
}

// effectiveAngularMass returns 1/(invIA+invIB), or 0 if both are static.
func effectiveAngularMass(a, b *body.Body) float32 {
	sum := rotationalInvInertia(a) + rotationalInvInertia(b)
	if sum < nearZero {
		return 0
	}
	return 1 / sum
}

// worldAnchor converts a body-local anchor point to world space.
func worldAnchor(b *body.Body, local mgl32.Vec3) mgl32.Vec3 {
	return b.Transform.Orientation.Rotate(local).Add(b.Transform.Position)
}

// worldAxis converts a body-local axis direction to world space.
func worldAxis(b *body.Body, local mgl32.Vec3) mgl32.Vec3 {
	return b.Transform.Orientation.Rotate(local)
}

// solvePositionRow is the shared translational row used by
// point-to-point, distance, and (for their anchor row) hinge and slider:
// it drives the separation between two world anchors to restLength along
// the current separation direction, applying a velocity impulse
// λ = -effectiveMass*error/dt.
func solvePositionRow(a, b *body.Body, anchorA, anchorB mgl32.Vec3, restLength, dt float32) {
	effMass := effectiveLinearMass(a, b)
	if effMass == 0 {
		return
	}

	separation := anchorB.Sub(anchorA)
	length := separation.Len()
	if length < nearZero {
		return
	}
	direction := separation.Mul(1 / length)
	errVal := length - restLength
	if dt < nearZero {
		return
	}

	lambda := -effMass * errVal / dt
	impulse := direction.Mul(lambda)

	a.Velocity = a.Velocity.Sub(impulse.Mul(a.InvMass()))
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InvMass()))
}

// solveVectorRow drives an arbitrary error vector (already expressed in
// the constrained subspace, e.g. the component of separation
// perpendicular to a slider's free axis) to zero, applying an impulse
// along the error vector's own direction.
func solveVectorRow(a, b *body.Body, errVec mgl32.Vec3, dt float32) {
	effMass := effectiveLinearMass(a, b)
	if effMass == 0 || dt < nearZero {
		return
	}
	length := errVec.Len()
	if length < nearZero {
		return
	}

	lambda := -effMass * length / dt
	impulse := errVec.Mul(1 / length).Mul(lambda)

	a.Velocity = a.Velocity.Sub(impulse.Mul(a.InvMass()))
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InvMass()))
}

// solveRotationalRow is the shared rotational row used by hinge
// (axis alignment), slider (axis alignment), and cone-twist (swing,
// twist): error is a small rotation vector (axisA x axisB for
// alignment); applies an angular velocity impulse λ = -effectiveMass*
// error/dt to each body about that vector, with opposite sign.
func solveRotationalRow(a, b *body.Body, errVec mgl32.Vec3, dt float32) {
	effMass := effectiveAngularMass(a, b)
	if effMass == 0 || dt < nearZero {
		return
	}

	lambda := errVec.Mul(-effMass / dt)
	a.AngularVelocity = a.AngularVelocity.Sub(lambda.Mul(rotationalInvInertia(a)))
	b.AngularVelocity = b.AngularVelocity.Add(lambda.Mul(rotationalInvInertia(b)))
}

func angleBetween(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la < nearZero || lb < nearZero {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return float32(math.Acos(float64(cos)))
}
