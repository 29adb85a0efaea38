package constraint

import (
	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// Hinge restricts two bodies to rotate about a shared axis through a
// shared anchor: a translational anchor row plus a rotational row that
// keeps the two bodies' hinge axes parallel.
type Hinge struct {
	BodyA, BodyB               *body.Body
	LocalAnchorA, LocalAnchorB mgl32.Vec3
	LocalAxisA, LocalAxisB     mgl32.Vec3

	anchorA, anchorB mgl32.Vec3
	axisA, axisB     mgl32.Vec3
}

func NewHinge(a, b *body.Body, localAnchorA, localAnchorB, localAxisA, localAxisB mgl32.Vec3) *Hinge {
	return &Hinge{
		BodyA: a, BodyB: b,
		LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB,
		LocalAxisA: localAxisA, LocalAxisB: localAxisB,
	}
}

func (c *Hinge) PreSolve(dt float32) {
	c.anchorA = worldAnchor(c.BodyA, c.LocalAnchorA)
	c.anchorB = worldAnchor(c.BodyB, c.LocalAnchorB)
	c.axisA = worldAxis(c.BodyA, c.LocalAxisA)
	c.axisB = worldAxis(c.BodyB, c.LocalAxisB)
}

func (c *Hinge) Solve(dt float32) {
	solvePositionRow(c.BodyA, c.BodyB, c.anchorA, c.anchorB, 0, dt)
	solveRotationalRow(c.BodyA, c.BodyB, c.axisA.Cross(c.axisB), dt)
}

func (c *Hinge) PostSolve() {}

// Driver is a single-body kinematic hinge: it rotates Body about a
// fixed world pivot/axis rather than reacting to another body. It is
// deliberately kept out of the Constraint interface, since a one-body
// joint forced into a two-body shape would need a nullable companion
// body and a branch in every Solve call to skip it.
//
// Two modes, selected by IsRotating: when true, the body spins
// continuously at AngularVelocity radians/sec. When false (the default),
// the host drives the joint by pushing a TargetAngle each frame (via
// SetTargetAngle) and Drive rotates by exactly the delta since the last
// call, converging to a stop once the host stops changing the target.
type Driver struct {
	Body       *body.Body
	LocalPivot mgl32.Vec3
	LocalAxis  mgl32.Vec3

	AngularVelocity float32 // radians/sec about LocalAxis, used when IsRotating
	IsRotating      bool
	TargetAngle     float32 // radians about LocalAxis, used when !IsRotating

	currentAngle float32
}

func NewDriver(b *body.Body, localPivot, localAxis mgl32.Vec3, angularVelocity float32, isRotating bool) *Driver {
	return &Driver{
		Body: b, LocalPivot: localPivot, LocalAxis: localAxis,
		AngularVelocity: angularVelocity, IsRotating: isRotating,
	}
}

// Drive advances the driven body's orientation about its world-space
// hinge axis, pivoting about the world-space pivot point so the pivot
// itself stays fixed in the body's frame.
func (d *Driver) Drive(dt float32) {
	if dt <= 0 {
		return
	}

	var deltaAngle float32
	if d.IsRotating {
		deltaAngle = d.AngularVelocity * dt
	} else {
		deltaAngle = d.TargetAngle - d.currentAngle
		d.currentAngle = d.TargetAngle
	}
	if deltaAngle == 0 {
		return
	}

	pivot := worldAnchor(d.Body, d.LocalPivot)
	axis := worldAxis(d.Body, d.LocalAxis)
	if axis.Len() < nearZero {
		return
	}
	axis = axis.Normalize()

	delta := mgl32.QuatRotate(deltaAngle, axis)

	offset := d.Body.Transform.Position.Sub(pivot)
	d.Body.Transform.Position = pivot.Add(delta.Rotate(offset))
	d.Body.Transform.Orientation = delta.Mul(d.Body.Transform.Orientation).Normalize()
}

// SetTargetAngle updates the angle a non-rotating driver servos toward,
// e.g. in response to a host-level input event.
func (d *Driver) SetTargetAngle(angle float32) {
	d.TargetAngle = angle
}

// SetAngularVelocity updates the continuous spin speed used when
// IsRotating is true.
func (d *Driver) SetAngularVelocity(v float32) {
	d.AngularVelocity = v
}
