package constraint

import (
	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// ConeTwist combines a ball joint anchor with swing and twist limits:
// the swing row activates once the angle between the two bodies' main
// axes exceeds SwingSpan, and the twist row activates once rotation
// about the shared axis (measured via a perpendicular reference vector
// on each body) exceeds TwistSpan. Both default to π (unconstrained).
type ConeTwist struct {
	BodyA, BodyB                   *body.Body
	LocalAnchorA, LocalAnchorB     mgl32.Vec3
	LocalAxisA, LocalAxisB         mgl32.Vec3
	LocalTwistRefA, LocalTwistRefB mgl32.Vec3
	SwingSpan, TwistSpan           float32

	anchorA, anchorB     mgl32.Vec3
	axisA, axisB         mgl32.Vec3
	twistRefA, twistRefB mgl32.Vec3
}

func NewConeTwist(a, b *body.Body, localAnchorA, localAnchorB, localAxisA, localAxisB, localTwistRefA, localTwistRefB mgl32.Vec3) *ConeTwist {
	return &ConeTwist{
		BodyA: a, BodyB: b,
		LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB,
		LocalAxisA: localAxisA, LocalAxisB: localAxisB,
		LocalTwistRefA: localTwistRefA, LocalTwistRefB: localTwistRefB,
		SwingSpan: mgl32.DegToRad(180), TwistSpan: mgl32.DegToRad(180),
	}
}

func (c *ConeTwist) PreSolve(dt float32) {
	c.anchorA = worldAnchor(c.BodyA, c.LocalAnchorA)
	c.anchorB = worldAnchor(c.BodyB, c.LocalAnchorB)
	c.axisA = worldAxis(c.BodyA, c.LocalAxisA)
	c.axisB = worldAxis(c.BodyB, c.LocalAxisB)
	c.twistRefA = worldAxis(c.BodyA, c.LocalTwistRefA)
	c.twistRefB = worldAxis(c.BodyB, c.LocalTwistRefB)
}

func (c *ConeTwist) Solve(dt float32) {
	solvePositionRow(c.BodyA, c.BodyB, c.anchorA, c.anchorB, 0, dt)

	if angleBetween(c.axisA, c.axisB) > c.SwingSpan {
		solveRotationalRow(c.BodyA, c.BodyB, c.axisA.Cross(c.axisB), dt)
	}

	// Project twist references onto the plane perpendicular to the
	// shared axis before comparing them, so swing doesn't also trip the
	// twist row.
	axis := c.axisA
	if axis.Len() >= nearZero {
		axis = axis.Normalize()
	}
	refA := c.twistRefA.Sub(axis.Mul(c.twistRefA.Dot(axis)))
	refB := c.twistRefB.Sub(axis.Mul(c.twistRefB.Dot(axis)))

	if angleBetween(refA, refB) > c.TwistSpan {
		solveRotationalRow(c.BodyA, c.BodyB, refA.Cross(refB), dt)
	}
}

func (c *ConeTwist) PostSolve() {}
