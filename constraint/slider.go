package constraint

import (
	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// Slider (prismatic joint) restricts relative motion to a single shared
// axis: the component of anchor separation perpendicular to the axis is
// driven to zero, and a rotational row keeps the bodies' axes parallel
// so no relative twist accumulates.
type Slider struct {
	BodyA, BodyB               *body.Body
	LocalAnchorA, LocalAnchorB mgl32.Vec3
	LocalAxisA, LocalAxisB     mgl32.Vec3

	anchorA, anchorB mgl32.Vec3
	axisA, axisB     mgl32.Vec3
}

func NewSlider(a, b *body.Body, localAnchorA, localAnchorB, localAxisA, localAxisB mgl32.Vec3) *Slider {
	return &Slider{
		BodyA: a, BodyB: b,
		LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB,
		LocalAxisA: localAxisA, LocalAxisB: localAxisB,
	}
}

func (c *Slider) PreSolve(dt float32) {
	c.anchorA = worldAnchor(c.BodyA, c.LocalAnchorA)
	c.anchorB = worldAnchor(c.BodyB, c.LocalAnchorB)
	c.axisA = worldAxis(c.BodyA, c.LocalAxisA)
	c.axisB = worldAxis(c.BodyB, c.LocalAxisB)
}

func (c *Slider) Solve(dt float32) {
	axis := c.axisA
	if axis.Len() >= nearZero {
		axis = axis.Normalize()
	}

	separation := c.anchorB.Sub(c.anchorA)
	perp := separation.Sub(axis.Mul(separation.Dot(axis)))
	solveVectorRow(c.BodyA, c.BodyB, perp, dt)

	solveRotationalRow(c.BodyA, c.BodyB, c.axisA.Cross(c.axisB), dt)
}

func (c *Slider) PostSolve() {}
