package constraint

import (
	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// PointToPoint pins a point on BodyA to a point on BodyB (a ball joint):
// a single translational row with rest length zero.
type PointToPoint struct {
	BodyA, BodyB               *body.Body
	LocalAnchorA, LocalAnchorB mgl32.Vec3

	anchorA, anchorB mgl32.Vec3
}

func NewPointToPoint(a, b *body.Body, localAnchorA, localAnchorB mgl32.Vec3) *PointToPoint {
	return &PointToPoint{BodyA: a, BodyB: b, LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB}
}

func (c *PointToPoint) PreSolve(dt float32) {
	c.anchorA = worldAnchor(c.BodyA, c.LocalAnchorA)
	c.anchorB = worldAnchor(c.BodyB, c.LocalAnchorB)
}

func (c *PointToPoint) Solve(dt float32) {
	solvePositionRow(c.BodyA, c.BodyB, c.anchorA, c.anchorB, 0, dt)
}

func (c *PointToPoint) PostSolve() {}
