package constraint

import (
	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// Distance holds the separation between two anchors to a fixed rest
// length: the same translational row as PointToPoint, with a non-zero
// rest length.
type Distance struct {
	BodyA, BodyB               *body.Body
	LocalAnchorA, LocalAnchorB mgl32.Vec3
	RestLength                 float32

	anchorA, anchorB mgl32.Vec3
}

func NewDistance(a, b *body.Body, localAnchorA, localAnchorB mgl32.Vec3, restLength float32) *Distance {
	return &Distance{BodyA: a, BodyB: b, LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB, RestLength: restLength}
}

func (c *Distance) PreSolve(dt float32) {
	c.anchorA = worldAnchor(c.BodyA, c.LocalAnchorA)
	c.anchorB = worldAnchor(c.BodyB, c.LocalAnchorB)
}

func (c *Distance) Solve(dt float32) {
	solvePositionRow(c.BodyA, c.BodyB, c.anchorA, c.anchorB, c.RestLength, dt)
}

func (c *Distance) PostSolve() {}
