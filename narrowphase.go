package gale

import (
	"math"

	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// nearZero is the default "near zero" numerical threshold.
const nearZero = 1e-6

// Contact is the ephemeral per-pair result of a narrow-phase test.
// Normal points from a to b; Penetration > 0 means overlap.
type Contact struct {
	Normal      mgl32.Vec3
	Penetration float32
}

// narrowPhase dispatches to the appropriate shape-pair test. A shape
// combination with no test (any pair involving a sphere and a box or
// oriented box) yields no contact rather than an error.
func narrowPhase(a, b *body.Body) (Contact, bool) {
	switch sa, sb := a.Shape.Type(), b.Shape.Type(); {
	case sa == body.ShapeSphere && sb == body.ShapeSphere:
		return sphereVsSphere(a, b)

	case sa == body.ShapeBox && sb == body.ShapeBox:
		return aabbVsAABB(a, b)

	case sa == body.ShapeOrientedBox && sb == body.ShapeOrientedBox:
		return obbVsOBB(orientedBoxOf(a), orientedBoxOf(b))

	case sa == body.ShapeOrientedBox && sb == body.ShapeBox:
		return obbVsOBB(orientedBoxOf(a), axisAlignedBoxOf(b))

	case sa == body.ShapeBox && sb == body.ShapeOrientedBox:
		return obbVsOBB(axisAlignedBoxOf(a), orientedBoxOf(b))

	default:
		return Contact{}, false
	}
}

// sphereVsSphere tests two spheres for overlap.
func sphereVsSphere(a, b *body.Body) (Contact, bool) {
	sa := a.Shape.(body.Sphere)
	sb := b.Shape.(body.Sphere)

	d := b.Transform.Position.Sub(a.Transform.Position)
	radiusSum := sa.Radius + sb.Radius
	distSq := d.Dot(d)
	if distSq >= radiusSum*radiusSum {
		return Contact{}, false
	}

	dist := float32(math.Sqrt(float64(distSq)))
	if dist < nearZero {
		return Contact{Normal: mgl32.Vec3{1, 0, 0}, Penetration: radiusSum}, true
	}
	return Contact{Normal: d.Mul(1 / dist), Penetration: radiusSum - dist}, true
}

// aabbVsAABB tests two axis-aligned boxes for overlap. Ties on minimum
// overlap are broken by axis priority x, then y, then z.
func aabbVsAABB(a, b *body.Body) (Contact, bool) {
	boxA := a.Shape.ComputeAABB(a.Transform)
	boxB := b.Shape.ComputeAABB(b.Transform)

	overlapX := minF(boxA.Max.X(), boxB.Max.X()) - maxF(boxA.Min.X(), boxB.Min.X())
	overlapY := minF(boxA.Max.Y(), boxB.Max.Y()) - maxF(boxA.Min.Y(), boxB.Min.Y())
	overlapZ := minF(boxA.Max.Z(), boxB.Max.Z()) - maxF(boxA.Min.Z(), boxB.Min.Z())

	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return Contact{}, false
	}

	centerA := boxA.Min.Add(boxA.Max).Mul(0.5)
	centerB := boxB.Min.Add(boxB.Max).Mul(0.5)
	diff := centerB.Sub(centerA)

	axis, penetration := mgl32.Vec3{1, 0, 0}, overlapX
	if overlapY < penetration {
		axis, penetration = mgl32.Vec3{0, 1, 0}, overlapY
	}
	if overlapZ < penetration {
		axis, penetration = mgl32.Vec3{0, 0, 1}, overlapZ
	}

	normal := axis
	if diff.Dot(axis) < 0 {
		normal = axis.Mul(-1)
	}
	return Contact{Normal: normal, Penetration: penetration}, true
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// orientedBox is the shared representation SAT operates on, so Box
// (synthesized with identity axes) and OrientedBox (with its real
// orientation) can share a single implementation.
type orientedBox struct {
	center mgl32.Vec3
	axes   [3]mgl32.Vec3
	half   mgl32.Vec3
}

func orientedBoxOf(b *body.Body) orientedBox {
	shape := b.Shape.(body.OrientedBox)
	return orientedBox{
		center: b.Transform.Position,
		axes:   shape.Axes(b.Transform),
		half:   shape.HalfExtents,
	}
}

func axisAlignedBoxOf(b *body.Body) orientedBox {
	shape := b.Shape.(body.Box)
	return orientedBox{
		center: b.Transform.Position,
		axes:   [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		half:   shape.HalfExtents,
	}
}

// projectedRadius returns the box's half-width along a (unit) axis.
func (o orientedBox) projectedRadius(axis mgl32.Vec3) float32 {
	return absF(o.half.X()*o.axes[0].Dot(axis)) +
		absF(o.half.Y()*o.axes[1].Dot(axis)) +
		absF(o.half.Z()*o.axes[2].Dot(axis))
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// obbVsOBB runs the 15-axis separating-axis test between two oriented
// boxes.
func obbVsOBB(a, b orientedBox) (Contact, bool) {
	axes := make([]mgl32.Vec3, 0, 15)
	axes = append(axes, a.axes[0], a.axes[1], a.axes[2])
	axes = append(axes, b.axes[0], b.axes[1], b.axes[2])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := a.axes[i].Cross(b.axes[j])
			if cross.Len() < nearZero {
				continue
			}
			axes = append(axes, cross.Normalize())
		}
	}

	diff := b.center.Sub(a.center)

	bestOverlap := float32(math.MaxFloat32)
	var bestAxis mgl32.Vec3
	found := false

	for _, axis := range axes {
		radiusA := a.projectedRadius(axis)
		radiusB := b.projectedRadius(axis)
		distance := absF(diff.Dot(axis))
		overlap := radiusA + radiusB - distance
		if overlap <= 0 {
			return Contact{}, false
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			bestAxis = axis
			found = true
		}
	}

	if !found {
		return Contact{}, false
	}

	normal := bestAxis
	if diff.Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}
	return Contact{Normal: normal, Penetration: bestOverlap}, true
}
