package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ShapeType tags a Shape for narrow-phase dispatch.
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	ShapeOrientedBox
)

// Shape is a rigid body's collision geometry. Exactly one concrete type
// (Sphere, Box, OrientedBox) is ever attached to a Body.
type Shape interface {
	Type() ShapeType
	// ComputeAABB returns the world-space bounding box of the shape at
	// the given transform. Box ignores transform.Orientation by design:
	// it is an axis-aligned shape whose extents never rotate. OrientedBox
	// honors it.
	ComputeAABB(transform Transform) AABB
}

// Sphere is defined by a radius. Its AABB depends only on position.
type Sphere struct {
	Radius float32
}

func (s Sphere) Type() ShapeType { return ShapeSphere }

func (s Sphere) ComputeAABB(transform Transform) AABB {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: transform.Position.Sub(r), Max: transform.Position.Add(r)}
}

// Box is an axis-aligned box defined by half-extents. Orientation is not
// consulted by collision or AABB computation — this is the distinction
// from OrientedBox.
type Box struct {
	HalfExtents mgl32.Vec3
}

func (b Box) Type() ShapeType { return ShapeBox }

func (b Box) ComputeAABB(transform Transform) AABB {
	return AABB{
		Min: transform.Position.Sub(b.HalfExtents),
		Max: transform.Position.Add(b.HalfExtents),
	}
}

// OrientedBox is a box defined by half-extents whose orientation
// participates in both its AABB and its SAT narrow-phase test.
type OrientedBox struct {
	HalfExtents mgl32.Vec3
}

func (b OrientedBox) Type() ShapeType { return ShapeOrientedBox }

func (b OrientedBox) ComputeAABB(transform Transform) AABB {
	r := transform.RotationMatrix()
	corners := localCorners(b.HalfExtents)

	first := r.Mul3x1(corners[0]).Add(transform.Position)
	min, max := first, first
	for i := 1; i < len(corners); i++ {
		world := r.Mul3x1(corners[i]).Add(transform.Position)
		min = componentMin(min, world)
		max = componentMax(max, world)
	}
	return AABB{Min: min, Max: max}
}

// Axes returns the box's three world-space face-normal axes (unit length).
func (b OrientedBox) Axes(transform Transform) [3]mgl32.Vec3 {
	r := transform.RotationMatrix()
	return [3]mgl32.Vec3{
		r.Mul3x1(mgl32.Vec3{1, 0, 0}),
		r.Mul3x1(mgl32.Vec3{0, 1, 0}),
		r.Mul3x1(mgl32.Vec3{0, 0, 1}),
	}
}

func localCorners(he mgl32.Vec3) [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{-he.X(), -he.Y(), -he.Z()},
		{+he.X(), -he.Y(), -he.Z()},
		{-he.X(), +he.Y(), -he.Z()},
		{+he.X(), +he.Y(), -he.Z()},
		{-he.X(), -he.Y(), +he.Z()},
		{+he.X(), -he.Y(), +he.Z()},
		{-he.X(), +he.Y(), +he.Z()},
		{+he.X(), +he.Y(), +he.Z()},
	}
}

func componentMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Min(float64(a.X()), float64(b.X()))),
		float32(math.Min(float64(a.Y()), float64(b.Y()))),
		float32(math.Min(float64(a.Z()), float64(b.Z()))),
	}
}

func componentMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Max(float64(a.X()), float64(b.X()))),
		float32(math.Max(float64(a.Y()), float64(b.Y()))),
		float32(math.Max(float64(a.Z()), float64(b.Z()))),
	}
}
