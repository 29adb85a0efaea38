package body

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSphere_ComputeAABB(t *testing.T) {
	s := Sphere{Radius: 2}
	transform := Transform{Position: mgl32.Vec3{1, 2, 3}, Orientation: mgl32.QuatIdent()}
	aabb := s.ComputeAABB(transform)

	want := AABB{Min: mgl32.Vec3{-1, 0, 1}, Max: mgl32.Vec3{3, 4, 5}}
	if aabb != want {
		t.Errorf("ComputeAABB() = %v, want %v", aabb, want)
	}
}

func TestBox_ComputeAABB_IgnoresOrientation(t *testing.T) {
	b := Box{HalfExtents: mgl32.Vec3{1, 1, 1}}
	rotated := Transform{
		Position:    mgl32.Vec3{0, 0, 0},
		Orientation: mgl32.QuatRotate(float32(math.Pi)/4, mgl32.Vec3{0, 1, 0}),
	}
	aabb := b.ComputeAABB(rotated)

	want := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	if aabb != want {
		t.Errorf("Box.ComputeAABB() honored orientation: got %v, want %v", aabb, want)
	}
}

func TestOrientedBox_ComputeAABB_GrowsUnderRotation(t *testing.T) {
	ob := OrientedBox{HalfExtents: mgl32.Vec3{1, 1, 1}}
	identity := Transform{Position: mgl32.Vec3{0, 0, 0}, Orientation: mgl32.QuatIdent()}
	rotated := Transform{
		Position:    mgl32.Vec3{0, 0, 0},
		Orientation: mgl32.QuatRotate(float32(math.Pi)/4, mgl32.Vec3{0, 0, 1}),
	}

	straightAABB := ob.ComputeAABB(identity)
	rotatedAABB := ob.ComputeAABB(rotated)

	dx := rotatedAABB.Max.X() - rotatedAABB.Min.X()
	sx := straightAABB.Max.X() - straightAABB.Min.X()
	if dx <= sx {
		t.Errorf("expected rotated AABB to grow on x: rotated=%v straight=%v", dx, sx)
	}
}

func TestOrientedBox_Axes_OrthonormalUnderIdentity(t *testing.T) {
	ob := OrientedBox{HalfExtents: mgl32.Vec3{1, 1, 1}}
	axes := ob.Axes(Transform{Orientation: mgl32.QuatIdent()})

	want := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := range axes {
		if axes[i] != want[i] {
			t.Errorf("axis %d = %v, want %v", i, axes[i], want[i])
		}
	}
}
