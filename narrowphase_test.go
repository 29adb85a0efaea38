package gale

import (
	"math"
	"testing"

	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

func sphereBodyAt(pos mgl32.Vec3, r float32) *body.Body {
	return body.New(body.Transform{Position: pos, Orientation: mgl32.QuatIdent()}, body.Sphere{Radius: r}, 1)
}

func boxBodyAt(pos mgl32.Vec3, he mgl32.Vec3) *body.Body {
	return body.New(body.Transform{Position: pos, Orientation: mgl32.QuatIdent()}, body.Box{HalfExtents: he}, 1)
}

func obbBodyAt(pos mgl32.Vec3, he mgl32.Vec3, orientation mgl32.Quat) *body.Body {
	return body.New(body.Transform{Position: pos, Orientation: orientation}, body.OrientedBox{HalfExtents: he}, 1)
}

func TestSphereVsSphere_Separated(t *testing.T) {
	a := sphereBodyAt(mgl32.Vec3{0, 0, 0}, 1)
	b := sphereBodyAt(mgl32.Vec3{5, 0, 0}, 1)

	if _, ok := narrowPhase(a, b); ok {
		t.Error("expected no contact for separated spheres")
	}
}

func TestSphereVsSphere_Overlapping(t *testing.T) {
	a := sphereBodyAt(mgl32.Vec3{0, 0, 0}, 1)
	b := sphereBodyAt(mgl32.Vec3{1.5, 0, 0}, 1)

	c, ok := narrowPhase(a, b)
	if !ok {
		t.Fatal("expected contact")
	}
	if math.Abs(float64(c.Penetration-0.5)) > 1e-4 {
		t.Errorf("penetration = %v, want 0.5", c.Penetration)
	}
	if c.Normal != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("normal = %v, want (1,0,0)", c.Normal)
	}
}

func TestSphereVsSphere_CoincidentCenters(t *testing.T) {
	a := sphereBodyAt(mgl32.Vec3{0, 0, 0}, 1)
	b := sphereBodyAt(mgl32.Vec3{0, 0, 0}, 1)

	c, ok := narrowPhase(a, b)
	if !ok {
		t.Fatal("expected contact for coincident spheres")
	}
	if c.Penetration != 2 {
		t.Errorf("penetration = %v, want 2 (rA+rB)", c.Penetration)
	}
	if c.Normal != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("normal = %v, want default axis (1,0,0)", c.Normal)
	}
}

func TestAABBVsAABB_Separated(t *testing.T) {
	a := boxBodyAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	b := boxBodyAt(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{1, 1, 1})

	if _, ok := narrowPhase(a, b); ok {
		t.Error("expected no contact")
	}
}

func TestAABBVsAABB_MinimumOverlapAxis(t *testing.T) {
	a := boxBodyAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	b := boxBodyAt(mgl32.Vec3{1.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1})

	c, ok := narrowPhase(a, b)
	if !ok {
		t.Fatal("expected contact")
	}
	// overlap x = 0.5, overlap y = 1.5, overlap z = 1.5 -> x is minimum.
	if c.Normal != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("normal = %v, want (1,0,0) (min overlap axis)", c.Normal)
	}
	if math.Abs(float64(c.Penetration-0.5)) > 1e-4 {
		t.Errorf("penetration = %v, want 0.5", c.Penetration)
	}
}

func TestAABBVsAABB_IgnoresOrientedBoxRotation(t *testing.T) {
	// Box shapes never consult orientation; verify narrowPhase still
	// resolves via the plain AABB path regardless of a set orientation.
	a := body.New(body.Transform{Position: mgl32.Vec3{0, 0, 0}, Orientation: mgl32.QuatRotate(1, mgl32.Vec3{0, 1, 0})}, body.Box{HalfExtents: mgl32.Vec3{1, 1, 1}}, 1)
	b := boxBodyAt(mgl32.Vec3{1.5, 0, 0}, mgl32.Vec3{1, 1, 1})

	if _, ok := narrowPhase(a, b); !ok {
		t.Error("expected contact regardless of orientation field")
	}
}

func TestOBBVsOBB_Separated(t *testing.T) {
	a := obbBodyAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	b := obbBodyAt(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())

	if _, ok := narrowPhase(a, b); ok {
		t.Error("expected no contact")
	}
}

func TestOBBVsOBB_RotatedOverlap(t *testing.T) {
	a := obbBodyAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	b := obbBodyAt(mgl32.Vec3{1.8, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatRotate(float32(math.Pi)/4, mgl32.Vec3{0, 0, 1}))

	c, ok := narrowPhase(a, b)
	if !ok {
		t.Fatal("expected contact between rotated boxes")
	}
	if c.Penetration <= 0 {
		t.Errorf("penetration = %v, want > 0", c.Penetration)
	}
}

func TestOBBVsBox_ReducesToIdentityOrientation(t *testing.T) {
	a := obbBodyAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	b := boxBodyAt(mgl32.Vec3{1.5, 0, 0}, mgl32.Vec3{1, 1, 1})

	c, ok := narrowPhase(a, b)
	if !ok {
		t.Fatal("expected contact")
	}
	if math.Abs(float64(c.Penetration-0.5)) > 1e-4 {
		t.Errorf("penetration = %v, want 0.5", c.Penetration)
	}
}

func TestSphereVsBox_UnsupportedPairYieldsNoContact(t *testing.T) {
	a := sphereBodyAt(mgl32.Vec3{0, 0, 0}, 1)
	b := boxBodyAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})

	if _, ok := narrowPhase(a, b); ok {
		t.Error("sphere-vs-box is not a contract-specified pair; expected graceful no-contact")
	}
}
