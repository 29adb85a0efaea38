package gale

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEngine_DefaultSettingsAppliedToNewBodies(t *testing.T) {
	e := NewEngine()
	h := e.CreateSphere(mgl32.Vec3{0, 5, 0}, 1, 1)

	b := e.GetWorld().Body(h)
	if b.Material.Restitution != 0.5 || b.Material.Friction != 0.3 {
		t.Errorf("material = %+v, want engine defaults 0.5/0.3", b.Material)
	}
}

func TestEngine_SetFixedTimeStepRejectsNonPositive(t *testing.T) {
	e := NewEngine()
	if err := e.SetFixedTimeStep(0); err != ErrInvalidParameter {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
	if err := e.SetFixedTimeStep(-1); err != ErrInvalidParameter {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
	if err := e.SetFixedTimeStep(1.0 / 30); err != nil {
		t.Errorf("unexpected error for valid dt: %v", err)
	}
}

func TestEngine_UpdateStepsWholeSubstepsOnly(t *testing.T) {
	e := NewEngine(WithFixedTimeStep(0.1))
	h := e.CreateSphere(mgl32.Vec3{0, 5, 0}, 1, 1)
	before := e.GetWorld().Body(h).Transform.Position

	e.Update(0.05) // less than one substep
	if e.GetWorld().Body(h).Transform.Position != before {
		t.Error("partial frame time should not advance the world")
	}

	e.Update(0.05) // now crosses the 0.1s threshold
	if e.GetWorld().Body(h).Transform.Position == before {
		t.Error("accumulated frame time should trigger exactly one substep")
	}
}

func TestEngine_UpdateClampsToMaxTimeStep(t *testing.T) {
	e := NewEngine(WithFixedTimeStep(1.0/60), WithMaxTimeStep(0.1), WithMaxSubSteps(100))
	e.Update(10.0) // far exceeds MaxTimeStep

	// At most MaxTimeStep/FixedTimeStep substeps should have run, i.e. 6.
	if got := len(e.frameDurations); got > 6 {
		t.Errorf("substeps run = %d, want <= 6 after clamping wallDt to MaxTimeStep", got)
	}
}

func TestEngine_GetAverageFPSMatchesFixedTimeStep(t *testing.T) {
	e := NewEngine(WithFixedTimeStep(1.0 / 60))
	for i := 0; i < 10; i++ {
		e.Update(1.0 / 60)
	}
	fps := e.GetAverageFPS()
	if fps < 59 || fps > 61 {
		t.Errorf("average fps = %v, want ~60", fps)
	}
}

func TestEngine_ResetSceneClearsBodies(t *testing.T) {
	e := NewEngine()
	e.CreateSphere(mgl32.Vec3{0, 0, 0}, 1, 1)
	if len(e.GetWorld().Bodies()) == 0 {
		t.Fatal("test setup: expected a body")
	}

	e.ResetScene()
	if len(e.GetWorld().Bodies()) != 0 {
		t.Error("ResetScene should clear all bodies")
	}
}

func TestEngine_ToggleDebugDrawGatesOutput(t *testing.T) {
	e := NewEngine()
	e.CreateBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}, 1)

	e.Update(1.0 / 60)
	if data := e.GetDebugDrawData(); data.Lines != nil {
		t.Error("debug draw should be empty until toggled on")
	}

	e.ToggleDebugDraw()
	e.ToggleColliders()
	e.Update(1.0 / 60)
	if data := e.GetDebugDrawData(); len(data.Lines) == 0 {
		t.Error("expected collider wireframe lines once enabled")
	}
}

func TestEngine_CreateBoxUsesFullExtentSize(t *testing.T) {
	e := NewEngine()
	h := e.CreateBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, 6}, 1)

	shape := e.GetWorld().Body(h).Shape
	aabb := shape.ComputeAABB(e.GetWorld().Body(h).Transform)
	if got := aabb.Max.Sub(aabb.Min); got.X() != 2 || got.Y() != 4 || got.Z() != 6 {
		t.Errorf("full extents = %v, want (2,4,6)", got)
	}
}

func TestEngine_CreateHingeJoint_UnknownBodyIsError(t *testing.T) {
	e := NewEngine()
	a := e.CreateSphere(mgl32.Vec3{0, 0, 0}, 1, 1)

	_, err := e.CreateHingeJoint(a, BodyHandle{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1})
	if err != ErrInvalidParameter {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestEngine_CreateHingeConstraintAndSetRotation(t *testing.T) {
	e := NewEngine()
	a := e.CreateBox(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 1, 1}, 1)

	h, err := e.CreateHingeConstraint(a, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.SetHingeConstraintRotation(h, 1.0)
	if got := e.GetWorld().Driver(h).TargetAngle; got != 1.0 {
		t.Errorf("TargetAngle = %v, want 1.0", got)
	}
}

func TestEngine_SetHingeConstraintRotation_UnknownHandleIsSilentNoop(t *testing.T) {
	e := NewEngine()
	e.SetHingeConstraintRotation(ConstraintHandle{}, 1.0) // must not panic
}

func TestEngine_CreatePlaneIsStaticAndThin(t *testing.T) {
	e := NewEngine()
	h := e.CreatePlane(mgl32.Vec3{0, 1, 0}, 0, 0)

	b := e.GetWorld().Body(h)
	if !b.IsStatic() {
		t.Error("plane should be static")
	}
	aabb := b.Shape.ComputeAABB(b.Transform)
	if aabb.Max.Y()-aabb.Min.Y() > 1 {
		t.Errorf("plane should be thin along its normal axis, got thickness %v", aabb.Max.Y()-aabb.Min.Y())
	}
}
