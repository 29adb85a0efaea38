package gale

import (
	"bufio"
	"fmt"
	"io"

	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// sceneShapeTag is the on-disk shape discriminator used by the
// line-oriented scene format. Values are part of the format contract
// and must never be renumbered.
type sceneShapeTag int

const (
	sceneShapeSphere      sceneShapeTag = 0
	sceneShapeBox         sceneShapeTag = 1
	sceneShapeOrientedBox sceneShapeTag = 2
)

// SaveScene writes the engine's current settings and bodies in a
// line-oriented text format:
//
//	settings
//	fixedTimeStep maxTimeStep maxSubSteps gravityX gravityY gravityZ defaultRestitution defaultFriction
//	bodies
//	<count>
//	shapeInt x y z hx hy hz mass
//	...
//
// Constraints and drivers are not part of the persisted format.
func (e *Engine) SaveScene(w io.Writer) error {
	s := e.settings
	if _, err := fmt.Fprintln(w, "settings"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%g %g %d %g %g %g %g %g\n",
		s.FixedTimeStep, s.MaxTimeStep, s.MaxSubSteps,
		s.Gravity.X(), s.Gravity.Y(), s.Gravity.Z(),
		s.DefaultRestitution, s.DefaultFriction); err != nil {
		return err
	}

	handles := e.world.Bodies()
	if _, err := fmt.Fprintln(w, "bodies"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, len(handles)); err != nil {
		return err
	}

	for _, h := range handles {
		b := e.world.Body(h)
		tag, hx, hy, hz := sceneShapeOf(b.Shape)
		pos := b.Transform.Position
		if _, err := fmt.Fprintf(w, "%d %g %g %g %g %g %g %g\n",
			tag, pos.X(), pos.Y(), pos.Z(), hx, hy, hz, b.Mass()); err != nil {
			return err
		}
	}
	return nil
}

func sceneShapeOf(s body.Shape) (tag sceneShapeTag, hx, hy, hz float32) {
	switch shape := s.(type) {
	case body.Sphere:
		return sceneShapeSphere, shape.Radius, 0, 0
	case body.Box:
		return sceneShapeBox, shape.HalfExtents.X(), shape.HalfExtents.Y(), shape.HalfExtents.Z()
	case body.OrientedBox:
		return sceneShapeOrientedBox, shape.HalfExtents.X(), shape.HalfExtents.Y(), shape.HalfExtents.Z()
	default:
		return sceneShapeTag(-1), 0, 0, 0
	}
}

// LoadScene replaces the engine's world with one parsed from r in the
// scene format above. The world is reset before parsing begins, so a
// failed load always leaves the engine with an empty world rather than
// a partially-populated one.
func (e *Engine) LoadScene(r io.Reader) error {
	e.ResetScene()

	scanner := bufio.NewScanner(r)

	if !scanner.Scan() || scanner.Text() != "settings" {
		return fmt.Errorf("%w: expected \"settings\" header", ErrSceneParse)
	}
	if !scanner.Scan() {
		return fmt.Errorf("%w: missing settings line", ErrSceneParse)
	}

	var s Settings
	var gx, gy, gz float32
	n, err := fmt.Sscanf(scanner.Text(), "%g %g %d %g %g %g %g %g",
		&s.FixedTimeStep, &s.MaxTimeStep, &s.MaxSubSteps, &gx, &gy, &gz,
		&s.DefaultRestitution, &s.DefaultFriction)
	if err != nil || n != 8 {
		return fmt.Errorf("%w: malformed settings line", ErrSceneParse)
	}
	s.Gravity = mgl32.Vec3{gx, gy, gz}
	s.CellSize = e.settings.CellSize
	e.settings = s
	e.initialize()

	if !scanner.Scan() || scanner.Text() != "bodies" {
		return fmt.Errorf("%w: expected \"bodies\" header", ErrSceneParse)
	}
	if !scanner.Scan() {
		return fmt.Errorf("%w: missing body count", ErrSceneParse)
	}
	var count int
	if _, err := fmt.Sscanf(scanner.Text(), "%d", &count); err != nil {
		return fmt.Errorf("%w: malformed body count", ErrSceneParse)
	}

	// Bodies are only added once the whole list has parsed, so an error
	// part-way through leaves the world empty.
	var loaded []*body.Body
	for i := 0; i < count; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("%w: truncated body list", ErrSceneParse)
		}
		var tag int
		var x, y, z, hx, hy, hz, mass float32
		n, err := fmt.Sscanf(scanner.Text(), "%d %g %g %g %g %g %g %g",
			&tag, &x, &y, &z, &hx, &hy, &hz, &mass)
		if err != nil || n != 8 {
			return fmt.Errorf("%w: malformed body line", ErrSceneParse)
		}

		transform := body.Transform{Position: mgl32.Vec3{x, y, z}, Orientation: mgl32.QuatIdent()}
		var shape body.Shape
		switch sceneShapeTag(tag) {
		case sceneShapeSphere:
			shape = body.Sphere{Radius: hx}
		case sceneShapeBox:
			shape = body.Box{HalfExtents: mgl32.Vec3{hx, hy, hz}}
		case sceneShapeOrientedBox:
			shape = body.OrientedBox{HalfExtents: mgl32.Vec3{hx, hy, hz}}
		default:
			// Unknown shape integers are discarded, not an error.
			continue
		}

		b := body.New(transform, shape, mass)
		b.Material = body.Material{Restitution: e.settings.DefaultRestitution, Friction: e.settings.DefaultFriction}
		loaded = append(loaded, b)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSceneParse, err)
	}
	for _, b := range loaded {
		e.world.AddBody(b)
	}
	return nil
}
