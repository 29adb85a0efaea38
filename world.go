package gale

import (
	"sort"

	"github.com/galeengine/gale/body"
	"github.com/galeengine/gale/constraint"
	"github.com/go-gl/mathgl/mgl32"
)

// World owns every body, constraint, and driver in a simulation and
// advances them through a single fixed substep. It is the layer Engine
// schedules; a World can equally be driven directly by a host that
// wants its own timestep accumulator.
type World struct {
	Gravity mgl32.Vec3

	// DefaultRestitution and DefaultFriction are the coefficients Step
	// passes to the contact resolver for every colliding pair.
	// These default to 0.5 and 0.4; Engine.initialize overrides them from
	// Settings (0.5/0.3) — the two layers are intentionally independent.
	DefaultRestitution float32
	DefaultFriction    float32

	bodies          map[BodyHandle]*body.Body
	bodyOrder       []BodyHandle
	constraints     map[ConstraintHandle]constraint.Constraint
	constraintOrder []ConstraintHandle
	drivers         map[ConstraintHandle]*constraint.Driver
	driverOrder     []ConstraintHandle

	grid    *UniformGrid
	tracker *eventTracker

	pendingEvents []Event
}

// NewWorld creates an empty world with a broad-phase grid sized to
// cellSize and the default gravity and materials.
func NewWorld(cellSize float32) *World {
	return &World{
		Gravity:            mgl32.Vec3{0, -9.81, 0},
		DefaultRestitution: 0.5,
		DefaultFriction:    0.4,
		bodies:             make(map[BodyHandle]*body.Body),
		constraints:        make(map[ConstraintHandle]constraint.Constraint),
		drivers:            make(map[ConstraintHandle]*constraint.Driver),
		grid:               NewUniformGrid(cellSize),
		tracker:            newEventTracker(),
	}
}

// AddBody registers a body and returns its handle.
func (w *World) AddBody(b *body.Body) BodyHandle {
	h := newBodyHandle()
	w.bodies[h] = b
	w.bodyOrder = append(w.bodyOrder, h)
	return h
}

// RemoveBody unregisters a body. Constraints still referencing it are
// left as-is; the caller is responsible for removing them first.
func (w *World) RemoveBody(h BodyHandle) {
	delete(w.bodies, h)
	w.bodyOrder = removeHandle(w.bodyOrder, h)
}

// Body resolves a handle to its body, or nil if unknown.
func (w *World) Body(h BodyHandle) *body.Body { return w.bodies[h] }

// AddConstraint registers a two-body constraint and returns its handle.
func (w *World) AddConstraint(c constraint.Constraint) ConstraintHandle {
	h := newConstraintHandle()
	w.constraints[h] = c
	w.constraintOrder = append(w.constraintOrder, h)
	return h
}

// RemoveConstraint unregisters a constraint.
func (w *World) RemoveConstraint(h ConstraintHandle) {
	delete(w.constraints, h)
	w.constraintOrder = removeConstraintHandle(w.constraintOrder, h)
}

// AddDriver registers a single-body kinematic hinge driver.
func (w *World) AddDriver(d *constraint.Driver) ConstraintHandle {
	h := newConstraintHandle()
	w.drivers[h] = d
	w.driverOrder = append(w.driverOrder, h)
	return h
}

// RemoveDriver unregisters a driver.
func (w *World) RemoveDriver(h ConstraintHandle) {
	delete(w.drivers, h)
	w.driverOrder = removeConstraintHandle(w.driverOrder, h)
}

// Driver resolves a driver handle, or nil if unknown.
func (w *World) Driver(h ConstraintHandle) *constraint.Driver { return w.drivers[h] }

func removeHandle(s []BodyHandle, h BodyHandle) []BodyHandle {
	for i, v := range s {
		if v == h {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func removeConstraintHandle(s []ConstraintHandle, h ConstraintHandle) []ConstraintHandle {
	for i, v := range s {
		if v == h {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// Step advances the simulation by exactly dt, in a fixed five-phase
// order: apply gravity, integrate, broad phase, narrow phase plus
// contact resolution, then constraint pre-solve/solve/post-solve.
// Drivers are advanced alongside the constraint phase. Bodies and
// constraints are visited in insertion order throughout, so two worlds
// built identically step identically.
func (w *World) Step(dt float32) {
	w.pendingEvents = nil

	for _, h := range w.bodyOrder {
		b := w.bodies[h]
		if b.IsStatic() {
			continue
		}
		b.ApplyForce(w.Gravity.Mul(b.Mass()))
	}

	for _, h := range w.bodyOrder {
		w.bodies[h].Integrate(dt)
	}

	w.grid.Clear()
	for _, h := range w.bodyOrder {
		w.grid.Insert(h, w.bodies[h].Transform.Position)
	}

	var touching []touchingPair
	for _, pair := range w.grid.Pairs() {
		a, b := w.bodies[pair.A], w.bodies[pair.B]
		if a.IsStatic() && b.IsStatic() {
			continue
		}

		contact, ok := narrowPhase(a, b)
		if !ok {
			continue
		}

		touching = append(touching, touchingPair{
			key:       newPairKey(pair.A, pair.B),
			isTrigger: a.IsTrigger || b.IsTrigger,
		})

		if a.IsTrigger || b.IsTrigger {
			continue
		}

		resolveContact(a, b, contact.Normal, contact.Penetration, w.DefaultRestitution, w.DefaultFriction)
	}
	w.pendingEvents = w.tracker.update(touching)

	for _, h := range w.constraintOrder {
		w.constraints[h].PreSolve(dt)
	}
	for _, h := range w.constraintOrder {
		w.constraints[h].Solve(dt)
	}
	for _, h := range w.constraintOrder {
		w.constraints[h].PostSolve()
	}

	for _, h := range w.driverOrder {
		w.drivers[h].Drive(dt)
	}
}

// DrainEvents returns the collision/trigger events produced by the most
// recent Step and clears the pending list.
func (w *World) DrainEvents() []Event {
	events := w.pendingEvents
	w.pendingEvents = nil
	return events
}

// Bodies returns body handles in insertion order.
func (w *World) Bodies() []BodyHandle {
	out := make([]BodyHandle, len(w.bodyOrder))
	copy(out, w.bodyOrder)
	return out
}

// Constraints returns constraint handles in insertion order.
func (w *World) Constraints() []ConstraintHandle {
	out := make([]ConstraintHandle, len(w.constraintOrder))
	copy(out, w.constraintOrder)
	return out
}

// sortedBodyHandles returns body handles sorted by their UUID string. It
// is used by debug-draw and BodyAt. Handles are random UUIDs, so the
// order does not follow insertion order and differs between runs.
func (w *World) sortedBodyHandles() []BodyHandle {
	out := w.Bodies()
	sort.Slice(out, func(i, j int) bool { return out[i].id.String() < out[j].id.String() })
	return out
}

// BodySnapshot is a read-only view of a body's pose and shape, returned
// by index from BodyAt for hosts that want to render the world without
// holding onto *body.Body directly.
type BodySnapshot struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	ShapeTag    sceneShapeTag
	HalfExtents mgl32.Vec3 // zero for Sphere; see Radius
	Radius      float32    // zero for Box/OrientedBox
}

// BodyCount returns the number of bodies in the world.
func (w *World) BodyCount() int { return len(w.bodyOrder) }

// BodyAt returns a snapshot of the i'th body in sorted handle order
// (fixed while the body set is unchanged, but not insertion order and
// not the same between runs), or false if i is out of range.
func (w *World) BodyAt(i int) (BodySnapshot, bool) {
	handles := w.sortedBodyHandles()
	if i < 0 || i >= len(handles) {
		return BodySnapshot{}, false
	}
	b := w.bodies[handles[i]]
	snap := BodySnapshot{Position: b.Transform.Position, Orientation: b.Transform.Orientation}
	tag, hx, hy, hz := sceneShapeOf(b.Shape)
	snap.ShapeTag = tag
	if tag == sceneShapeSphere {
		snap.Radius = hx
	} else {
		snap.HalfExtents = mgl32.Vec3{hx, hy, hz}
	}
	return snap, true
}
