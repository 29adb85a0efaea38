package gale

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/galeengine/gale/body"
	"github.com/galeengine/gale/constraint"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// Settings configures an Engine at construction time. It is built
// through functional options rather than exported as a struct literal
// API.
type Settings struct {
	FixedTimeStep float32
	MaxTimeStep   float32
	MaxSubSteps   int

	Gravity            mgl32.Vec3
	DefaultRestitution float32
	DefaultFriction    float32
	CellSize           float32

	ShowDebugDraw bool
	ShowColliders bool
	ShowContacts  bool
	ShowGrid      bool
}

// DefaultSettings returns the engine's default configuration.
func DefaultSettings() Settings {
	return Settings{
		FixedTimeStep:      1.0 / 60,
		MaxTimeStep:        0.25,
		MaxSubSteps:        4,
		Gravity:            mgl32.Vec3{0, -9.81, 0},
		DefaultRestitution: 0.5,
		DefaultFriction:    0.3,
		CellSize:           2.0,
	}
}

// Option mutates a Settings during Engine construction.
type Option func(*Settings)

func WithFixedTimeStep(dt float32) Option { return func(s *Settings) { s.FixedTimeStep = dt } }
func WithMaxTimeStep(dt float32) Option   { return func(s *Settings) { s.MaxTimeStep = dt } }
func WithMaxSubSteps(n int) Option        { return func(s *Settings) { s.MaxSubSteps = n } }
func WithGravity(g mgl32.Vec3) Option     { return func(s *Settings) { s.Gravity = g } }

func WithDefaultRestitution(r float32) Option {
	return func(s *Settings) { s.DefaultRestitution = r }
}

func WithDefaultFriction(f float32) Option { return func(s *Settings) { s.DefaultFriction = f } }
func WithCellSize(c float32) Option        { return func(s *Settings) { s.CellSize = c } }

// DebugLine is one polyline segment: a start point, an end point, and
// a color.
type DebugLine struct {
	Start, End mgl32.Vec3
	Color      color.Color
}

// DebugPoint is one point marker: a position, a color, and a size.
type DebugPoint struct {
	Position mgl32.Vec3
	Color    color.Color
	Size     float32
}

// DebugText is one label: text, position, and color — used for the
// per-frame stats line.
type DebugText struct {
	Text     string
	Position mgl32.Vec3
	Color    color.Color
}

// DebugDrawData is the snapshot produced after each Update when debug
// drawing is enabled: one polyline per collider (box edges; sphere as
// three great circles), optional wireframes of the occupied broad-phase
// grid cells, and a stats text line. No floor grid is drawn, and Points
// is never filled.
type DebugDrawData struct {
	Lines []DebugLine
	Points []DebugPoint
	Texts []DebugText
}

// Engine is the fixed-timestep scheduler around a World: it clamps
// wall-clock frame time to MaxTimeStep, runs up to MaxSubSteps substeps
// of World.Step, exposes factory methods for bodies and constraints
// behind opaque handles, and reports debug-draw geometry and a rolling
// average FPS.
type Engine struct {
	settings    Settings
	world       *World
	accumulator float32

	drivers map[ConstraintHandle]*constraint.Driver

	debugDrawData DebugDrawData

	frameDurations []float32
	log            *slog.Logger
}

// NewEngine builds an Engine from the given options over DefaultSettings.
func NewEngine(opts ...Option) *Engine {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	e := &Engine{
		settings: settings,
		log:      slog.Default().With("component", "engine"),
	}
	e.initialize()
	return e
}

// initialize (re)builds the World from the engine's current settings.
// Engine's Settings defaults override World's own bare literal defaults
// once an Engine is in the picture.
func (e *Engine) initialize() {
	w := NewWorld(e.settings.CellSize)
	w.Gravity = e.settings.Gravity
	w.DefaultRestitution = e.settings.DefaultRestitution
	w.DefaultFriction = e.settings.DefaultFriction
	e.world = w
	e.accumulator = 0
	e.frameDurations = nil
	e.debugDrawData = DebugDrawData{}
}

// SetFixedTimeStep updates the substep duration used by Update. A
// non-positive dt is rejected with ErrInvalidParameter rather than
// silently clamped.
func (e *Engine) SetFixedTimeStep(dt float32) error {
	if dt <= 0 {
		return ErrInvalidParameter
	}
	e.settings.FixedTimeStep = dt
	return nil
}

// GetSettings returns the engine's current settings.
func (e *Engine) GetSettings() Settings { return e.settings }

// GetWorld returns the underlying World for direct inspection.
func (e *Engine) GetWorld() *World { return e.world }

// Update advances the simulation by wallDt of wall-clock time: wallDt
// is clamped to MaxTimeStep, then World.Step runs at the fixed timestep
// until the accumulator drains or MaxSubSteps is reached. Negative
// wallDt clamps to zero rather than running backwards.
func (e *Engine) Update(wallDt float32) {
	if wallDt < 0 {
		wallDt = 0
	}
	if wallDt > e.settings.MaxTimeStep {
		wallDt = e.settings.MaxTimeStep
	}
	e.accumulator += wallDt

	steps := 0
	for steps < e.settings.MaxSubSteps && e.accumulator >= e.settings.FixedTimeStep {
		e.world.Step(e.settings.FixedTimeStep)
		e.accumulator -= e.settings.FixedTimeStep
		steps++
		e.frameDurations = append(e.frameDurations, e.settings.FixedTimeStep)
	}

	const fpsWindow = 120
	if len(e.frameDurations) > fpsWindow {
		e.frameDurations = e.frameDurations[len(e.frameDurations)-fpsWindow:]
	}

	if e.settings.ShowDebugDraw {
		e.rebuildDebugDrawData()
	} else {
		e.debugDrawData = DebugDrawData{}
	}
}

// GetAverageFPS returns the reciprocal of the mean substep duration over
// a rolling window of the last 120 substeps, or 0 if none have run yet.
func (e *Engine) GetAverageFPS() float32 {
	if len(e.frameDurations) == 0 {
		return 0
	}
	var sum float32
	for _, d := range e.frameDurations {
		sum += d
	}
	mean := sum / float32(len(e.frameDurations))
	if mean <= 0 {
		return 0
	}
	return 1 / mean
}

func (e *Engine) ToggleDebugDraw() { e.settings.ShowDebugDraw = !e.settings.ShowDebugDraw }
func (e *Engine) ToggleColliders() { e.settings.ShowColliders = !e.settings.ShowColliders }
func (e *Engine) ToggleContacts()  { e.settings.ShowContacts = !e.settings.ShowContacts }
func (e *Engine) ToggleGrid()      { e.settings.ShowGrid = !e.settings.ShowGrid }

// ResetScene discards all bodies, constraints, and drivers and rebuilds
// an empty World from the engine's current settings.
func (e *Engine) ResetScene() { e.initialize() }

// CreateSphere adds a sphere body and returns its handle.
func (e *Engine) CreateSphere(position mgl32.Vec3, radius, mass float32) BodyHandle {
	b := body.New(body.Transform{Position: position, Orientation: mgl32.QuatIdent()}, body.Sphere{Radius: radius}, mass)
	b.Material = body.Material{Restitution: e.settings.DefaultRestitution, Friction: e.settings.DefaultFriction}
	return e.world.AddBody(b)
}

// CreateBox adds an axis-aligned box body. size is full extents;
// halfExtents = size/2.
func (e *Engine) CreateBox(position, size mgl32.Vec3, mass float32) BodyHandle {
	b := body.New(body.Transform{Position: position, Orientation: mgl32.QuatIdent()}, body.Box{HalfExtents: size.Mul(0.5)}, mass)
	b.Material = body.Material{Restitution: e.settings.DefaultRestitution, Friction: e.settings.DefaultFriction}
	return e.world.AddBody(b)
}

// CreateOrientedBox adds an oriented box body. OrientedBox would
// otherwise be unreachable from the public Engine API.
func (e *Engine) CreateOrientedBox(position mgl32.Vec3, orientation mgl32.Quat, size mgl32.Vec3, mass float32) BodyHandle {
	b := body.New(body.Transform{Position: position, Orientation: orientation}, body.OrientedBox{HalfExtents: size.Mul(0.5)}, mass)
	b.Material = body.Material{Restitution: e.settings.DefaultRestitution, Friction: e.settings.DefaultFriction}
	return e.world.AddBody(b)
}

// CreatePlane adds a static, very large thin AABB centered at
// normal*distance, standing in for an infinite ground/wall plane. Box
// ignores orientation, so the thin axis is chosen as whichever world
// axis normal is most aligned with, rather than rotating the box to
// match an arbitrary normal.
func (e *Engine) CreatePlane(normal mgl32.Vec3, distance, mass float32) BodyHandle {
	const large = 1000.0
	const thin = 0.1
	half := mgl32.Vec3{large, large, large}

	switch dominantAxis(normal) {
	case 0:
		half = mgl32.Vec3{thin, large, large}
	case 1:
		half = mgl32.Vec3{large, thin, large}
	default:
		half = mgl32.Vec3{large, large, thin}
	}

	b := body.New(body.Transform{Position: normal.Mul(distance), Orientation: mgl32.QuatIdent()}, body.Box{HalfExtents: half}, mass)
	b.Material = body.Material{Restitution: e.settings.DefaultRestitution, Friction: e.settings.DefaultFriction}
	return e.world.AddBody(b)
}

func dominantAxis(v mgl32.Vec3) int {
	ax, ay, az := absF(v.X()), absF(v.Y()), absF(v.Z())
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

// CreateHingeConstraint registers a single-body kinematic hinge driver
// rotating body about pivot/axis. The two-body articulated Hinge joint
// is created through CreateHingeJoint.
func (e *Engine) CreateHingeConstraint(b BodyHandle, pivot, axis mgl32.Vec3, angularVelocity float32, isRotating bool) (ConstraintHandle, error) {
	bodyB := e.world.Body(b)
	if bodyB == nil {
		return ConstraintHandle{}, ErrInvalidParameter
	}
	d := constraint.NewDriver(bodyB, pivot, axis, angularVelocity, isRotating)
	return e.world.AddDriver(d), nil
}

// SetHingeConstraintRotation sets a driver's target angle. An
// out-of-range handle is a silent no-op.
func (e *Engine) SetHingeConstraintRotation(h ConstraintHandle, angle float32) {
	d := e.world.Driver(h)
	if d == nil {
		return
	}
	d.SetTargetAngle(angle)
}

// CreateHingeJoint links two bodies with an articulated Hinge and
// returns its handle, or ErrInvalidParameter if either handle is unknown.
func (e *Engine) CreateHingeJoint(a, b BodyHandle, anchorA, anchorB, axisA, axisB mgl32.Vec3) (ConstraintHandle, error) {
	bodyA, bodyB := e.world.Body(a), e.world.Body(b)
	if bodyA == nil || bodyB == nil {
		return ConstraintHandle{}, ErrInvalidParameter
	}
	c := constraint.NewHinge(bodyA, bodyB, anchorA, anchorB, axisA, axisB)
	return e.world.AddConstraint(c), nil
}

// GetDebugDrawData returns the debug geometry rebuilt by the most recent
// Update, or a zero-value DebugDrawData if ShowDebugDraw is off.
func (e *Engine) GetDebugDrawData() DebugDrawData { return e.debugDrawData }

func (e *Engine) rebuildDebugDrawData() {
	var data DebugDrawData

	if e.settings.ShowColliders {
		for _, h := range e.world.sortedBodyHandles() {
			b := e.world.Body(h)
			c := colornames.Lime
			if b.IsStatic() {
				c = colornames.Gray
			}
			if b.IsTrigger {
				c = colornames.Yellow
			}

			if sphere, ok := b.Shape.(body.Sphere); ok {
				data.Lines = append(data.Lines, sphereWireframe(b.Transform.Position, sphere.Radius, c)...)
			} else {
				data.Lines = append(data.Lines, aabbWireframe(b.Shape.ComputeAABB(b.Transform), c)...)
			}
		}
	}

	if e.settings.ShowGrid {
		data.Lines = append(data.Lines, gridWireframe(e.world.grid, colornames.Cyan)...)
	}

	data.Texts = append(data.Texts, DebugText{
		Text:  fmt.Sprintf("fps=%.1f bodies=%d constraints=%d", e.GetAverageFPS(), len(e.world.Bodies()), len(e.world.Constraints())),
		Color: colornames.White,
	})

	e.debugDrawData = data
}

func aabbWireframe(box body.AABB, c color.Color) []DebugLine {
	min, max := box.Min, box.Max
	corners := [8]mgl32.Vec3{
		{min.X(), min.Y(), min.Z()}, {max.X(), min.Y(), min.Z()},
		{max.X(), max.Y(), min.Z()}, {min.X(), max.Y(), min.Z()},
		{min.X(), min.Y(), max.Z()}, {max.X(), min.Y(), max.Z()},
		{max.X(), max.Y(), max.Z()}, {min.X(), max.Y(), max.Z()},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	lines := make([]DebugLine, 0, 12)
	for _, edge := range edges {
		lines = append(lines, DebugLine{Start: corners[edge[0]], End: corners[edge[1]], Color: c})
	}
	return lines
}

// sphereWireframe draws three great circles (XY, XZ, YZ planes) with 16
// segments each.
func sphereWireframe(center mgl32.Vec3, radius float32, c color.Color) []DebugLine {
	const segments = 16
	var lines []DebugLine

	planes := [3][2]mgl32.Vec3{
		{{1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {0, 0, 1}},
		{{0, 1, 0}, {0, 0, 1}},
	}

	for _, plane := range planes {
		u, v := plane[0], plane[1]
		prev := center.Add(u.Mul(radius))
		for i := 1; i <= segments; i++ {
			angle := 2 * math.Pi * float64(i) / segments
			point := center.
				Add(u.Mul(radius * float32(math.Cos(angle)))).
				Add(v.Mul(radius * float32(math.Sin(angle))))
			lines = append(lines, DebugLine{Start: prev, End: point, Color: c})
			prev = point
		}
	}
	return lines
}

func gridWireframe(g *UniformGrid, c color.Color) []DebugLine {
	size := g.CellSize()
	var lines []DebugLine
	for _, key := range g.occupiedCells() {
		min := mgl32.Vec3{float32(key.I) * size, float32(key.J) * size, float32(key.K) * size}
		max := min.Add(mgl32.Vec3{size, size, size})
		lines = append(lines, aabbWireframe(body.AABB{Min: min, Max: max}, c)...)
	}
	return lines
}
