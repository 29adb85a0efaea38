package body

import "github.com/go-gl/mathgl/mgl32"

// Material holds a body's surface response coefficients.
type Material struct {
	Restitution float32 // [0,1], default 0.3
	Friction    float32 // [0,∞), Coulomb coefficient, default 0.5
}

// DefaultMaterial returns the default surface material.
func DefaultMaterial() Material {
	return Material{Restitution: 0.3, Friction: 0.5}
}

// Body is a single rigid body's kinematic state, mass properties, shape,
// and material. mass == 0 designates a static body: invMass and
// invInertiaTensor are then both zero, and Integrate is a no-op.
type Body struct {
	Transform       Transform
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3

	mass             float32
	invMass          float32
	invInertiaTensor mgl32.Mat3

	Shape    Shape
	Material Material

	// IsTrigger bodies participate in broad/narrow phase and emit
	// collision events but are skipped by the contact resolver.
	IsTrigger bool

	forceAccum  mgl32.Vec3
	torqueAccum mgl32.Vec3
}

// New creates a dynamic or static body (mass <= 0) with the given shape,
// transform and default material.
func New(transform Transform, shape Shape, mass float32) *Body {
	b := &Body{
		Transform: transform,
		Shape:     shape,
		Material:  DefaultMaterial(),
	}
	b.SetMass(mass)
	return b
}

// IsStatic reports whether the body has zero inverse mass.
func (b *Body) IsStatic() bool { return b.invMass == 0 }

// Mass returns the body's mass (0 for static bodies).
func (b *Body) Mass() float32 { return b.mass }

// InvMass returns the body's inverse mass (0 for static bodies).
func (b *Body) InvMass() float32 { return b.invMass }

// InvInertiaTensor returns the body's inverse inertia tensor. This
// always uses the identity tensor for dynamic bodies and the zero
// tensor for static bodies — inertia is not shape-derived.
func (b *Body) InvInertiaTensor() mgl32.Mat3 { return b.invInertiaTensor }

// SetMass sets the body's mass. m <= 0 makes the body static: invMass and
// invInertiaTensor become zero. Otherwise invMass = 1/m and
// invInertiaTensor becomes the identity matrix.
func (b *Body) SetMass(m float32) {
	if m <= 0 {
		b.mass = 0
		b.invMass = 0
		b.invInertiaTensor = mgl32.Mat3{}
		return
	}
	b.mass = m
	b.invMass = 1 / m
	b.invInertiaTensor = mgl32.Ident3()
}

// ApplyForce accumulates a force at the center of mass.
func (b *Body) ApplyForce(f mgl32.Vec3) {
	b.forceAccum = b.forceAccum.Add(f)
}

// ApplyForceAt accumulates a force applied at a world-space point, adding
// the resulting torque (worldPoint - position) x f.
func (b *Body) ApplyForceAt(f, worldPoint mgl32.Vec3) {
	b.forceAccum = b.forceAccum.Add(f)
	arm := worldPoint.Sub(b.Transform.Position)
	b.torqueAccum = b.torqueAccum.Add(arm.Cross(f))
}

// ApplyTorque accumulates a torque.
func (b *Body) ApplyTorque(t mgl32.Vec3) {
	b.torqueAccum = b.torqueAccum.Add(t)
}

// ClearForces zeroes the force and torque accumulators without stepping.
func (b *Body) ClearForces() {
	b.forceAccum = mgl32.Vec3{}
	b.torqueAccum = mgl32.Vec3{}
}

// Integrate advances linear and angular state by dt using semi-implicit
// Euler, then normalizes the orientation quaternion and zeroes the
// accumulators. Static bodies are untouched.
func (b *Body) Integrate(dt float32) {
	if b.IsStatic() {
		return
	}

	accel := b.forceAccum.Mul(b.invMass)
	b.Transform.Position = b.Transform.Position.
		Add(b.Velocity.Mul(dt)).
		Add(accel.Mul(0.5 * dt * dt))
	b.Velocity = b.Velocity.Add(accel.Mul(dt))

	angularAccel := b.invInertiaTensor.Mul3x1(b.torqueAccum)
	b.AngularVelocity = b.AngularVelocity.Add(angularAccel.Mul(dt))

	omega := mgl32.Quat{W: 0, V: b.AngularVelocity}
	spin := omega.Mul(b.Transform.Orientation).Scale(0.5 * dt)
	b.Transform.Orientation = b.Transform.Orientation.Add(spin).Normalize()

	b.ClearForces()
}
