package gale

import (
	"github.com/galeengine/gale/body"
	"github.com/go-gl/mathgl/mgl32"
)

// resolveContact applies Baumgarte-style positional correction (the
// 50/50 split form), a separating-velocity test, a sequential normal
// impulse, and clamped-tangent Coulomb friction. It operates purely on
// center-of-mass velocities — no contact-point torque is applied here;
// rotational response is the constraint solver's job.
func resolveContact(a, b *body.Body, normal mgl32.Vec3, penetration, restitution, friction float32) {
	invMassSum := a.InvMass() + b.InvMass()
	if invMassSum == 0 {
		return
	}

	// 1. Positional correction.
	correction := (penetration / invMassSum) * 0.5
	a.Transform.Position = a.Transform.Position.Sub(normal.Mul(correction * a.InvMass()))
	b.Transform.Position = b.Transform.Position.Add(normal.Mul(correction * b.InvMass()))

	// 2. Separation test.
	rv := b.Velocity.Sub(a.Velocity)
	vn := rv.Dot(normal)
	if vn > 0 {
		return
	}

	// 3. Normal impulse.
	j := -(1 + restitution) * vn / invMassSum
	a.Velocity = a.Velocity.Sub(normal.Mul(j * a.InvMass()))
	b.Velocity = b.Velocity.Add(normal.Mul(j * b.InvMass()))

	// 4. Coulomb friction (clamped tangent).
	rv = b.Velocity.Sub(a.Velocity)
	vn = rv.Dot(normal)
	tangentVel := rv.Sub(normal.Mul(vn))
	tangentSpeed := tangentVel.Len()
	if tangentSpeed <= nearZero {
		return
	}

	tangent := tangentVel.Mul(1 / tangentSpeed)
	jt := -tangentSpeed / invMassSum
	maxFriction := friction * absF(j)
	if jt > maxFriction {
		jt = maxFriction
	} else if jt < -maxFriction {
		jt = -maxFriction
	}

	a.Velocity = a.Velocity.Sub(tangent.Mul(jt * a.InvMass()))
	b.Velocity = b.Velocity.Add(tangent.Mul(jt * b.InvMass()))
}
