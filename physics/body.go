package physics

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tbogdala/glider"

	"github.com/kvesten/tankrange/combat"
)

// Body is a rigid body in a Space. It implements the combat capability
// surface; the arena hands it out as a combat.Body and the combat core never
// sees this concrete type.
type Body struct {
	space *Space
	kind  combat.BodyKind

	mu       sync.Mutex
	pos      mgl32.Vec3
	vel      mgl32.Vec3
	orient   mgl32.Quat
	angVel   mgl32.Vec3
	force    mgl32.Vec3
	mass     float32
	invMass  float32
	radius   float32
	static   bool
	sphere   *glider.Sphere
	userData any
	dead     bool
}

// Kind returns the body's combat role.
func (b *Body) Kind() combat.BodyKind {
	return b.kind
}

// UserData returns the value attached at creation.
func (b *Body) UserData() any {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.userData
}

// ApplyForce accumulates a force for the next step. The application point is
// accepted for interface parity but torque from off-center forces is not
// modeled; rotation goes through SetAngularVelocity.
func (b *Body) ApplyForce(force, at mgl32.Vec3) {
	if b == nil {
		return
	}
	_ = at
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.static || b.dead {
		return
	}
	b.force = b.force.Add(force)
}

// ApplyImpulse changes the body's momentum immediately.
func (b *Body) ApplyImpulse(impulse, at mgl32.Vec3) {
	if b == nil {
		return
	}
	_ = at
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.static || b.dead {
		return
	}
	b.vel = b.vel.Add(impulse.Mul(b.invMass))
}

// SetAngularVelocity overwrites the body's angular velocity.
func (b *Body) SetAngularVelocity(av mgl32.Vec3) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.static || b.dead {
		return
	}
	b.angVel = av
}

// WorldTransform returns translation * rotation for the body.
func (b *Body) WorldTransform() mgl32.Mat4 {
	if b == nil {
		return mgl32.Ident4()
	}
	b.mu.Lock()
	pos := b.pos
	orient := b.orient
	b.mu.Unlock()
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(orient.Mat4())
}

// Position returns the body's world position.
func (b *Body) Position() mgl32.Vec3 {
	if b == nil {
		return mgl32.Vec3{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() mgl32.Vec3 {
	if b == nil {
		return mgl32.Vec3{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vel
}

// SetPosition teleports the body.
func (b *Body) SetPosition(pos mgl32.Vec3) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.pos = pos
	if b.sphere != nil {
		b.sphere.Center = pos
	}
	b.mu.Unlock()
}

// Radius returns the body's collider radius.
func (b *Body) Radius() float32 {
	return b.radius
}

// integrate advances the body by dt. Called by Space.Step.
func (b *Body) integrate(gravity mgl32.Vec3, damping, angularDamping, dt float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.static || b.dead {
		return
	}

	accel := gravity.Add(b.force.Mul(b.invMass))
	b.vel = b.vel.Add(accel.Mul(dt))
	b.vel = b.vel.Mul(1 - damping*dt)
	b.pos = b.pos.Add(b.vel.Mul(dt))
	b.force = mgl32.Vec3{}

	if speed := b.angVel.Len(); speed > 0 {
		delta := mgl32.QuatRotate(speed*dt, b.angVel.Mul(1/speed))
		b.orient = delta.Mul(b.orient).Normalize()
	}
	b.angVel = b.angVel.Mul(1 - angularDamping*dt)

	// Ground plane at y=0: bodies rest on it, they never sink through.
	if b.pos.Y() < b.radius {
		b.pos[1] = b.radius
		if b.vel.Y() < 0 {
			b.vel[1] = 0
		}
	}

	if b.sphere != nil {
		b.sphere.Center = b.pos
	}
}

func (b *Body) overlaps(other *Body) bool {
	if b == nil || other == nil || b.sphere == nil || other.sphere == nil {
		return false
	}
	return b.sphere.CollideVsSphere(other.sphere) == glider.Intersect
}
