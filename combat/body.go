package combat

import "github.com/go-gl/mathgl/mgl32"

// BodyKind tags a physics body with its combat role so the backend can route
// trigger callbacks by role pair instead of per-shape closures.
type BodyKind int

const (
	BodyVehicle BodyKind = iota + 1
	BodyProjectile
	BodyTarget
)

// Body is the capability surface the combat core needs from a rigid body.
// The simulation itself lives behind this interface; the core never touches
// engine internals.
type Body interface {
	// ApplyForce accumulates a continuous force for the next step.
	ApplyForce(force, at mgl32.Vec3)
	// ApplyImpulse changes the body's momentum instantaneously.
	ApplyImpulse(impulse, at mgl32.Vec3)
	// SetAngularVelocity overwrites the body's angular velocity.
	SetAngularVelocity(av mgl32.Vec3)
	// WorldTransform returns the body's current world transform.
	WorldTransform() mgl32.Mat4
	// Position returns the body's world position.
	Position() mgl32.Vec3
}

// BodyConfig describes a body to create in a Space.
type BodyConfig struct {
	Kind     BodyKind
	Position mgl32.Vec3
	Mass     float32
	Radius   float32
	Static   bool
	// UserData is attached to the body and round-tripped by the backend so
	// trigger handlers can recover the owning entity's id.
	UserData any
}

// Space creates and destroys bodies. A nil or uninitialized space is a fatal
// precondition at startup, never a per-tick error.
type Space interface {
	CreateBody(cfg BodyConfig) Body
	DestroyBody(b Body)
}

// Visual is a releasable render-side resource handle attached to a combat
// entity. Release must tolerate being called more than once.
type Visual interface {
	Release()
}
