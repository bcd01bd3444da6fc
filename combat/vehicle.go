package combat

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var localForward = mgl32.Vec3{0, 0, 1}

// PositionHandler observes the vehicle's position after each tick. The
// end-condition system subscribes here instead of polling a raw field.
type PositionHandler func(pos mgl32.Vec3)

// VehicleController owns one physics-backed vehicle for its lifetime and
// converts per-tick intents into forces, angular velocity, and impulses.
type VehicleController struct {
	body    Body
	gate    *CooldownGate
	spawner *ProjectileSpawner

	mu       sync.Mutex
	tuning   VehicleTuning
	forward  mgl32.Vec3
	handlers []PositionHandler
}

// NewVehicleController wraps a vehicle body. The controller is the body's
// exclusive owner until Dispose.
func NewVehicleController(body Body, gate *CooldownGate, spawner *ProjectileSpawner, tuning VehicleTuning) *VehicleController {
	v := &VehicleController{
		body:    body,
		gate:    gate,
		spawner: spawner,
		tuning:  tuning,
		forward: localForward,
	}
	if body != nil {
		v.forward = forwardFrom(body.WorldTransform())
	}
	return v
}

// Tick converts one intent snapshot into motion. Movement, rotation, and
// jump apply independently; several can apply in the same tick. After the
// forces are in, the forward vector is recomputed from the body's world
// transform so a fire on this tick launches along the post-motion heading.
func (v *VehicleController) Tick(intent Intent) {
	if v == nil || v.body == nil {
		return
	}
	v.mu.Lock()
	tuning := v.tuning
	forward := v.forward
	v.mu.Unlock()

	origin := mgl32.Vec3{}
	if intent.MoveForward {
		v.body.ApplyForce(forward.Mul(tuning.MoveForce), origin)
	}
	if intent.MoveBackward {
		// Negated forward vector, same magnitude as forward drive.
		v.body.ApplyForce(forward.Mul(-tuning.MoveForce), origin)
	}
	if intent.RotateLeft {
		v.body.SetAngularVelocity(mgl32.Vec3{0, tuning.TurnSpeed, 0})
	}
	if intent.RotateRight {
		v.body.SetAngularVelocity(mgl32.Vec3{0, -tuning.TurnSpeed, 0})
	}
	if intent.Jump {
		// No ground check: a mid-air jump applies the same impulse.
		v.body.ApplyImpulse(mgl32.Vec3{0, tuning.JumpImpulse, 0}, origin)
	}

	forward = forwardFrom(v.body.WorldTransform())
	v.mu.Lock()
	v.forward = forward
	handlers := v.handlers
	v.mu.Unlock()

	if intent.Fire && v.gate.TryFire() {
		v.spawner.Spawn(v)
	}

	pos := v.body.Position()
	for _, h := range handlers {
		h(pos)
	}
}

// Forward returns the vehicle's forward direction as of the last tick.
func (v *VehicleController) Forward() mgl32.Vec3 {
	if v == nil {
		return localForward
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.forward
}

// Position returns the vehicle's current world position.
func (v *VehicleController) Position() mgl32.Vec3 {
	if v == nil || v.body == nil {
		return mgl32.Vec3{}
	}
	return v.body.Position()
}

// OnPositionUpdate subscribes a handler to post-tick position events.
func (v *VehicleController) OnPositionUpdate(h PositionHandler) {
	if v == nil || h == nil {
		return
	}
	v.mu.Lock()
	v.handlers = append(v.handlers, h)
	v.mu.Unlock()
}

// SetTuning swaps the motion constants for subsequent ticks.
func (v *VehicleController) SetTuning(t VehicleTuning) {
	if v == nil {
		return
	}
	v.mu.Lock()
	v.tuning = t
	v.mu.Unlock()
}

// Dispose cancels the pending cooldown timer. The body itself is owned by
// the arena teardown, which destroys it after the controller is disposed.
func (v *VehicleController) Dispose() {
	if v == nil {
		return
	}
	v.gate.Cancel()
}

// forwardFrom transforms the local forward axis by a world transform,
// dropping translation.
func forwardFrom(m mgl32.Mat4) mgl32.Vec3 {
	dir := m.Mul4x1(mgl32.Vec4{localForward.X(), localForward.Y(), localForward.Z(), 0}).Vec3()
	if dir.Len() == 0 {
		return localForward
	}
	return dir.Normalize()
}
