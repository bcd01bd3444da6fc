package combat

import "time"

// VehicleTuning holds the fixed magnitudes the controller applies per tick.
type VehicleTuning struct {
	MoveForce    float32
	TurnSpeed    float32 // rad/s, applied as angular velocity, not torque
	JumpImpulse  float32
	FireCooldown time.Duration
}

// ProjectileTuning holds spawn offsets, launch power and lifetime.
type ProjectileTuning struct {
	Power          float32
	ElevationBias  float32 // fraction of Power added to the vertical component
	ForwardOffset  float32
	VerticalOffset float32
	Mass           float32
	Radius         float32
	TTL            time.Duration
}

// DefaultVehicleTuning returns the stock vehicle constants.
func DefaultVehicleTuning() VehicleTuning {
	return VehicleTuning{
		MoveForce:    60,
		TurnSpeed:    1.5,
		JumpImpulse:  6,
		FireCooldown: 300 * time.Millisecond,
	}
}

// DefaultProjectileTuning returns the stock projectile constants.
func DefaultProjectileTuning() ProjectileTuning {
	return ProjectileTuning{
		Power:          100,
		ElevationBias:  0.1,
		ForwardOffset:  5,
		VerticalOffset: 1,
		Mass:           2,
		Radius:         0.5,
		TTL:            3000 * time.Millisecond,
	}
}
