package prefab

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kvesten/tankrange/combat"
)

// VehicleSpec tunes the vehicle controller.
type VehicleSpec struct {
	Name           string  `yaml:"name"`
	MoveForce      float32 `yaml:"move_force"`
	TurnSpeed      float32 `yaml:"turn_speed"`
	JumpImpulse    float32 `yaml:"jump_impulse"`
	FireCooldownMS int     `yaml:"fire_cooldown_ms"`
	Mass           float32 `yaml:"mass"`
	Radius         float32 `yaml:"radius"`
}

// ProjectileSpec tunes projectile spawning and lifetime.
type ProjectileSpec struct {
	Name           string  `yaml:"name"`
	Power          float32 `yaml:"power"`
	ElevationBias  float32 `yaml:"elevation_bias"`
	ForwardOffset  float32 `yaml:"forward_offset"`
	VerticalOffset float32 `yaml:"vertical_offset"`
	Mass           float32 `yaml:"mass"`
	Radius         float32 `yaml:"radius"`
	TTLMS          int     `yaml:"ttl_ms"`
}

// LoadSpec reads and unmarshals a named yaml spec, preferring a disk copy
// over the embedded default.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefab: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefab: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadVehicleSpec loads vehicle.yaml.
func LoadVehicleSpec() (*VehicleSpec, error) {
	spec, err := LoadSpec[VehicleSpec]("vehicle.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadProjectileSpec loads projectile.yaml.
func LoadProjectileSpec() (*ProjectileSpec, error) {
	spec, err := LoadSpec[ProjectileSpec]("projectile.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tuning converts the spec into controller constants, falling back to the
// stock defaults for zero-valued fields.
func (s *VehicleSpec) Tuning() combat.VehicleTuning {
	t := combat.DefaultVehicleTuning()
	if s == nil {
		return t
	}
	if s.MoveForce > 0 {
		t.MoveForce = s.MoveForce
	}
	if s.TurnSpeed > 0 {
		t.TurnSpeed = s.TurnSpeed
	}
	if s.JumpImpulse > 0 {
		t.JumpImpulse = s.JumpImpulse
	}
	if s.FireCooldownMS > 0 {
		t.FireCooldown = time.Duration(s.FireCooldownMS) * time.Millisecond
	}
	return t
}

// Tuning converts the spec into spawn constants, falling back to the stock
// defaults for zero-valued fields.
func (s *ProjectileSpec) Tuning() combat.ProjectileTuning {
	t := combat.DefaultProjectileTuning()
	if s == nil {
		return t
	}
	if s.Power > 0 {
		t.Power = s.Power
	}
	if s.ElevationBias > 0 {
		t.ElevationBias = s.ElevationBias
	}
	if s.ForwardOffset > 0 {
		t.ForwardOffset = s.ForwardOffset
	}
	if s.VerticalOffset > 0 {
		t.VerticalOffset = s.VerticalOffset
	}
	if s.Mass > 0 {
		t.Mass = s.Mass
	}
	if s.Radius > 0 {
		t.Radius = s.Radius
	}
	if s.TTLMS > 0 {
		t.TTL = time.Duration(s.TTLMS) * time.Millisecond
	}
	return t
}
