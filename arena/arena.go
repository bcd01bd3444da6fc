// Package arena wires the combat core to the physics backend: it builds the
// space, the player vehicle, the target field, and the collision trigger
// routing, and steps everything once per frame.
package arena

import (
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kvesten/tankrange/combat"
	"github.com/kvesten/tankrange/physics"
)

// Config describes an arena to build.
type Config struct {
	Vehicle      combat.VehicleTuning
	Projectile   combat.ProjectileTuning
	VehicleMass  float32
	VehicleSize  float32
	VehicleStart mgl32.Vec3

	TargetRows    int
	TargetCols    int
	TargetSpacing float32
	TargetRadius  float32
	TargetZ       float32 // distance from origin to the first target row

	GoalZ float32 // vehicle z past which the run is won

	// Scheduler defaults to the wall-clock scheduler when nil.
	Scheduler combat.Scheduler

	// OnGoal fires once when the vehicle first crosses GoalZ.
	OnGoal func()
}

// DefaultConfig returns a playable arena layout.
func DefaultConfig() Config {
	return Config{
		Vehicle:       combat.DefaultVehicleTuning(),
		Projectile:    combat.DefaultProjectileTuning(),
		VehicleMass:   5,
		VehicleSize:   1,
		VehicleStart:  mgl32.Vec3{0, 1, 0},
		TargetRows:    2,
		TargetCols:    5,
		TargetSpacing: 6,
		TargetRadius:  1,
		TargetZ:       30,
		GoalZ:         60,
	}
}

// Arena owns the space and the combat components for one run.
type Arena struct {
	space    *physics.Space
	vehicle  *combat.VehicleController
	gate     *combat.CooldownGate
	spawner  *combat.ProjectileSpawner
	resolver *combat.CollisionResolver
	roster   *combat.Roster
	markers  *markerSet

	mu     sync.Mutex
	won    bool
	onGoal func()
}

// New builds an arena from the config.
func New(cfg Config) *Arena {
	space := physics.NewSpace()
	sched := cfg.Scheduler
	if sched == nil {
		sched = combat.NewScheduler()
	}

	roster := combat.NewRoster()
	resolver := combat.NewCollisionResolver(roster)
	gate := combat.NewCooldownGate(sched, cfg.Vehicle.FireCooldown)
	spawner := combat.NewProjectileSpawner(space, sched, resolver, cfg.Projectile)

	a := &Arena{
		space:    space,
		gate:     gate,
		spawner:  spawner,
		resolver: resolver,
		roster:   roster,
		markers:  newMarkerSet(),
		onGoal:   cfg.OnGoal,
	}
	spawner.NewVisual = func(id int) combat.Visual {
		return a.markers.add(markerProjectile, id)
	}

	body := space.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyVehicle,
		Position: cfg.VehicleStart,
		Mass:     cfg.VehicleMass,
		Radius:   cfg.VehicleSize,
	})
	a.vehicle = combat.NewVehicleController(body, gate, spawner, cfg.Vehicle)
	a.vehicle.OnPositionUpdate(func(pos mgl32.Vec3) {
		if pos.Z() < cfg.GoalZ {
			return
		}
		a.mu.Lock()
		first := !a.won
		a.won = true
		onGoal := a.onGoal
		a.mu.Unlock()
		if first {
			log.Printf("Arena: vehicle reached goal zone at z=%.1f", pos.Z())
			if onGoal != nil {
				onGoal()
			}
		}
	})

	a.buildTargetField(cfg)

	// One shared trigger for every projectile-target pair; the resolver
	// dispatches by identity.
	space.OnBeginContact(combat.BodyProjectile, combat.BodyTarget, func(pb, tb *physics.Body) {
		projID, ok := pb.UserData().(int)
		if !ok {
			return
		}
		targetID, ok := tb.UserData().(int)
		if !ok {
			return
		}
		resolver.HandleHit(projID, targetID)
	})

	return a
}

func (a *Arena) buildTargetField(cfg Config) {
	rows := cfg.TargetRows
	cols := cfg.TargetCols
	if rows <= 0 || cols <= 0 {
		return
	}
	id := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			id++
			x := (float32(col) - float32(cols-1)/2) * cfg.TargetSpacing
			z := cfg.TargetZ + float32(row)*cfg.TargetSpacing
			body := a.space.CreateBody(combat.BodyConfig{
				Kind:     combat.BodyTarget,
				Position: mgl32.Vec3{x, cfg.TargetRadius, z},
				Radius:   cfg.TargetRadius,
				Static:   true,
				UserData: id,
			})
			visual := a.markers.add(markerTarget, id)
			a.roster.Add(combat.NewTarget(id, a.space, body, visual))
		}
	}
}

// Step runs one frame: the vehicle tick, then the physics step. Scheduler
// callbacks interleave on their own goroutines against mutex-guarded state.
func (a *Arena) Step(intent combat.Intent, dt float32) {
	if a == nil {
		return
	}
	a.vehicle.Tick(intent)
	a.space.Step(dt)
}

// Vehicle returns the player vehicle controller.
func (a *Arena) Vehicle() *combat.VehicleController {
	return a.vehicle
}

// Roster returns the shared target roster.
func (a *Arena) Roster() *combat.Roster {
	return a.roster
}

// Projectiles returns the live projectiles.
func (a *Arena) Projectiles() []*combat.Projectile {
	return a.spawner.Live()
}

// CooldownReady reports whether the fire action would be accepted.
func (a *Arena) CooldownReady() bool {
	return a.gate.Ready()
}

// Won reports whether the vehicle has crossed the goal zone.
func (a *Arena) Won() bool {
	if a == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.won
}

// ApplyVehicleTuning swaps the vehicle constants, e.g. after a spec reload.
func (a *Arena) ApplyVehicleTuning(t combat.VehicleTuning) {
	a.vehicle.SetTuning(t)
}

// ApplyProjectileTuning swaps the projectile constants for future spawns.
func (a *Arena) ApplyProjectileTuning(t combat.ProjectileTuning) {
	a.spawner.SetTuning(t)
}

// Dispose tears the arena down: pending timers are cancelled and every
// remaining projectile and target is released.
func (a *Arena) Dispose() {
	if a == nil {
		return
	}
	a.vehicle.Dispose()
	a.spawner.DisposeAll()
	for _, t := range a.roster.Snapshot() {
		a.roster.Remove(t)
		t.Release()
	}
}
