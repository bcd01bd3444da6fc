package arena

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kvesten/tankrange/combat"
)

const stepDT = 1.0 / 60

// rangeConfig is a small arena with one target straight downrange and flat
// projectile ballistics so hits are deterministic.
func rangeConfig() Config {
	cfg := DefaultConfig()
	cfg.TargetRows = 1
	cfg.TargetCols = 1
	cfg.TargetZ = 10
	cfg.TargetRadius = 1
	cfg.GoalZ = 1000
	cfg.Projectile.ElevationBias = 0
	cfg.Projectile.VerticalOffset = 0
	cfg.Projectile.ForwardOffset = 2
	return cfg
}

func TestFireSpawnsOneProjectilePerCooldown(t *testing.T) {
	a := New(rangeConfig())
	defer a.Dispose()

	a.Step(combat.Intent{Fire: true}, stepDT)
	a.Step(combat.Intent{Fire: true}, stepDT)

	if got := len(a.Projectiles()); got != 1 {
		t.Fatalf("expected 1 projectile while the cooldown is locked, got %d", got)
	}
	if a.CooldownReady() {
		t.Fatalf("cooldown should be locked right after firing")
	}
	if !a.HasProjectileMarker(1) {
		t.Fatalf("projectile visual should be registered")
	}
}

func TestProjectileHitRemovesTargetAndPierces(t *testing.T) {
	a := New(rangeConfig())
	defer a.Dispose()

	if a.Roster().Len() != 1 {
		t.Fatalf("expected 1 target, got %d", a.Roster().Len())
	}

	a.Step(combat.Intent{Fire: true}, stepDT)
	for i := 0; i < 120 && a.Roster().Len() > 0; i++ {
		a.Step(combat.Intent{}, stepDT)
	}

	if a.Roster().Len() != 0 {
		t.Fatalf("projectile never destroyed the downrange target")
	}
	if a.HasTargetMarker(1) {
		t.Fatalf("destroyed target's visual should be released")
	}
	// The projectile pierces: only its lifetime timer disposes it.
	if got := len(a.Projectiles()); got != 1 {
		t.Fatalf("projectile should outlive the hit, live=%d", got)
	}
}

func TestGoalObserverFiresOnce(t *testing.T) {
	cfg := rangeConfig()
	cfg.GoalZ = 0 // the vehicle starts on the goal line
	goals := 0
	cfg.OnGoal = func() { goals++ }

	a := New(cfg)
	defer a.Dispose()

	a.Step(combat.Intent{}, stepDT)
	a.Step(combat.Intent{}, stepDT)
	a.Step(combat.Intent{}, stepDT)

	if !a.Won() {
		t.Fatalf("expected the run to be won")
	}
	if goals != 1 {
		t.Fatalf("goal callback fired %d times, want 1", goals)
	}
}

func TestDriveTowardGoal(t *testing.T) {
	cfg := rangeConfig()
	cfg.TargetRows = 0
	cfg.GoalZ = 2

	a := New(cfg)
	defer a.Dispose()

	for i := 0; i < 600 && !a.Won(); i++ {
		a.Step(combat.Intent{MoveForward: true}, stepDT)
	}
	if !a.Won() {
		t.Fatalf("vehicle never reached the goal zone, z=%v", a.Vehicle().Position().Z())
	}
}

func TestRotationTurnsFiringDirection(t *testing.T) {
	cfg := rangeConfig()
	cfg.TargetRows = 0
	a := New(cfg)
	defer a.Dispose()

	start := a.Vehicle().Forward()
	if !vecApprox(start, mgl32.Vec3{0, 0, 1}, 1e-3) {
		t.Fatalf("expected initial forward +Z, got %v", start)
	}

	for i := 0; i < 60; i++ {
		a.Step(combat.Intent{RotateLeft: true}, stepDT)
	}
	turned := a.Vehicle().Forward()
	if turned.X() <= 0.1 {
		t.Fatalf("expected the heading to yaw toward +X, got %v", turned)
	}
}

func TestDisposeTearsDownEverything(t *testing.T) {
	a := New(rangeConfig())

	a.Step(combat.Intent{Fire: true}, stepDT)
	a.Dispose()

	if got := len(a.Projectiles()); got != 0 {
		t.Fatalf("expected no live projectiles after dispose, got %d", got)
	}
	if a.Roster().Len() != 0 {
		t.Fatalf("expected an empty roster after dispose, got %d", a.Roster().Len())
	}
	if a.HasTargetMarker(1) || a.HasProjectileMarker(1) {
		t.Fatalf("expected all visuals released after dispose")
	}
}

func vecApprox(a, b mgl32.Vec3, tol float32) bool {
	return a.Sub(b).Len() <= tol
}
