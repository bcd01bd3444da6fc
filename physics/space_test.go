package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kvesten/tankrange/combat"
)

func TestImpulseMovesBody(t *testing.T) {
	s := NewSpace()
	s.SetGravity(mgl32.Vec3{})

	b := s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyProjectile,
		Position: mgl32.Vec3{0, 5, 0},
		Mass:     2,
		Radius:   0.5,
	})

	b.ApplyImpulse(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	s.Step(1.0 / 60)

	pos := b.Position()
	if pos.Z() <= 0 {
		t.Fatalf("expected the body to move forward, got %v", pos)
	}
	if pos.X() != 0 {
		t.Fatalf("expected no sideways drift, got %v", pos)
	}
}

func TestGroundPlaneClampsBodies(t *testing.T) {
	s := NewSpace()
	b := s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyVehicle,
		Position: mgl32.Vec3{0, 0.5, 0},
		Mass:     5,
		Radius:   1,
	})

	for i := 0; i < 60; i++ {
		s.Step(1.0 / 60)
	}

	pos := b.Position()
	if pos.Y() < 1-1e-4 {
		t.Fatalf("body sank through the ground plane: y=%v", pos.Y())
	}
}

func TestAngularVelocityYawsBody(t *testing.T) {
	s := NewSpace()
	s.SetGravity(mgl32.Vec3{})
	b := s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyVehicle,
		Position: mgl32.Vec3{0, 5, 0},
		Mass:     5,
		Radius:   1,
	})

	b.SetAngularVelocity(mgl32.Vec3{0, 1, 0})
	s.Step(1.0 / 60)

	fwd := b.WorldTransform().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if fwd.X() <= 0.01 {
		t.Fatalf("expected the forward axis to yaw toward +X, got %v", fwd)
	}
}

func TestBeginContactFiresOncePerContact(t *testing.T) {
	s := NewSpace()

	proj := s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyProjectile,
		Position: mgl32.Vec3{0, 5, 0},
		Radius:   0.5,
		Static:   true,
		UserData: 1,
	}).(*Body)
	s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyTarget,
		Position: mgl32.Vec3{0, 5, 0.4},
		Radius:   0.5,
		Static:   true,
		UserData: 7,
	})

	var hits [][2]int
	s.OnBeginContact(combat.BodyProjectile, combat.BodyTarget, func(a, b *Body) {
		pid, _ := a.UserData().(int)
		tid, _ := b.UserData().(int)
		hits = append(hits, [2]int{pid, tid})
	})

	s.Step(1.0 / 60)
	s.Step(1.0 / 60)
	if len(hits) != 1 {
		t.Fatalf("expected a single begin-contact while overlapping, got %d", len(hits))
	}
	if hits[0] != [2]int{1, 7} {
		t.Fatalf("expected hit (1,7), got %v", hits[0])
	}

	// Separate, then overlap again: a fresh contact fires a fresh trigger.
	proj.SetPosition(mgl32.Vec3{0, 5, -10})
	s.Step(1.0 / 60)
	proj.SetPosition(mgl32.Vec3{0, 5, 0.4})
	s.Step(1.0 / 60)
	if len(hits) != 2 {
		t.Fatalf("expected a second begin-contact after separation, got %d", len(hits))
	}
}

func TestDestroyBodyStopsTriggers(t *testing.T) {
	s := NewSpace()

	target := s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyTarget,
		Position: mgl32.Vec3{0, 5, 0},
		Radius:   1,
		Static:   true,
		UserData: 1,
	})
	s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyProjectile,
		Position: mgl32.Vec3{0, 5, 0.5},
		Radius:   0.5,
		Static:   true,
		UserData: 2,
	})

	fired := 0
	s.OnBeginContact(combat.BodyProjectile, combat.BodyTarget, func(a, b *Body) {
		fired++
	})

	if s.BodyCount() != 2 {
		t.Fatalf("expected 2 bodies, got %d", s.BodyCount())
	}
	s.DestroyBody(target)
	if s.BodyCount() != 1 {
		t.Fatalf("expected 1 body after destroy, got %d", s.BodyCount())
	}
	s.Step(1.0 / 60)
	if fired != 0 {
		t.Fatalf("destroyed body still fired triggers")
	}

	// Destroying twice is a no-op.
	s.DestroyBody(target)
	if s.BodyCount() != 1 {
		t.Fatalf("double destroy changed the body count")
	}
}

func TestProjectileIntersectsTargetDownrange(t *testing.T) {
	s := NewSpace()

	s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyTarget,
		Position: mgl32.Vec3{0, 1, 10},
		Radius:   1,
		Static:   true,
		UserData: 1,
	})
	proj := s.CreateBody(combat.BodyConfig{
		Kind:     combat.BodyProjectile,
		Position: mgl32.Vec3{0, 1, 0},
		Mass:     2,
		Radius:   0.5,
		UserData: 2,
	})
	proj.ApplyImpulse(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{})

	hit := false
	s.OnBeginContact(combat.BodyProjectile, combat.BodyTarget, func(a, b *Body) {
		hit = true
	})

	for i := 0; i < 120 && !hit; i++ {
		s.Step(1.0 / 60)
	}
	if !hit {
		t.Fatalf("projectile never intersected the downrange target")
	}
}
