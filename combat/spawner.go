package combat

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// ProjectileSpawner creates physics-backed projectiles from the vehicle's
// current orientation and owns each one until its disposal. Every spawned
// projectile is armed against the roster snapshot and put on a fixed
// lifetime timer; the timer is the only path that disposes it.
type ProjectileSpawner struct {
	space    Space
	sched    Scheduler
	resolver *CollisionResolver

	mu     sync.Mutex
	tuning ProjectileTuning
	nextID int
	live   map[int]*Projectile

	// NewVisual, when set, supplies a render handle for each projectile.
	NewVisual func(id int) Visual
}

// NewProjectileSpawner creates a spawner.
func NewProjectileSpawner(space Space, sched Scheduler, resolver *CollisionResolver, tuning ProjectileTuning) *ProjectileSpawner {
	return &ProjectileSpawner{
		space:    space,
		sched:    sched,
		resolver: resolver,
		tuning:   tuning,
		live:     make(map[int]*Projectile),
	}
}

// SetTuning swaps the spawn constants. Applies to projectiles spawned after
// the call; live ones are unaffected.
func (s *ProjectileSpawner) SetTuning(t ProjectileTuning) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.tuning = t
	s.mu.Unlock()
}

// Spawn launches a projectile from ahead of and above the vehicle, along its
// current forward direction. Call only after the cooldown gate opened.
//
// Launch position is the vehicle position offset up by VerticalOffset and
// forward by ForwardOffset so the projectile does not intersect its own
// vehicle. The impulse is forward scaled by Power with a constant upward arc
// bias of Power*ElevationBias on the vertical component.
func (s *ProjectileSpawner) Spawn(v *VehicleController) *Projectile {
	if s == nil || v == nil {
		return nil
	}
	s.mu.Lock()
	tuning := s.tuning
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	forward := v.Forward()
	pos := v.Position().
		Add(worldUp.Mul(tuning.VerticalOffset)).
		Add(forward.Mul(tuning.ForwardOffset))

	body := s.space.CreateBody(BodyConfig{
		Kind:     BodyProjectile,
		Position: pos,
		Mass:     tuning.Mass,
		Radius:   tuning.Radius,
		UserData: id,
	})

	impulse := forward.Mul(tuning.Power)
	impulse[1] += tuning.Power * tuning.ElevationBias
	body.ApplyImpulse(impulse, mgl32.Vec3{})

	p := &Projectile{
		id:        id,
		spawnedAt: time.Now(),
		body:      body,
		space:     s.space,
	}
	if s.NewVisual != nil {
		p.visual = s.NewVisual(id)
	}
	p.onDispose = func(pr *Projectile) {
		s.resolver.Disarm(pr.ID())
		s.mu.Lock()
		delete(s.live, pr.ID())
		s.mu.Unlock()
	}

	s.resolver.Arm(p)

	s.mu.Lock()
	s.live[id] = p
	s.mu.Unlock()

	// Unconditional disposal after the fixed time-to-live, hit or no hit.
	p.mu.Lock()
	p.ttl = s.sched.After(tuning.TTL, p.Dispose)
	p.mu.Unlock()

	return p
}

// Live returns the projectiles not yet disposed.
func (s *ProjectileSpawner) Live() []*Projectile {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	out := make([]*Projectile, 0, len(s.live))
	for _, p := range s.live {
		out = append(out, p)
	}
	s.mu.Unlock()
	return out
}

// DisposeAll tears down every live projectile, cancelling pending timers.
func (s *ProjectileSpawner) DisposeAll() {
	for _, p := range s.Live() {
		p.Dispose()
	}
}
