package physics

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tbogdala/glider"

	"github.com/kvesten/tankrange/combat"
)

const (
	defaultGravityY       = -9.81
	defaultLinearDamping  = 0.6
	defaultAngularDamping = 2.0
)

type kindPair struct {
	a combat.BodyKind
	b combat.BodyKind
}

type contactPair struct {
	a *Body
	b *Body
}

// TriggerFunc is invoked once when two bodies of the registered kinds begin
// overlapping. The first argument is always the body of the first registered
// kind.
type TriggerFunc func(a, b *Body)

// Space owns every rigid body and steps the simulation. Overlap triggers are
// registered per kind pair, one handler for all bodies of those roles, and
// fire with begin-contact semantics: once per contact until the pair
// separates.
type Space struct {
	mu             sync.Mutex
	gravity        mgl32.Vec3
	linearDamping  float32
	angularDamping float32
	bodies         []*Body
	handlers       map[kindPair]TriggerFunc
	contacts       map[contactPair]bool
}

// NewSpace creates a space with gravity and a ground plane at y=0.
func NewSpace() *Space {
	return &Space{
		gravity:        mgl32.Vec3{0, defaultGravityY, 0},
		linearDamping:  defaultLinearDamping,
		angularDamping: defaultAngularDamping,
		handlers:       make(map[kindPair]TriggerFunc),
		contacts:       make(map[contactPair]bool),
	}
}

// SetGravity overrides the gravity vector.
func (s *Space) SetGravity(g mgl32.Vec3) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.gravity = g
	s.mu.Unlock()
}

// CreateBody adds a rigid body to the space. Projectiles and vehicles are
// dynamic finite-mass bodies; targets are created static.
func (s *Space) CreateBody(cfg combat.BodyConfig) combat.Body {
	if s == nil {
		return nil
	}
	mass := cfg.Mass
	if mass <= 0 {
		mass = 1
	}
	radius := cfg.Radius
	if radius <= 0 {
		radius = 0.5
	}
	b := &Body{
		space:   s,
		kind:    cfg.Kind,
		pos:     cfg.Position,
		orient:  mgl32.QuatIdent(),
		mass:    mass,
		invMass: 1 / mass,
		radius:  radius,
		static:  cfg.Static,
		sphere: &glider.Sphere{
			Center: cfg.Position,
			Radius: radius,
		},
		userData: cfg.UserData,
	}
	s.mu.Lock()
	s.bodies = append(s.bodies, b)
	s.mu.Unlock()
	return b
}

// DestroyBody removes a body and clears its live contacts. Destroying an
// unknown or already-destroyed body is a no-op.
func (s *Space) DestroyBody(cb combat.Body) {
	if s == nil || cb == nil {
		return
	}
	b, ok := cb.(*Body)
	if !ok {
		return
	}
	s.mu.Lock()
	for i, existing := range s.bodies {
		if existing == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}
	for pair := range s.contacts {
		if pair.a == b || pair.b == b {
			delete(s.contacts, pair)
		}
	}
	s.mu.Unlock()

	b.mu.Lock()
	b.dead = true
	b.mu.Unlock()
}

// OnBeginContact registers the shared trigger handler for a kind pair.
func (s *Space) OnBeginContact(a, b combat.BodyKind, fn TriggerFunc) {
	if s == nil || fn == nil {
		return
	}
	s.mu.Lock()
	s.handlers[kindPair{a: a, b: b}] = fn
	s.mu.Unlock()
}

// Step integrates every dynamic body by dt seconds, then runs the overlap
// pass. Trigger handlers run after the lock is released so they can destroy
// bodies and mutate combat state freely.
func (s *Space) Step(dt float32) {
	if s == nil || dt <= 0 {
		return
	}

	type firing struct {
		fn   TriggerFunc
		a, b *Body
	}
	var fired []firing

	s.mu.Lock()
	for _, b := range s.bodies {
		b.integrate(s.gravity, s.linearDamping, s.angularDamping, dt)
	}

	for pair, fn := range s.handlers {
		for _, a := range s.bodies {
			if a.kind != pair.a {
				continue
			}
			for _, b := range s.bodies {
				if b.kind != pair.b || b == a {
					continue
				}
				key := contactPair{a: a, b: b}
				if a.overlaps(b) {
					if !s.contacts[key] {
						s.contacts[key] = true
						fired = append(fired, firing{fn: fn, a: a, b: b})
					}
				} else {
					delete(s.contacts, key)
				}
			}
		}
	}
	s.mu.Unlock()

	for _, f := range fired {
		f.fn(f.a, f.b)
	}
}

// BodyCount returns the number of live bodies.
func (s *Space) BodyCount() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}
