package combat

import (
	"log"
	"sync"
)

// CollisionResolver resolves projectile-target intersections against the
// shared roster. A projectile is armed at spawn time against a snapshot of
// the roster; hits are dispatched by identity through one shared callback
// instead of one closure per target. Hitting a target removes it from the
// roster and releases its resources exactly once; the projectile itself is
// left alone and keeps flying until its lifetime timer disposes it.
type CollisionResolver struct {
	roster *Roster

	mu    sync.Mutex
	armed map[int]map[int]*Target // projectile id -> target id -> target
}

// NewCollisionResolver creates a resolver bound to the shared roster.
func NewCollisionResolver(roster *Roster) *CollisionResolver {
	return &CollisionResolver{
		roster: roster,
		armed:  make(map[int]map[int]*Target),
	}
}

// Arm registers the current roster snapshot against a projectile. Targets
// added to the roster later are not hit by this projectile.
func (r *CollisionResolver) Arm(p *Projectile) {
	if r == nil || p == nil {
		return
	}
	snap := r.roster.Snapshot()
	entries := make(map[int]*Target, len(snap))
	for _, t := range snap {
		entries[t.ID()] = t
	}
	r.mu.Lock()
	r.armed[p.ID()] = entries
	r.mu.Unlock()
}

// Disarm drops every armed entry for a projectile. Called on disposal.
func (r *CollisionResolver) Disarm(projectileID int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	delete(r.armed, projectileID)
	r.mu.Unlock()
}

// HandleHit is the shared intersection callback, dispatched by the physics
// trigger handler with the identities of the projectile and the target it
// overlapped. Each (projectile, target) pair resolves at most once; a hit on
// a target another projectile already removed is a safe no-op.
func (r *CollisionResolver) HandleHit(projectileID, targetID int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	entries := r.armed[projectileID]
	if entries == nil {
		r.mu.Unlock()
		log.Printf("Resolver: hit from unarmed projectile %d ignored", projectileID)
		return
	}
	t, ok := entries[targetID]
	if !ok {
		r.mu.Unlock()
		log.Printf("Resolver: orphaned hit on target %d ignored", targetID)
		return
	}
	delete(entries, targetID)
	r.mu.Unlock()

	if !r.roster.Remove(t) {
		// Lost the race with another projectile; the winner released it.
		log.Printf("Resolver: target %d already removed", targetID)
		return
	}
	t.Release()
}

// ArmedCount returns the number of targets still armed for a projectile.
func (r *CollisionResolver) ArmedCount(projectileID int) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.armed[projectileID])
}
