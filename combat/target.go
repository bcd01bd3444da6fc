package combat

import (
	"log"
	"sync"
)

// Target is one destructible entity in the shared roster. It holds a physics
// collider handle and a visual handle; both are released exactly once when
// the target is destroyed.
type Target struct {
	id int

	mu       sync.Mutex
	body     Body
	visual   Visual
	space    Space
	released bool
}

// NewTarget wraps a collider body and visual handle as a roster target.
func NewTarget(id int, space Space, body Body, visual Visual) *Target {
	return &Target{
		id:     id,
		space:  space,
		body:   body,
		visual: visual,
	}
}

// ID returns the target's roster identity.
func (t *Target) ID() int {
	return t.id
}

// Body returns the target's collider handle, or nil after release.
func (t *Target) Body() Body {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.body
}

// Release frees the target's visual and collider resources. Releasing an
// already-released target is a no-op.
func (t *Target) Release() {
	if t == nil {
		return
	}
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		log.Printf("Target: release %d suppressed, already released", t.id)
		return
	}
	t.released = true
	body := t.body
	visual := t.visual
	t.body = nil
	t.visual = nil
	t.mu.Unlock()

	if visual != nil {
		visual.Release()
	}
	if body != nil && t.space != nil {
		t.space.DestroyBody(body)
	}
}

// Released reports whether the target's resources have been freed.
func (t *Target) Released() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

// Roster is the shared ordered collection of live targets. It is owned by
// whatever system spawns targets; the combat core only snapshots it and
// removes confirmed kills. Collision dispatch, timeout callbacks, and the
// main tick may all touch it, so every operation holds the roster lock.
type Roster struct {
	mu      sync.Mutex
	targets []*Target
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Add appends a target. A target already present is not added twice.
func (r *Roster) Add(t *Target) {
	if r == nil || t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.targets {
		if existing == t {
			return
		}
	}
	r.targets = append(r.targets, t)
}

// Snapshot returns the live targets in order. The returned slice is a copy;
// later removals do not affect it.
func (r *Roster) Snapshot() []*Target {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Remove structurally removes a target, preserving the order of the rest.
// Removing a target that is already gone is a safe no-op returning false.
func (r *Roster) Remove(t *Target) bool {
	if r == nil || t == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.targets {
		if existing == t {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of live targets.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.targets)
}
