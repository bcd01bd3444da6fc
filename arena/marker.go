package arena

import "sync"

type markerKind int

const (
	markerTarget markerKind = iota + 1
	markerProjectile
)

// markerSet is the render-side resource registry. Each combat entity gets a
// marker at creation; releasing the marker is what "releasing the visual"
// means in this debug renderer, so the draw pass never sees a dead entity.
type markerSet struct {
	mu      sync.Mutex
	entries map[markerKey]*marker
}

type markerKey struct {
	kind markerKind
	id   int
}

// marker implements combat.Visual.
type marker struct {
	set *markerSet
	key markerKey
}

func newMarkerSet() *markerSet {
	return &markerSet{entries: make(map[markerKey]*marker)}
}

func (s *markerSet) add(kind markerKind, id int) *marker {
	m := &marker{set: s, key: markerKey{kind: kind, id: id}}
	s.mu.Lock()
	s.entries[m.key] = m
	s.mu.Unlock()
	return m
}

func (s *markerSet) has(kind markerKind, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[markerKey{kind: kind, id: id}]
	return ok
}

// Release removes the marker from the registry. Double release is a no-op.
func (m *marker) Release() {
	if m == nil || m.set == nil {
		return
	}
	m.set.mu.Lock()
	delete(m.set.entries, m.key)
	m.set.mu.Unlock()
}

// HasTargetMarker reports whether a target's visual is still registered.
// Exposed for the renderer and for teardown checks.
func (a *Arena) HasTargetMarker(id int) bool {
	return a.markers.has(markerTarget, id)
}

// HasProjectileMarker reports whether a projectile's visual is still
// registered.
func (a *Arena) HasProjectileMarker(id int) bool {
	return a.markers.has(markerProjectile, id)
}
