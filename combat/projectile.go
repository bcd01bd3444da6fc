package combat

import (
	"log"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Projectile is a transient ballistic entity. It is created by the spawner
// and disposed exactly once by its lifetime timer; hits remove targets but
// leave the projectile flying, so one projectile can pierce several targets
// before it expires.
type Projectile struct {
	id        int
	spawnedAt time.Time

	mu       sync.Mutex
	body     Body
	visual   Visual
	space    Space
	ttl      Timer
	disposed bool

	// onDispose de-registers the projectile's armed collision entries and
	// its spawner bookkeeping. Set once during spawn, before the TTL timer
	// is armed.
	onDispose func(*Projectile)
}

// ID returns the projectile's identity used for collision dispatch.
func (p *Projectile) ID() int {
	return p.id
}

// Position returns the projectile's current world position, or the zero
// vector after disposal.
func (p *Projectile) Position() mgl32.Vec3 {
	if p == nil {
		return mgl32.Vec3{}
	}
	p.mu.Lock()
	body := p.body
	p.mu.Unlock()
	if body == nil {
		return mgl32.Vec3{}
	}
	return body.Position()
}

// Disposed reports whether the projectile's resources have been freed.
func (p *Projectile) Disposed() bool {
	if p == nil {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

// Dispose releases the projectile's visual and physics resources and cancels
// its lifetime timer. Disposing twice is a no-op.
func (p *Projectile) Dispose() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		log.Printf("Projectile: dispose %d suppressed, already disposed", p.id)
		return
	}
	p.disposed = true
	body := p.body
	visual := p.visual
	ttl := p.ttl
	p.body = nil
	p.visual = nil
	p.ttl = nil
	p.mu.Unlock()

	if ttl != nil {
		ttl.Stop()
	}
	if visual != nil {
		visual.Release()
	}
	if body != nil && p.space != nil {
		p.space.DestroyBody(body)
	}
	if p.onDispose != nil {
		p.onDispose(p)
	}
}
