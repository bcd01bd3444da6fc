package combat

import (
	"sync"
	"time"
)

// CooldownGate is a timed lock guarding the fire action. It transitions
// Ready -> Locked on a successful TryFire and back to Ready after a fixed
// wall-clock delay, never earlier and regardless of how many ticks elapse.
type CooldownGate struct {
	mu      sync.Mutex
	locked  bool
	delay   time.Duration
	sched   Scheduler
	pending Timer
}

// NewCooldownGate creates a gate in the Ready state.
func NewCooldownGate(sched Scheduler, delay time.Duration) *CooldownGate {
	return &CooldownGate{
		delay: delay,
		sched: sched,
	}
}

// TryFire returns true and locks the gate iff it is Ready. While Locked it is
// an idempotent no-op returning false.
func (g *CooldownGate) TryFire() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.locked {
		return false
	}
	g.locked = true
	g.pending = g.sched.After(g.delay, g.unlock)
	return true
}

// Ready reports whether the gate would accept a fire right now.
func (g *CooldownGate) Ready() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.locked
}

// Cancel stops the pending unlock timer. Used on teardown so a destroyed
// vehicle leaves no timer behind; the gate stays in whatever state it was in.
func (g *CooldownGate) Cancel() {
	if g == nil {
		return
	}
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()
	if pending != nil {
		pending.Stop()
	}
}

func (g *CooldownGate) unlock() {
	g.mu.Lock()
	g.locked = false
	g.pending = nil
	g.mu.Unlock()
}
