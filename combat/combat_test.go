package combat

import (
	"sort"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// manualScheduler is a deterministic Scheduler driven by Advance instead of
// wall-clock time.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	sched   *manualScheduler
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{}
}

func (s *manualScheduler) After(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{sched: s, at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves virtual time forward and runs every due callback in deadline
// order.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

func (t *manualTimer) Stop() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeBody records every capability call.
type fakeBody struct {
	mu        sync.Mutex
	transform mgl32.Mat4
	forces    []mgl32.Vec3
	impulses  []mgl32.Vec3
	angVels   []mgl32.Vec3
}

func newFakeBody() *fakeBody {
	return &fakeBody{transform: mgl32.Ident4()}
}

func (b *fakeBody) ApplyForce(force, at mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forces = append(b.forces, force)
}

func (b *fakeBody) ApplyImpulse(impulse, at mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.impulses = append(b.impulses, impulse)
}

func (b *fakeBody) SetAngularVelocity(av mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.angVels = append(b.angVels, av)
}

func (b *fakeBody) WorldTransform() mgl32.Mat4 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transform
}

func (b *fakeBody) Position() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transform.Col(3).Vec3()
}

func (b *fakeBody) setTransform(m mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transform = m
}

// fakeSpace records body creation and destruction.
type fakeSpace struct {
	mu        sync.Mutex
	configs   []BodyConfig
	created   []*fakeBody
	destroyed []Body
}

func newFakeSpace() *fakeSpace {
	return &fakeSpace{}
}

func (s *fakeSpace) CreateBody(cfg BodyConfig) Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := newFakeBody()
	b.transform = mgl32.Translate3D(cfg.Position.X(), cfg.Position.Y(), cfg.Position.Z())
	s.configs = append(s.configs, cfg)
	s.created = append(s.created, b)
	return b
}

func (s *fakeSpace) DestroyBody(b Body) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, b)
}

func (s *fakeSpace) destroyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.destroyed)
}

// countingVisual counts Release calls.
type countingVisual struct {
	mu       sync.Mutex
	released int
}

func (v *countingVisual) Release() {
	v.mu.Lock()
	v.released++
	v.mu.Unlock()
}

func (v *countingVisual) count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.released
}

func approx(a, b mgl32.Vec3, tol float32) bool {
	return a.Sub(b).Len() <= tol
}
