package combat

import "time"

// Timer is a pending deferred callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false when the callback already
	// fired or was stopped before.
	Stop() bool
}

// Scheduler defers callbacks on wall-clock time, independent of the frame
// rate. Callbacks run on their own goroutine, so everything they touch that
// the main tick also touches is mutex-guarded.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

type wallScheduler struct{}

// NewScheduler returns the wall-clock scheduler used in production.
func NewScheduler() Scheduler {
	return wallScheduler{}
}

func (wallScheduler) After(d time.Duration, fn func()) Timer {
	return wallTimer{t: time.AfterFunc(d, fn)}
}

type wallTimer struct {
	t *time.Timer
}

func (w wallTimer) Stop() bool {
	if w.t == nil {
		return false
	}
	return w.t.Stop()
}
