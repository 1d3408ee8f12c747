package engine

import (
	"sync"
	"time"
)

// Timer is a cancel handle for something armed on a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler is the host capability the engine uses to drive ticks and the
// delayed mode switch after a completion. Tests substitute a fake clock.
type Scheduler interface {
	// Every invokes f once per period until the returned Timer is stopped.
	Every(period time.Duration, f func()) Timer
	// After invokes f once after delay unless the returned Timer is stopped first.
	After(delay time.Duration, f func()) Timer
}

// SystemScheduler schedules on the wall clock. Callbacks run on their own
// goroutines.
type SystemScheduler struct{}

func (SystemScheduler) After(delay time.Duration, f func()) Timer {
	return time.AfterFunc(delay, f)
}

func (SystemScheduler) Every(period time.Duration, f func()) Timer {
	p := &periodic{stop: make(chan struct{})}
	ticker := time.NewTicker(period)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				f()
			}
		}
	}()
	return p
}

type periodic struct {
	once sync.Once
	stop chan struct{}
}

// Stop reports true only for the call that actually disarmed the ticker.
func (p *periodic) Stop() bool {
	stopped := false
	p.once.Do(func() {
		close(p.stop)
		stopped = true
	})
	return stopped
}
