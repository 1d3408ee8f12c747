package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/pomo/internal/engine"
)

// FakeScheduler is a deterministic engine.Scheduler driven by Advance.
// Nothing fires until the test moves the clock.
type FakeScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	entries []*fakeEntry
}

type fakeEntry struct {
	s       *FakeScheduler
	seq     int
	due     time.Duration
	period  time.Duration // zero for one-shot entries
	fn      func()
	stopped bool
	fired   bool
}

// NewFakeScheduler returns a FakeScheduler at time zero.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

var _ engine.Scheduler = (*FakeScheduler)(nil)

func (s *FakeScheduler) Every(period time.Duration, f func()) engine.Timer {
	return s.add(period, period, f)
}

func (s *FakeScheduler) After(delay time.Duration, f func()) engine.Timer {
	return s.add(delay, 0, f)
}

func (s *FakeScheduler) add(delay, period time.Duration, f func()) *fakeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e := &fakeEntry{s: s, seq: s.seq, due: s.now + delay, period: period, fn: f}
	s.entries = append(s.entries, e)
	return e
}

func (e *fakeEntry) Stop() bool {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.stopped || e.fired {
		return false
	}
	e.stopped = true
	return true
}

// Advance moves the clock forward by d, firing every due callback in time
// order. Callbacks run on the calling goroutine without the scheduler lock.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		next := s.nextDueLocked(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.fired = true
		}
		fn := next.fn
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// AdvanceSeconds is Advance in whole seconds.
func (s *FakeScheduler) AdvanceSeconds(n int) {
	for i := 0; i < n; i++ {
		s.Advance(time.Second)
	}
}

func (s *FakeScheduler) nextDueLocked(limit time.Duration) *fakeEntry {
	var live []*fakeEntry
	for _, e := range s.entries {
		if !e.stopped && !e.fired && e.due <= limit {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due != live[j].due {
			return live[i].due < live[j].due
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

// ActivePeriodic counts periodic schedules that are still armed.
func (s *FakeScheduler) ActivePeriodic() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.period > 0 && !e.stopped {
			n++
		}
	}
	return n
}

// PendingOneShots counts single-shot callbacks that have neither fired nor
// been stopped.
func (s *FakeScheduler) PendingOneShots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.period == 0 && !e.stopped && !e.fired {
			n++
		}
	}
	return n
}

// FireStale invokes the callback of every stopped periodic schedule once,
// simulating a tick that was already in flight when the schedule was
// cancelled.
func (s *FakeScheduler) FireStale() {
	s.mu.Lock()
	var fns []func()
	for _, e := range s.entries {
		if e.period > 0 && e.stopped {
			fns = append(fns, e.fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
