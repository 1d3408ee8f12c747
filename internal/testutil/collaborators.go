package testutil

import (
	"sync"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/engine"
)

// RecordingNotifier remembers every completion it was told about.
type RecordingNotifier struct {
	mu    sync.Mutex
	modes []domain.Mode
}

func (n *RecordingNotifier) OnCompleted(mode domain.Mode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.modes = append(n.modes, mode)
}

// Modes returns the completed modes in notification order.
func (n *RecordingNotifier) Modes() []domain.Mode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Mode(nil), n.modes...)
}

// MemoryStore is an in-memory engine.SessionStore.
type MemoryStore struct {
	mu    sync.Mutex
	count int
	saves []int
}

// NewMemoryStore returns a store preloaded with count.
func NewMemoryStore(count int) *MemoryStore {
	return &MemoryStore{count: count}
}

func (s *MemoryStore) LoadCompletedSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *MemoryStore) SaveCompletedSessions(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = n
	s.saves = append(s.saves, n)
}

// Saves returns every value written, in order.
func (s *MemoryStore) Saves() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.saves...)
}

// EventRecorder is an engine.Listener that keeps every event.
type EventRecorder struct {
	mu     sync.Mutex
	events []engine.Event
}

func (r *EventRecorder) OnEvent(ev engine.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []engine.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Event(nil), r.events...)
}

// OfType returns the recorded events of the given type.
func (r *EventRecorder) OfType(t engine.EventType) []engine.Event {
	var out []engine.Event
	for _, ev := range r.Events() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset discards everything recorded so far.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// FixedQuotes always returns the same quote.
type FixedQuotes domain.Quote

func (q FixedQuotes) Next() domain.Quote { return domain.Quote(q) }

// PomodoroConfig is the 25/5/15 x4 configuration in seconds.
func PomodoroConfig() engine.StaticConfig {
	return engine.NewStaticConfig(domain.Configuration{
		Focus:             1500,
		ShortBreak:        300,
		LongBreak:         900,
		LongBreakInterval: 4,
	})
}
