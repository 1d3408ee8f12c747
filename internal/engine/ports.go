package engine

import "github.com/alexanderramin/pomo/internal/domain"

// ConfigProvider supplies durations (seconds) and the long break interval.
// The engine reads it at construction, at every mode switch and at every
// completion, never continuously.
type ConfigProvider interface {
	Duration(mode domain.Mode) int
	LongBreakInterval() int
}

// SessionStore persists the completed focus session count. Implementations
// handle their own failures; the engine never sees an error.
type SessionStore interface {
	LoadCompletedSessions() int
	SaveCompletedSessions(n int)
}

// Notifier raises the completion alert (sound, desktop notification).
// It is fire-and-forget: the engine does not wait on or inspect it.
type Notifier interface {
	OnCompleted(mode domain.Mode)
}

// QuoteSource picks the motivational message shown after a focus session.
type QuoteSource interface {
	Next() domain.Quote
}

// StaticConfig is a ConfigProvider over a fixed configuration.
type StaticConfig struct {
	cfg domain.Configuration
}

// NewStaticConfig wraps cfg as a ConfigProvider.
func NewStaticConfig(cfg domain.Configuration) StaticConfig {
	return StaticConfig{cfg: cfg}
}

func (c StaticConfig) Duration(m domain.Mode) int {
	return c.cfg.Duration(m)
}

func (c StaticConfig) LongBreakInterval() int {
	return c.cfg.LongBreakInterval
}

type nopStore struct{}

func (nopStore) LoadCompletedSessions() int { return 0 }
func (nopStore) SaveCompletedSessions(int)  {}

type nopNotifier struct{}

func (nopNotifier) OnCompleted(domain.Mode) {}
