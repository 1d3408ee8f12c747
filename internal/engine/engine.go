// Package engine implements the Pomodoro timer state machine.
//
// An Engine owns one SessionState and mutates it only through its commands
// (Start, Pause, Reset, Tick, SwitchMode). Time is supplied by an injected
// Scheduler, persistence by a SessionStore and alerts by a Notifier, so the
// state machine itself performs no I/O.
package engine

import (
	"sync"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultTickInterval is the countdown resolution: one tick, one second.
	DefaultTickInterval = time.Second
	// DefaultSettleDelay is how long a completed countdown stays on screen
	// before the engine switches to the next mode.
	DefaultSettleDelay = time.Second
)

// Option configures an Engine during construction.
type Option func(*Engine)

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithNotifier sets the completion notifier.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithQuotes enables the motivation event after focus completions.
func WithQuotes(q QuoteSource) Option {
	return func(e *Engine) { e.quotes = q }
}

// WithTickInterval overrides the tick period.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// WithSettleDelay overrides the pause between a completion and the
// automatic mode switch.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.settleDelay = d
		}
	}
}

// WithClock overrides the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine is the timer/session state machine. All methods are safe for
// concurrent use; listeners and collaborators are always invoked after the
// internal lock has been released.
type Engine struct {
	id           string
	config       ConfigProvider
	store        SessionStore
	notifier     Notifier
	quotes       QuoteSource
	scheduler    Scheduler
	logger       *zap.Logger
	now          func() time.Time
	tickInterval time.Duration
	settleDelay  time.Duration

	mu    sync.Mutex
	state domain.SessionState
	seq   uint64

	// ticker is the single armed periodic schedule. tickGen is bumped on
	// every arm and disarm so callbacks from a stale schedule are ignored.
	ticker  Timer
	tickGen uint64

	// advance is the pending automatic mode switch after a completion.
	advance    Timer
	advanceGen uint64

	listenersMu sync.RWMutex
	listeners   []Listener
}

// New creates an Engine in Focus mode, Ready, with the configured focus
// duration and the completed session count loaded from store. A nil store
// starts the count at zero and persists nothing.
func New(config ConfigProvider, store SessionStore, scheduler Scheduler, opts ...Option) *Engine {
	if store == nil {
		store = nopStore{}
	}
	if scheduler == nil {
		scheduler = SystemScheduler{}
	}
	e := &Engine{
		id:           uuid.NewString(),
		config:       config,
		store:        store,
		notifier:     nopNotifier{},
		scheduler:    scheduler,
		logger:       zap.NewNop(),
		now:          time.Now,
		tickInterval: DefaultTickInterval,
		settleDelay:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("engine_id", e.id))

	completed := store.LoadCompletedSessions()
	if completed < 0 {
		completed = 0
	}
	target := e.durationFor(domain.ModeFocus)
	e.state = domain.SessionState{
		Mode:                   domain.ModeFocus,
		RunState:               domain.RunReady,
		Remaining:              target,
		TargetDuration:         target,
		CompletedFocusSessions: completed,
	}
	return e
}

// ID identifies this engine instance in logs.
func (e *Engine) ID() string { return e.id }

// Snapshot returns a copy of the current session state.
func (e *Engine) Snapshot() domain.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Latest returns the current session state together with the Seq of the
// last event produced. A listener that starts from this state can ignore
// any event with a lower Seq.
func (e *Engine) Latest() (domain.SessionState, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.seq
}

// AddListener registers l for all subsequent events.
func (e *Engine) AddListener(l Listener) {
	e.listenersMu.Lock()
	e.listeners = append(e.listeners, l)
	e.listenersMu.Unlock()
}

// Start begins counting down from Ready or Paused. It is a no-op in any
// other state.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.state.RunState != domain.RunReady && e.state.RunState != domain.RunPaused {
		e.mu.Unlock()
		return
	}
	e.cancelAdvanceLocked()
	e.state.RunState = domain.RunRunning
	e.armLocked()
	ev := e.stateEventLocked()
	e.mu.Unlock()

	e.logger.Debug("timer started", zap.String("mode", string(ev.State.Mode)), zap.Int("remaining", ev.State.Remaining))
	e.dispatch(ev)
}

// Pause halts a running countdown and preserves the remaining time.
// It is a no-op unless the engine is Running.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.state.RunState != domain.RunRunning {
		e.mu.Unlock()
		return
	}
	e.disarmLocked()
	e.state.RunState = domain.RunPaused
	ev := e.stateEventLocked()
	e.mu.Unlock()

	e.logger.Debug("timer paused", zap.Int("remaining", ev.State.Remaining))
	e.dispatch(ev)
}

// Reset restores the full duration of the current mode and returns to
// Ready, whatever the prior state.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.cancelAdvanceLocked()
	e.disarmLocked()
	e.state.Remaining = e.state.TargetDuration
	e.state.RunState = domain.RunReady
	ev := e.stateEventLocked()
	e.mu.Unlock()

	e.dispatch(ev)
}

// SwitchMode enters mode with a fresh countdown read from the current
// configuration. Switching while running abandons the running countdown.
func (e *Engine) SwitchMode(mode domain.Mode) {
	if !validMode(mode) {
		e.logger.Warn("ignoring switch to unknown mode", zap.String("mode", string(mode)))
		return
	}
	e.mu.Lock()
	e.cancelAdvanceLocked()
	e.switchLocked(mode)
	ev := e.stateEventLocked()
	e.mu.Unlock()

	e.dispatch(ev)
}

// Resync re-reads the duration of the current mode after the configuration
// changed. A running countdown is left alone, and so is a completed one,
// whose pending switch reads the new configuration anyway. Otherwise the
// countdown restarts from the new full duration.
func (e *Engine) Resync() {
	e.mu.Lock()
	if e.state.RunState == domain.RunRunning || e.state.RunState == domain.RunCompleted {
		e.mu.Unlock()
		return
	}
	e.switchLocked(e.state.Mode)
	ev := e.stateEventLocked()
	e.mu.Unlock()

	e.dispatch(ev)
}

// Tick advances a running countdown by one second. It is a no-op unless
// the engine is Running.
func (e *Engine) Tick() {
	e.mu.Lock()
	if e.state.RunState != domain.RunRunning {
		e.mu.Unlock()
		return
	}
	e.tickLocked()
}

// scheduledTick is the callback armed on the periodic scheduler. gen pins
// it to the schedule that created it.
func (e *Engine) scheduledTick(gen uint64) {
	e.mu.Lock()
	if gen != e.tickGen || e.state.RunState != domain.RunRunning {
		e.mu.Unlock()
		return
	}
	e.tickLocked()
}

// tickLocked must be called with e.mu held; it releases the lock before
// notifying anyone.
func (e *Engine) tickLocked() {
	e.state.Remaining--
	if e.state.Remaining > 0 {
		ev := e.stateEventLocked()
		e.mu.Unlock()
		e.dispatch(ev)
		return
	}

	c := e.completeLocked()
	e.mu.Unlock()
	e.finishCompletion(c)
}

type completion struct {
	events    []Event
	mode      domain.Mode
	completed int
	focus     bool
	followUp  []Event
}

func (e *Engine) completeLocked() completion {
	e.state.Remaining = 0
	e.disarmLocked()
	e.state.RunState = domain.RunCompleted

	prev := e.state.Mode
	c := completion{mode: prev}

	next := domain.ModeFocus
	if prev == domain.ModeFocus {
		e.state.CompletedFocusSessions++
		c.focus = true
		c.completed = e.state.CompletedFocusSessions

		next = domain.ModeShortBreak
		if domain.LongBreakDue(c.completed, e.config.LongBreakInterval()) {
			next = domain.ModeLongBreak
		}
	}

	// Every event below already carries the incremented count.
	at := e.now()
	c.events = append(c.events,
		e.stampLocked(Event{Type: EventStateChanged, State: e.state, At: at}),
		e.stampLocked(Event{Type: EventCompleted, State: e.state, PreviousMode: prev, At: at}),
	)
	if c.focus {
		c.followUp = append(c.followUp, e.stampLocked(Event{
			Type:                   EventSessionCountChanged,
			State:                  e.state,
			CompletedFocusSessions: c.completed,
			At:                     at,
		}))
		if e.quotes != nil {
			c.followUp = append(c.followUp, e.stampLocked(Event{Type: EventMotivation, State: e.state, Quote: e.quotes.Next(), At: at}))
		}
	}

	e.scheduleAdvanceLocked(next)
	return c
}

func (e *Engine) finishCompletion(c completion) {
	e.logger.Info("countdown completed",
		zap.String("mode", string(c.mode)),
		zap.Int("completed_focus_sessions", c.completed))

	e.dispatch(c.events...)
	e.notifier.OnCompleted(c.mode)
	if c.focus {
		e.store.SaveCompletedSessions(c.completed)
	}
	e.dispatch(c.followUp...)
}

func (e *Engine) scheduleAdvanceLocked(next domain.Mode) {
	e.cancelAdvanceLocked()
	gen := e.advanceGen
	e.advance = e.scheduler.After(e.settleDelay, func() { e.autoSwitch(gen, next) })
}

func (e *Engine) autoSwitch(gen uint64, next domain.Mode) {
	e.mu.Lock()
	if gen != e.advanceGen {
		e.mu.Unlock()
		return
	}
	e.advance = nil
	e.advanceGen++
	e.switchLocked(next)
	ev := e.stateEventLocked()
	e.mu.Unlock()

	e.logger.Debug("switched mode after completion", zap.String("mode", string(next)))
	e.dispatch(ev)
}

func (e *Engine) cancelAdvanceLocked() {
	if e.advance != nil {
		e.advance.Stop()
		e.advance = nil
	}
	e.advanceGen++
}

func (e *Engine) switchLocked(mode domain.Mode) {
	e.disarmLocked()
	target := e.durationFor(mode)
	e.state.Mode = mode
	e.state.TargetDuration = target
	e.state.Remaining = target
	e.state.RunState = domain.RunReady
}

// armLocked installs the one periodic schedule, replacing any existing one.
func (e *Engine) armLocked() {
	e.disarmLocked()
	gen := e.tickGen
	e.ticker = e.scheduler.Every(e.tickInterval, func() { e.scheduledTick(gen) })
}

func (e *Engine) disarmLocked() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	e.tickGen++
}

func (e *Engine) durationFor(mode domain.Mode) int {
	return domain.AtLeastOne(e.config.Duration(mode))
}

func (e *Engine) stateEventLocked() Event {
	return e.stampLocked(Event{Type: EventStateChanged, State: e.state, At: e.now()})
}

// stampLocked assigns the next sequence number. Dispatch happens outside
// the lock, so Seq is the only reliable order across goroutines.
func (e *Engine) stampLocked(ev Event) Event {
	e.seq++
	ev.Seq = e.seq
	return ev
}

func (e *Engine) dispatch(events ...Event) {
	if len(events) == 0 {
		return
	}
	e.listenersMu.RLock()
	listeners := append([]Listener(nil), e.listeners...)
	e.listenersMu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l.OnEvent(ev)
		}
	}
}

func validMode(m domain.Mode) bool {
	for _, known := range domain.Modes {
		if m == known {
			return true
		}
	}
	return false
}
