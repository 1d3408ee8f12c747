package engine_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/engine"
	"github.com/alexanderramin/pomo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	eng      *engine.Engine
	sched    *testutil.FakeScheduler
	events   *testutil.EventRecorder
	notifier *testutil.RecordingNotifier
	store    *testutil.MemoryStore
}

func newHarness(t *testing.T, cfg engine.ConfigProvider, completed int) *harness {
	t.Helper()
	h := &harness{
		sched:    testutil.NewFakeScheduler(),
		events:   &testutil.EventRecorder{},
		notifier: &testutil.RecordingNotifier{},
		store:    testutil.NewMemoryStore(completed),
	}
	h.eng = engine.New(cfg, h.store, h.sched,
		engine.WithNotifier(h.notifier),
		engine.WithQuotes(testutil.FixedQuotes{Text: "Keep going.", Author: "Test"}),
	)
	h.eng.AddListener(h.events)
	return h
}

// mutableConfig lets a test change durations between commands.
type mutableConfig struct {
	mu  sync.Mutex
	cfg domain.Configuration
}

func (c *mutableConfig) Duration(m domain.Mode) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Duration(m)
}

func (c *mutableConfig) LongBreakInterval() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.LongBreakInterval
}

func (c *mutableConfig) set(fn func(*domain.Configuration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.cfg)
}

func tinyConfig(interval int) engine.StaticConfig {
	return engine.NewStaticConfig(domain.Configuration{Focus: 3, ShortBreak: 2, LongBreak: 5, LongBreakInterval: interval})
}

func TestNew_InitialState(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 7)

	s := h.eng.Snapshot()
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Equal(t, domain.RunReady, s.RunState)
	assert.Equal(t, 1500, s.Remaining)
	assert.Equal(t, 1500, s.TargetDuration)
	assert.Equal(t, 7, s.CompletedFocusSessions)
	assert.NotEmpty(t, h.eng.ID())
}

func TestNew_NilStoreStartsAtZero(t *testing.T) {
	eng := engine.New(testutil.PomodoroConfig(), nil, testutil.NewFakeScheduler())
	assert.Equal(t, 0, eng.Snapshot().CompletedFocusSessions)
}

func TestTick_DecrementsWhileRunning(t *testing.T) {
	for _, n := range []int{1, 10, 299, 1499} {
		h := newHarness(t, testutil.PomodoroConfig(), 0)
		h.eng.Start()
		for i := 0; i < n; i++ {
			h.eng.Tick()
		}
		s := h.eng.Snapshot()
		assert.Equal(t, 1500-n, s.Remaining, "after %d ticks", n)
		assert.Equal(t, domain.RunRunning, s.RunState)
	}
}

func TestTick_NoOpWhenNotRunning(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.Tick()
	assert.Equal(t, 1500, h.eng.Snapshot().Remaining)
	assert.Empty(t, h.events.Events())

	h.eng.Start()
	h.eng.Pause()
	h.events.Reset()
	h.eng.Tick()
	assert.Equal(t, 1500, h.eng.Snapshot().Remaining)
	assert.Empty(t, h.events.Events())
}

func TestStart_IsExclusive(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.Start()
	h.eng.Start()
	h.eng.Start()
	assert.Equal(t, 1, h.sched.ActivePeriodic())
	assert.Len(t, h.events.OfType(engine.EventStateChanged), 1, "redundant starts emit nothing")

	h.sched.AdvanceSeconds(4)
	assert.Equal(t, 1496, h.eng.Snapshot().Remaining, "one schedule means one decrement per second")
}

func TestPause_NoOpWhenNotRunning(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.Pause()
	assert.Equal(t, domain.RunReady, h.eng.Snapshot().RunState)
	assert.Empty(t, h.events.Events())
}

func TestPauseResume_NoExtraDecrement(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(10)
	h.eng.Pause()
	assert.Equal(t, 0, h.sched.ActivePeriodic())

	h.sched.Advance(30 * time.Second)
	assert.Equal(t, 1490, h.eng.Snapshot().Remaining, "paused time must not count")

	h.eng.Start()
	h.sched.AdvanceSeconds(5)

	s := h.eng.Snapshot()
	assert.Equal(t, 1500-15, s.Remaining)
	assert.Equal(t, domain.RunRunning, s.RunState)
}

func TestReset_FromAnyState(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 0)

	h.eng.Reset()
	assert.Equal(t, domain.RunReady, h.eng.Snapshot().RunState)

	h.eng.Start()
	h.sched.AdvanceSeconds(1)
	h.eng.Reset()
	s := h.eng.Snapshot()
	assert.Equal(t, s.TargetDuration, s.Remaining)
	assert.Equal(t, domain.RunReady, s.RunState)

	h.eng.Start()
	h.sched.AdvanceSeconds(1)
	h.eng.Pause()
	h.eng.Reset()
	s = h.eng.Snapshot()
	assert.Equal(t, 3, s.Remaining)
	assert.Equal(t, domain.RunReady, s.RunState)

	h.eng.Start()
	h.sched.AdvanceSeconds(3)
	require.Equal(t, domain.RunCompleted, h.eng.Snapshot().RunState)
	h.eng.Reset()
	s = h.eng.Snapshot()
	assert.Equal(t, 3, s.Remaining)
	assert.Equal(t, domain.RunReady, s.RunState)
}

func TestReset_StaleTickIsIgnored(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(3)
	h.eng.Reset()
	assert.Equal(t, 0, h.sched.ActivePeriodic())

	h.events.Reset()
	h.sched.FireStale()
	s := h.eng.Snapshot()
	assert.Equal(t, 1500, s.Remaining)
	assert.Equal(t, domain.RunReady, s.RunState)
	assert.Empty(t, h.events.Events())

	// A stale tick from the old schedule must not double-count after a restart.
	h.eng.Start()
	h.events.Reset()
	h.sched.FireStale()
	assert.Equal(t, 1500, h.eng.Snapshot().Remaining)
	assert.Empty(t, h.events.Events())
}

func TestCompletion_ExactlyOnce(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 0)

	h.eng.Start()
	h.sched.Advance(3 * time.Second)

	s := h.eng.Snapshot()
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, domain.RunCompleted, s.RunState)
	assert.Equal(t, 0, h.sched.ActivePeriodic())

	h.eng.Tick()
	h.sched.FireStale()
	assert.Equal(t, 0, h.eng.Snapshot().Remaining, "never below zero")

	completed := h.events.OfType(engine.EventCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, domain.ModeFocus, completed[0].PreviousMode)
	assert.Equal(t, []domain.Mode{domain.ModeFocus}, h.notifier.Modes())
}

func TestCompletion_FocusAdvancesToShortBreak(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(1500)

	s := h.eng.Snapshot()
	assert.Equal(t, domain.RunCompleted, s.RunState)
	assert.Equal(t, 1, s.CompletedFocusSessions)
	assert.Equal(t, []int{1}, h.store.Saves())

	h.sched.Advance(engine.DefaultSettleDelay)

	s = h.eng.Snapshot()
	assert.Equal(t, domain.ModeShortBreak, s.Mode)
	assert.Equal(t, domain.RunReady, s.RunState)
	assert.Equal(t, 300, s.Remaining)
	assert.Equal(t, 300, s.TargetDuration)
}

func TestCompletion_FourthFocusEarnsLongBreak(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 3)

	h.eng.Start()
	h.sched.AdvanceSeconds(1500)
	h.sched.Advance(engine.DefaultSettleDelay)

	s := h.eng.Snapshot()
	assert.Equal(t, 4, s.CompletedFocusSessions)
	assert.Equal(t, domain.ModeLongBreak, s.Mode)
	assert.Equal(t, 900, s.Remaining)
}

func TestCompletion_BreakReturnsToFocus(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 2)

	h.eng.SwitchMode(domain.ModeShortBreak)
	h.eng.Start()
	h.sched.AdvanceSeconds(2)
	assert.Equal(t, domain.RunCompleted, h.eng.Snapshot().RunState)
	h.sched.AdvanceSeconds(1)

	s := h.eng.Snapshot()
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Equal(t, 3, s.Remaining)
	assert.Equal(t, 2, s.CompletedFocusSessions, "breaks never count")
	assert.Empty(t, h.store.Saves())
	assert.Empty(t, h.events.OfType(engine.EventSessionCountChanged))
	assert.Empty(t, h.events.OfType(engine.EventMotivation))
}

func TestCompletion_EventOrder(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 0)

	h.eng.Start()
	h.events.Reset()
	h.sched.AdvanceSeconds(3)

	var types []engine.EventType
	for _, ev := range h.events.Events() {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []engine.EventType{
		engine.EventStateChanged,
		engine.EventStateChanged,
		engine.EventStateChanged,
		engine.EventCompleted,
		engine.EventSessionCountChanged,
		engine.EventMotivation,
	}, types)

	counts := h.events.OfType(engine.EventSessionCountChanged)
	assert.Equal(t, 1, counts[0].CompletedFocusSessions)
	quotes := h.events.OfType(engine.EventMotivation)
	assert.Equal(t, "Keep going.", quotes[0].Quote.Text)
}

func TestLongBreakDueness(t *testing.T) {
	for _, k := range []int{1, 2, 3, 4} {
		cfg := engine.NewStaticConfig(domain.Configuration{Focus: 1, ShortBreak: 1, LongBreak: 1, LongBreakInterval: k})
		h := newHarness(t, cfg, 0)
		for j := 1; j <= 9; j++ {
			h.eng.SwitchMode(domain.ModeFocus)
			h.eng.Start()
			h.sched.AdvanceSeconds(1)
			h.sched.Advance(engine.DefaultSettleDelay)

			want := domain.ModeShortBreak
			if j%k == 0 {
				want = domain.ModeLongBreak
			}
			assert.Equal(t, want, h.eng.Snapshot().Mode, "interval %d, completion %d", k, j)
		}
	}
}

func TestSwitchMode_ResyncsFromConfiguration(t *testing.T) {
	cfg := &mutableConfig{cfg: domain.Configuration{Focus: 1500, ShortBreak: 300, LongBreak: 900, LongBreakInterval: 4}}
	h := newHarness(t, cfg, 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(20)
	h.eng.SwitchMode(domain.ModeLongBreak)

	s := h.eng.Snapshot()
	assert.Equal(t, domain.ModeLongBreak, s.Mode)
	assert.Equal(t, 900, s.Remaining)
	assert.Equal(t, 900, s.TargetDuration)
	assert.Equal(t, domain.RunReady, s.RunState)
	assert.Equal(t, 0, h.sched.ActivePeriodic(), "switching abandons the running countdown")

	cfg.set(func(c *domain.Configuration) { c.Focus = 600 })
	h.eng.SwitchMode(domain.ModeFocus)
	s = h.eng.Snapshot()
	assert.Equal(t, 600, s.Remaining)
	assert.Equal(t, 600, s.TargetDuration)
}

func TestSwitchMode_UnknownModeIgnored(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.SwitchMode(domain.Mode("siesta"))
	assert.Equal(t, domain.ModeFocus, h.eng.Snapshot().Mode)
	assert.Empty(t, h.events.Events())
}

func TestSwitchMode_CancelsPendingAdvance(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(3)
	require.Equal(t, 1, h.sched.PendingOneShots())

	h.eng.SwitchMode(domain.ModeFocus)
	assert.Equal(t, 0, h.sched.PendingOneShots())

	h.sched.AdvanceSeconds(1)
	assert.Equal(t, domain.ModeFocus, h.eng.Snapshot().Mode)
}

func TestInvalidConfiguration_ClampsToOne(t *testing.T) {
	cfg := engine.NewStaticConfig(domain.Configuration{Focus: 0, ShortBreak: -4, LongBreak: 0, LongBreakInterval: 0})
	h := newHarness(t, cfg, 0)

	s := h.eng.Snapshot()
	assert.Equal(t, 1, s.TargetDuration)

	h.eng.Start()
	h.sched.AdvanceSeconds(1)
	h.sched.Advance(engine.DefaultSettleDelay)

	s = h.eng.Snapshot()
	assert.Equal(t, domain.ModeLongBreak, s.Mode, "interval clamps to one, so every focus earns a long break")
	assert.Equal(t, 1, s.Remaining)
}

func TestResync_OnlyWhenNotRunning(t *testing.T) {
	cfg := &mutableConfig{cfg: domain.Configuration{Focus: 1500, ShortBreak: 300, LongBreak: 900, LongBreakInterval: 4}}
	h := newHarness(t, cfg, 0)

	cfg.set(func(c *domain.Configuration) { c.Focus = 1200 })
	h.eng.Resync()
	assert.Equal(t, 1200, h.eng.Snapshot().Remaining)

	h.eng.Start()
	h.sched.AdvanceSeconds(2)
	cfg.set(func(c *domain.Configuration) { c.Focus = 60 })
	h.eng.Resync()
	s := h.eng.Snapshot()
	assert.Equal(t, 1198, s.Remaining, "a running countdown keeps its target")
	assert.Equal(t, 1200, s.TargetDuration)

	h.eng.Pause()
	h.eng.Resync()
	s = h.eng.Snapshot()
	assert.Equal(t, 60, s.Remaining)
	assert.Equal(t, domain.RunReady, s.RunState)
}

func TestResync_LeavesCompletionToTheAutoSwitch(t *testing.T) {
	cfg := &mutableConfig{cfg: domain.Configuration{Focus: 3, ShortBreak: 2, LongBreak: 5, LongBreakInterval: 4}}
	h := newHarness(t, cfg, 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(3)
	require.Equal(t, domain.RunCompleted, h.eng.Snapshot().RunState)

	cfg.set(func(c *domain.Configuration) { c.Focus = 10; c.ShortBreak = 7 })
	h.eng.Resync()

	s := h.eng.Snapshot()
	assert.Equal(t, domain.RunCompleted, s.RunState)
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, 1, h.sched.PendingOneShots())

	h.sched.Advance(engine.DefaultSettleDelay)
	s = h.eng.Snapshot()
	assert.Equal(t, domain.ModeShortBreak, s.Mode)
	assert.Equal(t, 7, s.Remaining, "the switch reads the new configuration")
}

func TestCompletion_StateEventCarriesNewCount(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 2)

	h.eng.Start()
	h.events.Reset()
	h.sched.AdvanceSeconds(3)

	states := h.events.OfType(engine.EventStateChanged)
	require.NotEmpty(t, states)
	last := states[len(states)-1]
	assert.Equal(t, domain.RunCompleted, last.State.RunState)
	assert.Equal(t, 3, last.State.CompletedFocusSessions)

	completed := h.events.OfType(engine.EventCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, 3, completed[0].State.CompletedFocusSessions)
}

func TestEvents_SeqIncreases(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(3)
	h.sched.Advance(engine.DefaultSettleDelay)

	events := h.events.Events()
	require.NotEmpty(t, events)
	for i := 1; i < len(events); i++ {
		assert.Equal(t, events[i-1].Seq+1, events[i].Seq, "event %d", i)
	}
	_, seq := h.eng.Latest()
	assert.Equal(t, events[len(events)-1].Seq, seq)
}

func TestEvents_SeqOrdersConcurrentDelivery(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)
	h.eng.Start()

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		once      sync.Once
		mu        sync.Mutex
		delivered []engine.Event
	)
	h.eng.AddListener(engine.ListenerFunc(func(ev engine.Event) {
		if ev.State.RunState == domain.RunRunning && ev.State.Remaining == 1499 {
			once.Do(func() {
				close(entered)
				<-release
			})
		}
		mu.Lock()
		delivered = append(delivered, ev)
		mu.Unlock()
	}))

	// The tick's event is held in the listener while Pause runs.
	done := make(chan struct{})
	go func() {
		h.sched.Advance(time.Second)
		close(done)
	}()
	<-entered
	h.eng.Pause()
	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 2)
	assert.Equal(t, domain.RunPaused, delivered[0].State.RunState)
	assert.Equal(t, domain.RunRunning, delivered[1].State.RunState, "the tick arrives last")
	assert.Greater(t, delivered[0].Seq, delivered[1].Seq)

	state, seq := h.eng.Latest()
	assert.Equal(t, domain.RunPaused, state.RunState)
	assert.Equal(t, delivered[0].Seq, seq)
}

func TestListener_MayCallBackIntoEngine(t *testing.T) {
	h := newHarness(t, tinyConfig(4), 0)

	var seen atomic.Int32
	h.eng.AddListener(engine.ListenerFunc(func(ev engine.Event) {
		if ev.Type == engine.EventCompleted {
			_ = h.eng.Snapshot()
			seen.Add(1)
		}
	}))

	h.eng.Start()
	h.sched.AdvanceSeconds(3)
	assert.Equal(t, int32(1), seen.Load())
}

func TestStateEvents_CarrySnapshots(t *testing.T) {
	h := newHarness(t, testutil.PomodoroConfig(), 0)

	h.eng.Start()
	h.sched.AdvanceSeconds(2)

	states := h.events.OfType(engine.EventStateChanged)
	require.Len(t, states, 3)
	assert.Equal(t, 1500, states[0].State.Remaining)
	assert.Equal(t, 1499, states[1].State.Remaining)
	assert.Equal(t, 1498, states[2].State.Remaining)
}

func TestChannelListener_DropsWhenFull(t *testing.T) {
	l := engine.NewChannelListener(1)
	l.OnEvent(engine.Event{Type: engine.EventStateChanged})
	l.OnEvent(engine.Event{Type: engine.EventCompleted})

	ev := <-l.Events()
	assert.Equal(t, engine.EventStateChanged, ev.Type)
	select {
	case <-l.Events():
		t.Fatal("second event should have been dropped")
	default:
	}
}

func TestSystemScheduler(t *testing.T) {
	var sched engine.SystemScheduler

	var ticks atomic.Int32
	timer := sched.Every(5*time.Millisecond, func() { ticks.Add(1) })
	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	fired := make(chan struct{})
	sched.After(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("After callback never fired")
	}
}
