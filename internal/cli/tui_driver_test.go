package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/teatest"
	"github.com/alexanderramin/pomo/internal/testutil"
)

// TestDriver wraps teatest.Driver with timer-specific helpers. It owns the
// fake scheduler so tests can move time and then let the model drain the
// resulting engine events.
type TestDriver struct {
	*teatest.Driver
	Sched *testutil.FakeScheduler
	Clock *fakeClock
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time      { return c.now }
func (c *fakeClock) Add(d time.Duration) { c.now = c.now.Add(d) }
func newFakeClock() *fakeClock           { return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)} }

// NewTestDriver builds the timer model for app, sets a terminal size and
// drains Init.
func NewTestDriver(t *testing.T, app *App, sched *testutil.FakeScheduler) *TestDriver {
	t.Helper()

	clock := newFakeClock()
	resyncOnChange(app.Settings, app.Engine)
	m := newTimerModel(app.Engine, app.Settings, clock.Now)
	d := teatest.New(t, m, teatest.WithSize(100, 40))
	d.DrainInit()

	return &TestDriver{Driver: d, Sched: sched, Clock: clock}
}

func (d *TestDriver) timer() timerModel {
	return d.Model.(timerModel)
}

// State returns the session state as last seen by the model.
func (d *TestDriver) State() domain.SessionState {
	return d.timer().state
}

// Poll delivers a poll message so the model drains pending events.
func (d *TestDriver) Poll() {
	d.T.Helper()
	d.Send(pollMsg(d.Clock.Now()))
}

// AdvanceSeconds moves both the scheduler and the wall clock, then polls.
func (d *TestDriver) AdvanceSeconds(n int) {
	d.T.Helper()
	d.Sched.AdvanceSeconds(n)
	d.Clock.Add(time.Duration(n) * time.Second)
	d.Poll()
}

// FormOpen reports whether the settings form is showing.
func (d *TestDriver) FormOpen() bool {
	return d.timer().form != nil
}
