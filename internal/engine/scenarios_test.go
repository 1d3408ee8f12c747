package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/engine"
	"github.com/alexanderramin/pomo/internal/testutil"
)

var _ = Describe("Pomodoro cycle", func() {
	var (
		sched    *testutil.FakeScheduler
		store    *testutil.MemoryStore
		notifier *testutil.RecordingNotifier
		events   *testutil.EventRecorder
		eng      *engine.Engine
	)

	build := func(completed int) {
		sched = testutil.NewFakeScheduler()
		store = testutil.NewMemoryStore(completed)
		notifier = &testutil.RecordingNotifier{}
		events = &testutil.EventRecorder{}
		eng = engine.New(testutil.PomodoroConfig(), store, sched, engine.WithNotifier(notifier))
		eng.AddListener(events)
	}

	finishCountdown := func() {
		eng.Start()
		sched.AdvanceSeconds(eng.Snapshot().Remaining)
		sched.Advance(engine.DefaultSettleDelay)
	}

	Context("with a fresh session count", func() {
		BeforeEach(func() { build(0) })

		It("follows the first focus session with a short break", func() {
			finishCountdown()

			s := eng.Snapshot()
			Expect(s.CompletedFocusSessions).To(Equal(1))
			Expect(s.Mode).To(Equal(domain.ModeShortBreak))
			Expect(s.Remaining).To(Equal(300))
			Expect(store.Saves()).To(Equal([]int{1}))
		})

		It("returns to focus after the break without counting it", func() {
			finishCountdown()
			finishCountdown()

			s := eng.Snapshot()
			Expect(s.Mode).To(Equal(domain.ModeFocus))
			Expect(s.Remaining).To(Equal(1500))
			Expect(s.CompletedFocusSessions).To(Equal(1))
			Expect(notifier.Modes()).To(Equal([]domain.Mode{domain.ModeFocus, domain.ModeShortBreak}))
		})

		It("earns a long break after four focus sessions", func() {
			for i := 0; i < 4; i++ {
				Expect(eng.Snapshot().Mode).To(Equal(domain.ModeFocus))
				finishCountdown()
				if i < 3 {
					Expect(eng.Snapshot().Mode).To(Equal(domain.ModeShortBreak))
					finishCountdown()
				}
			}

			s := eng.Snapshot()
			Expect(s.Mode).To(Equal(domain.ModeLongBreak))
			Expect(s.Remaining).To(Equal(900))
			Expect(s.CompletedFocusSessions).To(Equal(4))
		})
	})

	Context("when the third session is already on record", func() {
		BeforeEach(func() { build(3) })

		It("goes to a long break as the count moves from three to four", func() {
			finishCountdown()

			s := eng.Snapshot()
			Expect(s.CompletedFocusSessions).To(Equal(4))
			Expect(s.Mode).To(Equal(domain.ModeLongBreak))
			Expect(s.Remaining).To(Equal(900))
			Expect(events.OfType(engine.EventSessionCountChanged)).To(HaveLen(1))
		})
	})

	Context("when the user intervenes", func() {
		BeforeEach(func() { build(0) })

		It("loses nothing across a pause", func() {
			eng.Start()
			sched.AdvanceSeconds(10)
			eng.Pause()
			eng.Start()
			sched.AdvanceSeconds(5)

			Expect(eng.Snapshot().Remaining).To(Equal(1500 - 15))
		})

		It("ignores ticks from a schedule cancelled by reset", func() {
			eng.Start()
			sched.AdvanceSeconds(2)
			eng.Reset()
			before := len(events.Events())

			sched.FireStale()

			Expect(eng.Snapshot().Remaining).To(Equal(1500))
			Expect(eng.Snapshot().RunState).To(Equal(domain.RunReady))
			Expect(events.Events()).To(HaveLen(before))
			Expect(sched.ActivePeriodic()).To(BeZero())
		})
	})
})
