package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/engine"
	"github.com/alexanderramin/pomo/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	// pollInterval is how often the model drains engine events that arrived
	// from the scheduler goroutine.
	pollInterval = 100 * time.Millisecond
	// quoteTTL is how long a motivational quote stays on screen.
	quoteTTL = 10 * time.Second

	clockBarWidth = 30
	eventBuffer   = 256
)

// pollMsg wakes the model to drain pending engine events.
type pollMsg time.Time

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

// timerModel is the bubbletea model behind `pomo run`. Engine events are
// buffered in a ChannelListener and drained on every update, so commands
// issued from a key press are reflected in the same frame.
type timerModel struct {
	engine   *engine.Engine
	events   <-chan engine.Event
	settings service.SettingsService
	now      func() time.Time

	keys timerKeyMap
	help help.Model

	state      domain.SessionState
	seq        uint64
	quote      domain.Quote
	quoteUntil time.Time
	notice     string
	err        error

	form       *huh.Form
	formValues *settingsFormValues

	width    int
	quitting bool
}

func newTimerModel(eng *engine.Engine, settings service.SettingsService, now func() time.Time) timerModel {
	if now == nil {
		now = time.Now
	}
	listener := engine.NewChannelListener(eventBuffer)
	eng.AddListener(listener)
	state, seq := eng.Latest()

	return timerModel{
		engine:   eng,
		events:   listener.Events(),
		settings: settings,
		now:      now,
		keys:     defaultTimerKeyMap(),
		help:     help.New(),
		state:    state,
		seq:      seq,
	}
}

func (m timerModel) Init() tea.Cmd {
	return pollCmd()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.drainEvents()

	switch msg := msg.(type) {
	case pollMsg:
		return m, pollCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	running := m.state.RunState == domain.RunRunning
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		m.engine.Pause()
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Toggle):
		if running {
			m.engine.Pause()
		} else {
			m.engine.Start()
		}
	case key.Matches(keyMsg, m.keys.Pause):
		m.engine.Pause()
	case key.Matches(keyMsg, m.keys.Reset):
		m.engine.Reset()
	case key.Matches(keyMsg, m.keys.Focus):
		m.switchIfIdle(domain.ModeFocus)
	case key.Matches(keyMsg, m.keys.Short):
		m.switchIfIdle(domain.ModeShortBreak)
	case key.Matches(keyMsg, m.keys.Long):
		m.switchIfIdle(domain.ModeLongBreak)
	case key.Matches(keyMsg, m.keys.Edit):
		if running {
			return m, nil
		}
		m.formValues = newSettingsFormValues(m.settings.Current())
		m.form = settingsForm(m.formValues)
		m.err = nil
		return m, m.form.Init()
	}

	m.drainEvents()
	return m, nil
}

// switchIfIdle changes mode unless a countdown is running; the mode keys
// are inert while the clock runs.
func (m *timerModel) switchIfIdle(mode domain.Mode) {
	if m.state.RunState == domain.RunRunning {
		return
	}
	m.engine.SwitchMode(mode)
}

func (m timerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form, m.formValues = nil, nil
		m.notice = formatter.Dim("Settings unchanged.")
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applySettings(m.formValues)
		m.form, m.formValues = nil, nil
		m.drainEvents()
		return m, nil
	case huh.StateAborted:
		m.form, m.formValues = nil, nil
		return m, nil
	}
	return m, cmd
}

// applySettings persists edited settings. A successful update resynchronizes
// an idle countdown through the settings change hook.
func (m *timerModel) applySettings(values *settingsFormValues) {
	next, err := values.settings()
	if err == nil {
		err = m.settings.Update(context.Background(), next)
	}
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.notice = formatter.StyleGreen.Render("✔ Settings saved")
}

func (m *timerModel) drainEvents() {
	for {
		select {
		case ev, ok := <-m.events:
			if !ok {
				return
			}
			m.apply(ev)
		default:
			return
		}
	}
}

func (m *timerModel) apply(ev engine.Event) {
	// A tick delivered from the scheduler goroutine can land after the
	// event of a later key press.
	if ev.Seq < m.seq {
		return
	}
	m.seq = ev.Seq
	m.state = ev.State
	switch ev.Type {
	case engine.EventCompleted:
		m.notice = formatter.ModeStyle(ev.PreviousMode).Render(fmt.Sprintf("%s complete!", ev.PreviousMode.Label()))
	case engine.EventMotivation:
		m.quote = ev.Quote
		m.quoteUntil = m.now().Add(quoteTTL)
	case engine.EventStateChanged:
		if ev.State.RunState == domain.RunRunning {
			m.notice = ""
		}
	}
}

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return formatter.RenderBox("Settings", m.form.View()+"\n"+formatter.Dim("enter next · esc cancel"))
	}

	s := m.state
	var b strings.Builder
	b.WriteString(formatter.ModeTabs(s.Mode) + "\n\n")

	label := formatter.StateStyle(s).Bold(true).Render(formatter.StateLabel(s))
	clock := formatter.ModeStyle(s.Mode).Bold(true).Render(formatter.FormatClock(s.Remaining))
	b.WriteString(lipgloss.JoinVertical(lipgloss.Center, label, clock) + "\n")
	b.WriteString(formatter.RenderCompactBar(s.Elapsed(), clockBarWidth, s.RunState != domain.RunRunning) + "\n\n")

	b.WriteString(fmt.Sprintf("%s %d\n", formatter.Dim("Sessions:"), s.CompletedFocusSessions))
	b.WriteString(formatter.LongBreakChart(s.CompletedFocusSessions, m.settings.LongBreakInterval()) + "\n")

	if m.quote.Text != "" && m.now().Before(m.quoteUntil) {
		b.WriteString("\n" + formatter.FormatQuote(m.quote) + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + m.notice + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	box := formatter.RenderBox("Pomodoro", b.String())
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
	}
	return box
}
