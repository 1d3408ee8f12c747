package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pomo/internal/domain"
)

const statusProgressBarWidth = 20

// FormatSettings renders the timer settings as a table.
func FormatSettings(s domain.Settings) string {
	rows := [][]string{
		{ModeBadge(domain.ModeFocus), FormatMinutes(s.FocusMinutes)},
		{ModeBadge(domain.ModeShortBreak), FormatMinutes(s.ShortBreakMinutes)},
		{ModeBadge(domain.ModeLongBreak), FormatMinutes(s.LongBreakMinutes)},
		{Dim("Long break every"), fmt.Sprintf("%d sessions", s.LongBreakInterval)},
	}
	return RenderTable([]string{"SETTING", "VALUE"}, rows)
}

// FormatStatus renders the `pomo status` dashboard.
func FormatStatus(s domain.Settings, completed int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n\n", Bold("Completed sessions:"), StyleGreen.Render(fmt.Sprintf("%d", completed))))
	b.WriteString(LongBreakChart(completed, s.LongBreakInterval) + "\n")

	interval := domain.AtLeastOne(s.LongBreakInterval)
	cyclePct := float64(completed%interval) / float64(interval)
	b.WriteString(RenderProgress(cyclePct, statusProgressBarWidth) + "\n\n")

	next := domain.ModeShortBreak
	if domain.LongBreakDue(completed+1, interval) {
		next = domain.ModeLongBreak
	}
	b.WriteString(Dim("After the next focus: ") + ModeBadge(next) + "\n\n")

	b.WriteString(FormatSettings(s))
	return RenderBox("Pomodoro", b.String())
}

// FormatTimerLine is the single-line rendering used when no terminal UI is
// available, e.g. "[FOCUS] 24:59  Focus  ●○○○  1/4 until long break".
func FormatTimerLine(s domain.SessionState, interval int) string {
	return fmt.Sprintf("[%s] %s  %s  %s",
		StateLabel(s),
		FormatClock(s.Remaining),
		s.Mode.Label(),
		LongBreakChart(s.CompletedFocusSessions, interval))
}

// FormatQuote renders a motivational quote with attribution.
func FormatQuote(q domain.Quote) string {
	if q.Text == "" {
		return ""
	}
	return StyleFg.Italic(true).Render(fmt.Sprintf("“%s”", q.Text)) + "\n" + Dim("  - "+q.Author)
}
