package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatClock renders a second count as zero-padded MM:SS. Minutes are not
// wrapped into hours, so a 90 minute focus reads 90:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// StateLabel is the one-word caption shown above the clock.
func StateLabel(s domain.SessionState) string {
	switch s.RunState {
	case domain.RunRunning:
		if s.Mode.IsBreak() {
			return "BREAK"
		}
		return "FOCUS"
	case domain.RunPaused:
		return "PAUSED"
	case domain.RunCompleted:
		return "DONE"
	}
	switch s.Mode {
	case domain.ModeShortBreak:
		return "BREAK TIME"
	case domain.ModeLongBreak:
		return "LONG BREAK"
	default:
		return "READY"
	}
}

// ModeBadge returns a colored mode indicator such as "● Focus".
func ModeBadge(mode domain.Mode) string {
	return ModeStyle(mode).Render("● " + mode.Label())
}

// ModeTabs renders the three modes side by side with the active one
// highlighted, mirroring the mode switcher keys 1, 2 and 3.
func ModeTabs(active domain.Mode) string {
	parts := make([]string, 0, len(domain.Modes))
	for i, m := range domain.Modes {
		label := fmt.Sprintf("%d %s", i+1, m.Label())
		if m == active {
			parts = append(parts, ModeStyle(m).Bold(true).Render("["+label+"]"))
			continue
		}
		parts = append(parts, Dim(" "+label+" "))
	}
	return strings.Join(parts, " ")
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
