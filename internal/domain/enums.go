package domain

import "fmt"

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Modes lists every timer mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// ParseMode accepts the canonical mode names plus a few short aliases.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "focus", "pomodoro", "work":
		return ModeFocus, nil
	case "short_break", "short", "short-break":
		return ModeShortBreak, nil
	case "long_break", "long", "long-break":
		return ModeLongBreak, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// IsBreak reports whether the mode is one of the rest intervals.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

type RunState string

const (
	RunReady     RunState = "ready"
	RunRunning   RunState = "running"
	RunPaused    RunState = "paused"
	RunCompleted RunState = "completed"
)
