package domain

import "fmt"

// Settings are the user-facing timer preferences. Durations are whole
// minutes, matching what the user types in.
type Settings struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
}

// DefaultSettings returns the classic 25/5/15 cadence with a long break
// every fourth focus session.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
	}
}

const (
	// MaxMinutes caps a single countdown at one day.
	MaxMinutes = 24 * 60
	// MaxLongBreakInterval caps the focus sessions between long breaks.
	MaxLongBreakInterval = 100
)

// Validate rejects durations outside 1..MaxMinutes and intervals outside
// 1..MaxLongBreakInterval.
func (s Settings) Validate() error {
	for _, d := range []struct {
		name string
		v    int
	}{
		{"focus", s.FocusMinutes},
		{"short break", s.ShortBreakMinutes},
		{"long break", s.LongBreakMinutes},
	} {
		if d.v < 1 || d.v > MaxMinutes {
			return fmt.Errorf("%s: %w", d.name, ErrInvalidDuration)
		}
	}
	if s.LongBreakInterval < 1 || s.LongBreakInterval > MaxLongBreakInterval {
		return ErrInvalidInterval
	}
	return nil
}

// Minutes returns the configured minutes for a mode.
func (s Settings) Minutes(m Mode) int {
	switch m {
	case ModeShortBreak:
		return s.ShortBreakMinutes
	case ModeLongBreak:
		return s.LongBreakMinutes
	default:
		return s.FocusMinutes
	}
}

// Configuration converts the minute-based settings to the second-based
// configuration consumed by the timer engine.
func (s Settings) Configuration() Configuration {
	return Configuration{
		Focus:             s.FocusMinutes * 60,
		ShortBreak:        s.ShortBreakMinutes * 60,
		LongBreak:         s.LongBreakMinutes * 60,
		LongBreakInterval: s.LongBreakInterval,
	}
}
