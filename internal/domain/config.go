package domain

// Configuration holds the durations the timer runs with, in seconds.
type Configuration struct {
	Focus             int
	ShortBreak        int
	LongBreak         int
	LongBreakInterval int
}

// Duration returns the configured length of the given mode in seconds.
// Unknown modes fall back to the focus duration.
func (c Configuration) Duration(m Mode) int {
	switch m {
	case ModeShortBreak:
		return c.ShortBreak
	case ModeLongBreak:
		return c.LongBreak
	default:
		return c.Focus
	}
}

// AtLeastOne clamps v to a minimum of 1. The engine applies it to every
// configuration value it reads so a bad value can never reach the modulo.
func AtLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// LongBreakDue reports whether the given completed focus count earns a long
// break: it must be a positive multiple of interval.
func LongBreakDue(completed, interval int) bool {
	interval = AtLeastOne(interval)
	return completed > 0 && completed%interval == 0
}
