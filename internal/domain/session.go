package domain

// SessionState is a snapshot of the timer. Remaining and TargetDuration are
// in seconds.
type SessionState struct {
	Mode                   Mode
	RunState               RunState
	Remaining              int
	TargetDuration         int
	CompletedFocusSessions int
}

// Elapsed returns the fraction of the current countdown already spent,
// in [0, 1].
func (s SessionState) Elapsed() float64 {
	if s.TargetDuration <= 0 {
		return 0
	}
	pct := float64(s.TargetDuration-s.Remaining) / float64(s.TargetDuration)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// SessionsUntilLongBreak returns how many more focus sessions must be
// completed before the next long break.
func (s SessionState) SessionsUntilLongBreak(interval int) int {
	interval = AtLeastOne(interval)
	return interval - s.CompletedFocusSessions%interval
}
