package domain

// Quote is a motivational message shown after a focus session.
type Quote struct {
	Text   string
	Author string
}
