package engine

import (
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
)

// EventType identifies the kind of engine notification.
type EventType string

const (
	EventStateChanged        EventType = "state_changed"
	EventCompleted           EventType = "completed"
	EventSessionCountChanged EventType = "session_count_changed"
	EventMotivation          EventType = "motivation"
)

// Event is delivered to listeners after the engine state has changed.
// Only the fields relevant to Type are populated; State is always a
// snapshot taken when the event was produced.
//
// Seq increases by one for every event, in the order the state changes
// happened. Events produced on different goroutines (a scheduler tick and
// a key press) may reach a listener out of that order; a listener that
// keeps the latest State should drop events with a lower Seq than the
// last one it applied.
type Event struct {
	Seq                    uint64
	Type                   EventType
	State                  domain.SessionState
	PreviousMode           domain.Mode
	CompletedFocusSessions int
	Quote                  domain.Quote
	At                     time.Time
}

// Listener receives engine events. Listeners are called without the engine
// lock held and may issue commands back to the engine.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(ev Event) { f(ev) }

// ChannelListener forwards events to a buffered channel. Sends never block:
// when the buffer is full the event is dropped, since every state event
// carries a full snapshot and the next one supersedes it.
type ChannelListener struct {
	ch chan Event
}

// NewChannelListener creates a ChannelListener with the given buffer size.
func NewChannelListener(buffer int) *ChannelListener {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelListener{ch: make(chan Event, buffer)}
}

func (l *ChannelListener) OnEvent(ev Event) {
	select {
	case l.ch <- ev:
	default:
	}
}

// Events returns the receive side of the listener channel.
func (l *ChannelListener) Events() <-chan Event {
	return l.ch
}
