package notify

import (
	"os"
	"sync"
)

// Terminal is the process's terminal with serialized writes. The timer UI
// and the bell share one Terminal, so a ring from a dispatcher goroutine
// lands between two UI writes and never inside an escape sequence.
//
// It embeds the *os.File so the UI still detects a TTY through Fd.
type Terminal struct {
	*os.File
	mu sync.Mutex
}

// NewTerminal wraps f, normally os.Stdout.
func NewTerminal(f *os.File) *Terminal {
	return &Terminal{File: f}
}

func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.File.Write(p)
}

// WriteString shadows (*os.File).WriteString, which io.WriteString would
// otherwise call without the lock.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}
