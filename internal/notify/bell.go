package notify

import (
	"context"
	"io"
	"sync"

	"github.com/alexanderramin/pomo/internal/domain"
)

// Bell rings the terminal bell.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell writes BEL characters to w, normally the controlling terminal.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Name() string { return "bell" }

func (b *Bell) Alert(_ context.Context, _ domain.Mode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	// Two short rings, the closest a terminal gets to the original beep pattern.
	_, err := io.WriteString(b.w, "\a\a")
	return wrapf(err, "ringing bell")
}
