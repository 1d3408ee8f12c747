package notify

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_KeepsFileDescriptor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer f.Close()

	term := NewTerminal(f)
	var _ interface {
		io.ReadWriteCloser
		Fd() uintptr
	} = term
	assert.Equal(t, f.Fd(), term.Fd())
}

func TestTerminal_BellLandsBetweenFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tty")
	f, err := os.Create(path)
	require.NoError(t, err)
	term := NewTerminal(f)
	bell := NewBell(term)

	frame := "\x1b[2K" + strings.Repeat("00:42 FOCUS ", 200) + "\r\n"
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, _ = io.WriteString(term, frame)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			assert.NoError(t, bell.Alert(context.Background(), domain.ModeFocus))
		}
	}()
	wg.Wait()
	require.NoError(t, f.Close())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	rest := bytes.ReplaceAll(out, []byte("\a\a"), nil)
	assert.Equal(t, strings.Repeat(frame, 50), string(rest), "no ring splits a frame")
	assert.Equal(t, 100, bytes.Count(out, []byte("\a")))
}
