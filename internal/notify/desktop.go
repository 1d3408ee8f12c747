package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alexanderramin/pomo/internal/domain"
)

// ErrUnsupported is returned when no desktop notification command exists
// for the current platform.
var ErrUnsupported = errors.New("desktop notifications unsupported on this platform")

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Desktop posts a system notification through the platform's command line
// tool (notify-send on Linux, osascript on macOS).
type Desktop struct {
	goos string
	run  Runner
}

// NewDesktop creates a Desktop alert for the running platform.
func NewDesktop() *Desktop {
	return &Desktop{goos: runtime.GOOS, run: execRunner}
}

// NewDesktopWith creates a Desktop alert with an explicit platform and runner.
func NewDesktopWith(goos string, run Runner) *Desktop {
	return &Desktop{goos: goos, run: run}
}

func (d *Desktop) Name() string { return "desktop" }

func (d *Desktop) Alert(ctx context.Context, completed domain.Mode) error {
	name, args, err := d.command(Message(completed))
	if err != nil {
		return err
	}
	return wrapf(d.run(ctx, name, args...), "posting desktop notification")
}

func (d *Desktop) command(body string) (string, []string, error) {
	switch d.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", []string{"--app-name=pomo", Title, body}, nil
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", appleScriptString(body), appleScriptString(Title))
		return "osascript", []string{"-e", script}, nil
	default:
		return "", nil, fmt.Errorf("%s: %w", d.goos, ErrUnsupported)
	}
}

func appleScriptString(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}
