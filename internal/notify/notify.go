// Package notify raises completion alerts outside the timer engine.
//
// A Dispatcher implements engine.Notifier: it fans a completion out to
// every configured Alert on background goroutines and logs, never returns,
// their failures.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"go.uber.org/zap"
)

// Title is the heading used for desktop notifications.
const Title = "Pomodoro Timer"

// DefaultAlertTimeout bounds a single alert.
const DefaultAlertTimeout = 5 * time.Second

// Alert is one way of telling the user a countdown finished.
type Alert interface {
	Name() string
	Alert(ctx context.Context, completed domain.Mode) error
}

// Message returns the notification body for a finished countdown.
func Message(completed domain.Mode) string {
	if completed == domain.ModeFocus {
		return "Time for a break!"
	}
	return "Break is over, time to focus!"
}

// Dispatcher runs alerts without blocking the caller.
type Dispatcher struct {
	alerts  []Alert
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over alerts.
func NewDispatcher(logger *zap.Logger, alerts ...Alert) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{alerts: alerts, logger: logger, timeout: DefaultAlertTimeout}
}

// OnCompleted implements engine.Notifier.
func (d *Dispatcher) OnCompleted(mode domain.Mode) {
	for _, a := range d.alerts {
		d.wg.Add(1)
		go d.run(a, mode)
	}
}

func (d *Dispatcher) run(a Alert, mode domain.Mode) {
	defer d.wg.Done()
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("alert panicked", zap.String("alert", a.Name()), zap.Any("panic", p))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := a.Alert(ctx, mode); err != nil {
		d.logger.Warn("alert failed", zap.String("alert", a.Name()), zap.String("mode", string(mode)), zap.Error(err))
		return
	}
	d.logger.Debug("alert delivered", zap.String("alert", a.Name()))
}

// Wait blocks until every alert started so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Names lists the configured alerts.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.alerts))
	for _, a := range d.alerts {
		names = append(names, a.Name())
	}
	return names
}

func wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
