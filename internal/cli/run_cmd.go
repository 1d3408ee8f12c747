package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/engine"
	"github.com/alexanderramin/pomo/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// modeValue is a pflag.Value accepting any spelling domain.ParseMode knows.
type modeValue struct {
	mode *domain.Mode
}

var _ pflag.Value = modeValue{}

func (v modeValue) String() string {
	if v.mode == nil {
		return ""
	}
	return string(*v.mode)
}

func (v modeValue) Set(s string) error {
	m, err := domain.ParseMode(s)
	if err != nil {
		return err
	}
	*v.mode = m
	return nil
}

func (v modeValue) Type() string { return "mode" }

type runOptions struct {
	mode  domain.Mode
	start bool
	count int
}

func newRunCmd(app *App) *cobra.Command {
	opts := runOptions{mode: domain.ModeFocus}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer",
		Long: `Run the timer in a full-screen terminal UI.

Without a terminal the timer runs in line mode: it starts immediately,
prints one status line per change and keeps cycling through focus and
break periods until interrupted or --count countdowns have finished.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, app, opts)
		},
	}

	cmd.Flags().Var(modeValue{&opts.mode}, "mode", "Mode to begin in (focus, short_break, long_break)")
	cmd.Flags().BoolVar(&opts.start, "start", false, "Start the countdown immediately")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Line mode: exit after this many countdowns (0 runs until interrupted)")

	return cmd
}

func runTimer(cmd *cobra.Command, app *App, opts runOptions) error {
	if app.Engine == nil {
		return fmt.Errorf("timer engine not configured")
	}
	if opts.count < 0 {
		return fmt.Errorf("--count must not be negative")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	resyncOnChange(app.Settings, app.Engine)

	if opts.mode != "" && opts.mode != app.Engine.Snapshot().Mode {
		app.Engine.SwitchMode(opts.mode)
	}

	if !app.interactive() {
		return runLineMode(ctx, cmd.OutOrStdout(), app.Engine, app.Settings, opts.count, app.logger())
	}

	m := newTimerModel(app.Engine, app.Settings, nil)
	if opts.start {
		app.Engine.Start()
	}
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if app.Terminal != nil {
		progOpts = append(progOpts, tea.WithOutput(app.Terminal))
	}
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running timer: %w", err)
	}
	app.Engine.Pause()
	return nil
}

// runLineMode prints a status line for every engine event and restarts the
// countdown after each automatic mode switch. It returns when ctx is done or
// after count completions when count is positive.
func runLineMode(ctx context.Context, w io.Writer, eng *engine.Engine, settings service.SettingsService, count int, logger *zap.Logger) error {
	listener := engine.NewChannelListener(eventBuffer)
	eng.AddListener(listener)
	defer eng.Pause()

	state, seq := eng.Latest()
	fmt.Fprintln(w, formatter.FormatTimerLine(state, settings.LongBreakInterval()))
	eng.Start()

	completed := 0
	awaitingSwitch := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-listener.Events():
			if ev.Seq < seq {
				continue
			}
			seq = ev.Seq
			switch ev.Type {
			case engine.EventStateChanged:
				fmt.Fprintln(w, formatter.FormatTimerLine(ev.State, settings.LongBreakInterval()))
				if awaitingSwitch && ev.State.RunState == domain.RunReady {
					awaitingSwitch = false
					eng.Start()
				}
			case engine.EventCompleted:
				completed++
				fmt.Fprintf(w, "%s complete\n", ev.PreviousMode.Label())
				logger.Info("line mode countdown completed", zap.String("mode", string(ev.PreviousMode)), zap.Int("count", completed))
				if count > 0 && completed >= count {
					return nil
				}
				awaitingSwitch = true
			case engine.EventMotivation:
				fmt.Fprintf(w, "%q - %s\n", ev.Quote.Text, ev.Quote.Author)
			}
		}
	}
}
