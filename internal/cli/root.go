package cli

import (
	"github.com/alexanderramin/pomo/internal/config"
	"github.com/alexanderramin/pomo/internal/engine"
	"github.com/alexanderramin/pomo/internal/notify"
	"github.com/alexanderramin/pomo/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and the timer engine used by CLI commands.
type App struct {
	Settings service.SettingsService
	Sessions service.SessionCounter
	Engine   *engine.Engine
	Config   config.Config
	Logger   *zap.Logger

	// Terminal, when set, is the output of the full-screen timer. Alerts
	// that write to the terminal must go through the same writer.
	Terminal *notify.Terminal

	// IsInteractive reports whether stdin is a terminal. Commands that need
	// a full-screen UI fall back to plain output when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "pomo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pomo",
		Short:         "Pomodoro timer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare `pomo` in a terminal opens the timer.
			if app.interactive() {
				return runTimer(cmd, app, runOptions{})
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newRunCmd(app),
		newStatusCmd(app),
		newConfigCmd(app),
		newSessionsCmd(app),
	)

	return root
}
