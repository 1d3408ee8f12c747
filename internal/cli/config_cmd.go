package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/config"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change timer settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigEditCmd(app),
		newConfigInitCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current timer settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(app.Settings.Current()))
			return nil
		},
	}
}

// intFlag returns the value of an int flag only when the user set it.
func intFlag(flags *pflag.FlagSet, name string) (int, bool, error) {
	if !flags.Changed(name) {
		return 0, false, nil
	}
	v, err := flags.GetInt(name)
	return v, true, err
}

func newConfigSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more timer settings",
		Example: `  pomo config set --focus 50 --short 10
  pomo config set --interval 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			next := app.Settings.Current()
			targets := []struct {
				flag string
				dst  *int
			}{
				{"focus", &next.FocusMinutes},
				{"short", &next.ShortBreakMinutes},
				{"long", &next.LongBreakMinutes},
				{"interval", &next.LongBreakInterval},
			}

			changed := 0
			for _, t := range targets {
				v, ok, err := intFlag(cmd.Flags(), t.flag)
				if err != nil {
					return err
				}
				if ok {
					*t.dst = v
					changed++
				}
			}
			if changed == 0 {
				return fmt.Errorf("nothing to change: pass at least one of --focus, --short, --long, --interval")
			}

			if err := app.Settings.Update(cmd.Context(), next); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Settings saved\n\n", formatter.StyleGreen.Render("✔"))
			fmt.Fprint(out, formatter.FormatSettings(next))
			return nil
		},
	}

	cmd.Flags().Int("focus", 0, "Focus duration in minutes")
	cmd.Flags().Int("short", 0, "Short break duration in minutes")
	cmd.Flags().Int("long", 0, "Long break duration in minutes")
	cmd.Flags().Int("interval", 0, "Focus sessions between long breaks")

	return cmd
}

func newConfigEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit timer settings in an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("config edit needs an interactive terminal; use `pomo config set` instead")
			}
			values := newSettingsFormValues(app.Settings.Current())
			if err := settingsForm(values).RunWithContext(cmd.Context()); err != nil {
				return err
			}
			next, err := values.settings()
			if err != nil {
				return err
			}
			if err := app.Settings.Update(cmd.Context(), next); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(next))
			return nil
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file seeded with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if cfg.ConfigPath == "" {
				return fmt.Errorf("no config path resolved")
			}
			if _, err := os.Stat(cfg.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.ConfigPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}

			cfg.Timer = app.Settings.Current()
			if err := cfg.Timer.Validate(); err != nil {
				cfg.Timer = domain.DefaultSettings()
			}
			if err := config.Write(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", formatter.StyleGreen.Render("✔"), cfg.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
