package cli

import (
	"fmt"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Show or reset the completed focus session count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			completed, err := app.Sessions.Count(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", formatter.Bold("Completed sessions:"), completed)
			fmt.Fprintln(out, formatter.LongBreakChart(completed, app.Settings.Current().LongBreakInterval))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the completed focus session count to zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.ResetCount(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Completed sessions reset to 0\n", formatter.StyleGreen.Render("✔"))
			return nil
		},
	})

	return cmd
}
