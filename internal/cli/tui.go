package cli

import (
	"apptrack/internal/query"
	"apptrack/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	t, err := app.open(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	mode, err := query.ParseSortMode(app.cfg.View.Sort)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(t, tui.Options{Sort: mode, Debounce: app.cfg.Edit.Debounce})
}
