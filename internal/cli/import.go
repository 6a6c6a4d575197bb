package cli

import (
	"errors"
	"fmt"
	"os"

	"apptrack/internal/format"
	"apptrack/internal/store"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a JSON snapshot (the current data is backed up first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, err := store.ParseImport(b)
			if err != nil {
				if app.log != nil {
					app.log.WithError(err).Warnw("import rejected", "file", args[0])
				}
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errors.New("import replaces all applications, essays and tags; pass --yes to confirm"))
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			backup, err := app.store.Backup(cmd.Context(), t.Snapshot())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("backup before import: %w", err))
			}
			if err := t.ReplaceAll(cmd.Context(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{
					"applications": len(snap.Applications),
					"essays":       len(snap.Essays),
					"tags":         len(snap.Tags),
				},
				Meta: map[string]any{"backup": backup},
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm replacing all data")
	return cmd
}
