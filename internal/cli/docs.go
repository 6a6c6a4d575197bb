package cli

import (
	"fmt"

	"apptrack/internal/docs"
	"apptrack/internal/export"
	"apptrack/internal/format"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var render bool
	var style string

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show a guide (filters, sorting, storage)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, format.Envelope{Data: docs.Topics()})
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic: %s (see `apptrack docs`)", args[0]))
			}
			if render {
				body = export.RenderTerminal(body, terminalWidth(), export.Style(style))
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render for the terminal")
	cmd.Flags().StringVar(&style, "style", "", "Render style (dark|light|notty; default: detect)")
	return cmd
}
