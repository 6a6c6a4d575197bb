package cli

import (
	"strings"

	"apptrack/internal/format"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"checklist"},
		Short:   "Checklist task commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <application-id> <text...>",
		Short: "Append a checklist task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			item, changed, err := t.AddChecklistTask(args[0], strings.Join(args[1:], " "))
			if err := requireChanged(changed, err, "application", args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: item})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <application-id> <task-id>",
		Short: "Toggle a checklist task's completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := t.ToggleChecklistTask(args[0], args[1])
			if err := requireChanged(changed, err, "task", args[1]); err != nil {
				return writeErr(cmd, err)
			}
			a, _ := t.Application(args[0])
			return writeOut(cmd, app, format.Envelope{Data: newApplicationView(t, a, false)})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <application-id> <task-id>",
		Short: "Delete a checklist task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := t.DeleteChecklistTask(args[0], args[1])
			if err := requireChanged(changed, err, "task", args[1]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"id": args[1], "deleted": true}})
		},
	})

	return cmd
}
