package cli

import (
	"fmt"
	"strings"

	"apptrack/internal/format"
	"apptrack/internal/model"
	"apptrack/internal/query"

	"github.com/spf13/cobra"
)

func newCompareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [application-id...]",
		Short: "Compare accepted schools side by side (net cost, aid, pros and cons)",
		Args:  cobra.MaximumNArgs(query.MaxCompared),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := t.Comparison(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := format.Envelope{Data: c, Meta: map[string]any{"max": query.MaxCompared}}
			if len(c.Schools) == 0 {
				if len(c.Available) == 0 {
					out.Hints = []string{"apptrack apps update <id> --outcome accepted"}
				} else {
					ids := make([]string, 0, len(c.Available))
					for _, a := range c.Available {
						ids = append(ids, a.ID)
					}
					out.Hints = []string{"apptrack compare " + strings.Join(ids, " ")}
				}
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.AddCommand(newCompareNoteCmd(app, "pro"))
	cmd.AddCommand(newCompareNoteCmd(app, "con"))

	return cmd
}

// newCompareNoteCmd appends to or removes from an application's pros or cons.
func newCompareNoteCmd(app *App, kind string) *cobra.Command {
	var remove int

	cmd := &cobra.Command{
		Use:   kind + " <application-id> [text...]",
		Short: fmt.Sprintf("Add a %s to a school, or remove one with --remove", kind),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := t.Application(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("application", args[0]))
			}
			list := &a.Pros
			if kind == "con" {
				list = &a.Cons
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			switch {
			case cmd.Flags().Changed("remove"):
				if remove < 1 || remove > len(*list) {
					return writeErr(cmd, fmt.Errorf("no %s at position %d", kind, remove))
				}
				*list = append((*list)[:remove-1:remove-1], (*list)[remove:]...)
			case text != "":
				*list = append(*list, text)
			default:
				return writeErr(cmd, errNothingToDo)
			}
			changed, err := t.UpdateApplication(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			got, _ := t.Application(a.ID)
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"id": got.ID, "pros": got.Pros, "cons": got.Cons},
				Meta: map[string]any{"changed": changed},
			})
		},
	}
	cmd.Flags().IntVar(&remove, "remove", 0, "Remove the entry at this 1-based position")
	return cmd
}

func newBoardCmd(app *App) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Applications in one column per outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ff.applicationSort(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: t.Board(ff.filter(), mode),
				Meta: map[string]any{"sort": mode},
			})
		},
	}
	ff.register(cmd, "Sort mode within each column (deadline-asc|schoolName-asc|schoolName-desc|doneness-asc|doneness-desc)")

	cmd.AddCommand(newBoardMoveCmd(app))

	return cmd
}

func newBoardMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <application-id> <outcome>",
		Short: "Move an application to another column (sets its outcome)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := model.ParseOutcome(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := t.Application(args[0]); !ok {
				return writeErr(cmd, errNotFound("application", args[0]))
			}
			changed, err := t.SetOutcome(args[0], o)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, _ := t.Application(args[0])
			return writeOut(cmd, app, format.Envelope{
				Data: newApplicationView(t, a, false),
				Meta: map[string]any{"changed": changed},
			})
		},
	}
}
