package cli

import (
	"errors"
	"io"
	"strconv"

	"apptrack/internal/format"
	"apptrack/internal/model"
	"apptrack/internal/tracker"

	"github.com/spf13/cobra"
)

func newEssaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "essays",
		Short: "Essay commands",
	}

	cmd.AddCommand(newEssaysListCmd(app))
	cmd.AddCommand(newEssaysShowCmd(app))
	cmd.AddCommand(newEssaysAddCmd(app))
	cmd.AddCommand(newEssaysUpdateCmd(app))
	cmd.AddCommand(newEssaysToggleCmd(app))
	cmd.AddCommand(newEssaysTagCmd(app))
	cmd.AddCommand(newEssaysCommitCmd(app))
	cmd.AddCommand(newEssaysHistoryCmd(app))
	cmd.AddCommand(newEssaysRestoreCmd(app))
	cmd.AddCommand(newEssaysMoveCmd(app))
	cmd.AddCommand(newEssaysDeleteCmd(app))

	return cmd
}

func newEssaysListCmd(app *App) *cobra.Command {
	var ff filterFlags
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List essays across all applications (essay-centric view)",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ff.essaySort(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if refresh {
				t.RefreshSort()
			}
			essays := t.ListEssays(ff.filter(), mode)
			out := make([]essayView, 0, len(essays))
			for _, e := range essays {
				out = append(out, newEssayView(t, e, schoolName(t, e.ApplicationID)))
			}
			return writeOut(cmd, app, format.Envelope{
				Data: out,
				Meta: map[string]any{
					"sort":     mode,
					"progress": t.EssayProgressSummary(essays),
				},
			})
		},
	}
	ff.register(cmd, "Sort mode (deadline-asc|words-asc|words-desc)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Recompute the order even if nothing sort-relevant changed")
	return cmd
}

func schoolName(t *tracker.Tracker, applicationID string) string {
	a, _ := t.Application(applicationID)
	return a.SchoolName
}

func newEssaysShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <essay-id>",
		Short: "Show an essay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			e, ok := t.Essay(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("essay", args[0]))
			}
			return writeOut(cmd, app, format.Envelope{Data: newEssayView(t, e, schoolName(t, e.ApplicationID))})
		},
	}
}

// readText returns the flag value, or stdin when the value is "-".
func readText(cmd *cobra.Command, v string) (string, error) {
	if v != "-" {
		return v, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newEssaysAddCmd(app *App) *cobra.Command {
	var prompt, text string
	var tagIDs []string

	cmd := &cobra.Command{
		Use:   "add <application-id>",
		Short: "Append an essay to an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readText(cmd, text)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := t.AddEssay(tracker.NewEssay{
				ApplicationID: args[0],
				Prompt:        prompt,
				Text:          body,
				TagIDs:        tagIDs,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: newEssayView(t, e, schoolName(t, e.ApplicationID))})
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "Essay prompt")
	cmd.Flags().StringVar(&text, "text", "", "Essay text ('-' reads stdin)")
	cmd.Flags().StringSliceVar(&tagIDs, "tag", nil, "Essay tag id (repeatable)")
	return cmd
}

func newEssaysUpdateCmd(app *App) *cobra.Command {
	var prompt, text string
	var tagIDs []string
	var completed bool

	cmd := &cobra.Command{
		Use:   "update <essay-id>",
		Short: "Update essay prompt, text, tags or completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("prompt") && !flags.Changed("text") && !flags.Changed("tag") && !flags.Changed("completed") {
				return writeErr(cmd, errNothingToDo)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			e, ok := t.Essay(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("essay", args[0]))
			}
			if flags.Changed("prompt") {
				e.Prompt = prompt
			}
			if flags.Changed("text") {
				body, err := readText(cmd, text)
				if err != nil {
					return writeErr(cmd, err)
				}
				e.Text = body
			}
			if flags.Changed("tag") {
				e.TagIDs = tagIDs
			}
			if flags.Changed("completed") {
				e.Completed = completed
			}
			changed, err := t.UpdateEssay(e)
			if err != nil {
				return writeErr(cmd, err)
			}
			got, _ := t.Essay(e.ID)
			return writeOut(cmd, app, format.Envelope{
				Data: newEssayView(t, got, schoolName(t, got.ApplicationID)),
				Meta: map[string]any{"changed": changed},
			})
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "Essay prompt")
	cmd.Flags().StringVar(&text, "text", "", "Essay text ('-' reads stdin)")
	cmd.Flags().StringSliceVar(&tagIDs, "tag", nil, "Essay tag id (repeatable; replaces the set)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Completion state")
	return cmd
}

func newEssaysToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <essay-id>",
		Short: "Toggle an essay's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := t.ToggleEssayComplete(args[0])
			if err := requireChanged(changed, err, "essay", args[0]); err != nil {
				return writeErr(cmd, err)
			}
			e, _ := t.Essay(args[0])
			return writeOut(cmd, app, format.Envelope{Data: newEssayView(t, e, schoolName(t, e.ApplicationID))})
		},
	}
}

func newEssaysTagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <essay-id> <tag-id>",
		Short: "Toggle an essay tag on an essay",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := t.ToggleEssayTag(args[0], args[1])
			if err := requireChanged(changed, err, "essay or tag", args[0]+"/"+args[1]); err != nil {
				return writeErr(cmd, err)
			}
			e, _ := t.Essay(args[0])
			return writeOut(cmd, app, format.Envelope{Data: newEssayView(t, e, schoolName(t, e.ApplicationID))})
		},
	}
}

func newEssaysCommitCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "commit <essay-id>",
		Short: "Snapshot the essay text into its history (newest first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			e, ok := t.Essay(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("essay", args[0]))
			}
			current := e.Text
			if cmd.Flags().Changed("text") {
				if current, err = readText(cmd, text); err != nil {
					return writeErr(cmd, err)
				}
			}
			if _, err := t.CommitEssayHistory(e.ID, current); err != nil {
				return writeErr(cmd, err)
			}
			got, _ := t.Essay(e.ID)
			return writeOut(cmd, app, format.Envelope{
				Data: newEssayView(t, got, schoolName(t, got.ApplicationID)),
				Meta: map[string]any{"versions": len(got.History)},
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Commit this text instead of the stored text ('-' reads stdin)")
	return cmd
}

func newEssaysHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <essay-id>",
		Short: "List committed versions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			e, ok := t.Essay(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("essay", args[0]))
			}
			type version struct {
				Index int `json:"index"`
				model.EssayVersion
				WordCount int `json:"wordCount"`
			}
			out := make([]version, 0, len(e.History))
			for i, v := range e.History {
				out = append(out, version{Index: i, EssayVersion: v, WordCount: model.WordCount(v.Text)})
			}
			return writeOut(cmd, app, format.Envelope{Data: out})
		},
	}
}

func newEssaysRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <essay-id> <version-index>",
		Short: "Make a history version the live text (history is unchanged)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, errors.New("version index must be an integer"))
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := t.Essay(args[0]); !ok {
				return writeErr(cmd, errNotFound("essay", args[0]))
			}
			changed, err := t.RestoreEssayVersion(args[0], idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, _ := t.Essay(args[0])
			return writeOut(cmd, app, format.Envelope{
				Data: newEssayView(t, e, schoolName(t, e.ApplicationID)),
				Meta: map[string]any{"changed": changed},
			})
		},
	}
}

func newEssaysMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <essay-id> <target-essay-id>",
		Short: "Move an essay to the position of another essay of the same application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			e, ok := t.Essay(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("essay", args[0]))
			}
			if _, err := t.ReorderEssay(e.ApplicationID, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			ids := []string{}
			for _, sib := range t.EssaysForApplication(e.ApplicationID) {
				ids = append(ids, sib.ID)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"applicationId": e.ApplicationID, "order": ids},
			})
		},
	}
}

func newEssaysDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <essay-id>",
		Short: "Delete an essay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := t.DeleteEssay(args[0])
			if err := requireChanged(changed, err, "essay", args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"id": args[0], "deleted": true}})
		},
	}
}
