package cli

import (
	"errors"
	"strings"

	"apptrack/internal/format"
	"apptrack/internal/model"
	"apptrack/internal/tracker"

	"github.com/spf13/cobra"
)

func newAppsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"applications"},
		Short:   "Application commands",
	}

	cmd.AddCommand(newAppsListCmd(app))
	cmd.AddCommand(newAppsShowCmd(app))
	cmd.AddCommand(newAppsAddCmd(app))
	cmd.AddCommand(newAppsUpdateCmd(app))
	cmd.AddCommand(newAppsDeleteCmd(app))
	cmd.AddCommand(newAppsTagCmd(app))

	return cmd
}

func newAppsListCmd(app *App) *cobra.Command {
	var ff filterFlags
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications (filtered, UI-stable order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ff.applicationSort(app)
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
			apps := t.ListApplications(ff.filter(), mode)
			out := make([]applicationView, 0, len(apps))
			for _, a := range apps {
				out = append(out, newApplicationView(t, a, false))
			}
			return writeOut(cmd, app, format.Envelope{
				Data: out,
				Meta: map[string]any{
					"sort":     mode,
					"progress": t.ProgressSummary(apps),
				},
			})
		},
	}
	ff.register(cmd, "Sort mode (deadline-asc|schoolName-asc|schoolName-desc|doneness-asc|doneness-desc)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Recompute the order even if nothing sort-relevant changed")
	return cmd
}

func newAppsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <application-id>",
		Short: "Show an application with its essays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := t.Application(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("application", args[0]))
			}
			return writeOut(cmd, app, format.Envelope{Data: newApplicationView(t, a, true)})
		},
	}
}

// applicationFlags are the editable fields of add and update.
type applicationFlags struct {
	school           string
	deadline         string
	outcome          string
	notes            string
	tagIDs           []string
	decisionDate     string
	responseDeadline string
	financialAid     float64
	tuitionCost      float64
	pros             []string
	cons             []string
	city             string
	state            string
}

func (f *applicationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.school, "school", "", "School name")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.outcome, "outcome", "", "Outcome (in-progress|submitted|accepted|rejected|waitlisted|deferred|withdrawn)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes")
	cmd.Flags().StringSliceVar(&f.tagIDs, "tag", nil, "School tag id (repeatable)")
	cmd.Flags().StringVar(&f.decisionDate, "decision-date", "", "Decision date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.responseDeadline, "response-deadline", "", "Response deadline (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.financialAid, "financial-aid", 0, "Financial aid offered")
	cmd.Flags().Float64Var(&f.tuitionCost, "tuition", 0, "Tuition cost")
	cmd.Flags().StringSliceVar(&f.pros, "pro", nil, "Pro (repeatable)")
	cmd.Flags().StringSliceVar(&f.cons, "con", nil, "Con (repeatable)")
	cmd.Flags().StringVar(&f.city, "city", "", "City")
	cmd.Flags().StringVar(&f.state, "state", "", "State")
}

// apply copies every flag the user set onto a.
func (f applicationFlags) apply(cmd *cobra.Command, a *model.Application) (bool, error) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	touched := false

	if changed("school") {
		a.SchoolName = f.school
		touched = true
	}
	if changed("deadline") {
		d, err := model.ParseDate(f.deadline)
		if err != nil {
			return false, err
		}
		a.Deadline = d
		touched = true
	}
	if changed("outcome") {
		o, err := model.ParseOutcome(f.outcome)
		if err != nil {
			return false, err
		}
		a.Outcome = o
		touched = true
	}
	if changed("notes") {
		a.Notes = f.notes
		touched = true
	}
	if changed("tag") {
		a.TagIDs = f.tagIDs
		touched = true
	}
	if changed("decision-date") {
		p, err := optionalDate(f.decisionDate)
		if err != nil {
			return false, err
		}
		a.DecisionDate = p
		touched = true
	}
	if changed("response-deadline") {
		p, err := optionalDate(f.responseDeadline)
		if err != nil {
			return false, err
		}
		a.ResponseDeadline = p
		touched = true
	}
	if changed("financial-aid") {
		v := f.financialAid
		a.FinancialAid = &v
		touched = true
	}
	if changed("tuition") {
		v := f.tuitionCost
		a.TuitionCost = &v
		touched = true
	}
	if changed("pro") {
		a.Pros = f.pros
		touched = true
	}
	if changed("con") {
		a.Cons = f.cons
		touched = true
	}
	if changed("city") || changed("state") {
		loc := model.Location{}
		if a.Location != nil {
			loc = *a.Location
		}
		if changed("city") {
			loc.City = f.city
		}
		if changed("state") {
			loc.State = f.state
		}
		a.Location = &loc
		touched = true
	}
	return touched, nil
}

// optionalDate parses a date flag; an empty value clears the field.
func optionalDate(s string) (*model.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func newAppsAddCmd(app *App) *cobra.Command {
	var f applicationFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an application (with the default checklist)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(f.school) == "" {
				return writeErr(cmd, errors.New("missing --school"))
			}
			if strings.TrimSpace(f.deadline) == "" {
				return writeErr(cmd, errors.New("missing --deadline"))
			}
			var draft model.Application
			if _, err := f.apply(cmd, &draft); err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := t.AddApplication(tracker.NewApplication{
				SchoolName:       draft.SchoolName,
				Deadline:         draft.Deadline,
				Outcome:          draft.Outcome,
				Notes:            draft.Notes,
				TagIDs:           draft.TagIDs,
				DecisionDate:     draft.DecisionDate,
				FinancialAid:     draft.FinancialAid,
				TuitionCost:      draft.TuitionCost,
				ResponseDeadline: draft.ResponseDeadline,
				Pros:             draft.Pros,
				Cons:             draft.Cons,
				Location:         draft.Location,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  newApplicationView(t, a, false),
				Hints: []string{"apptrack essays add " + a.ID + " --prompt \"...\""},
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newAppsUpdateCmd(app *App) *cobra.Command {
	var f applicationFlags

	cmd := &cobra.Command{
		Use:   "update <application-id>",
		Short: "Update application fields (only the flags you pass)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := t.Application(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("application", args[0]))
			}
			touched, err := f.apply(cmd, &a)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !touched {
				return writeErr(cmd, errNothingToDo)
			}
			changed, err := t.UpdateApplication(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			got, _ := t.Application(a.ID)
			return writeOut(cmd, app, format.Envelope{
				Data: newApplicationView(t, got, false),
				Meta: map[string]any{"changed": changed},
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newAppsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <application-id>",
		Short: "Delete an application and all of its essays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			essays := len(t.EssaysForApplication(args[0]))
			changed, err := t.DeleteApplication(args[0])
			if err := requireChanged(changed, err, "application", args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"id": args[0], "deleted": true, "essaysDeleted": essays},
			})
		},
	}
}

func newAppsTagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <application-id> <tag-id>",
		Short: "Toggle a school tag on an application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := t.ToggleApplicationTag(args[0], args[1])
			if err := requireChanged(changed, err, "application or tag", args[0]+"/"+args[1]); err != nil {
				return writeErr(cmd, err)
			}
			a, _ := t.Application(args[0])
			return writeOut(cmd, app, format.Envelope{Data: newApplicationView(t, a, false)})
		},
	}
}
