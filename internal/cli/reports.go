package cli

import (
	"apptrack/internal/format"
	"apptrack/internal/model"

	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	var ff filterFlags
	var essays bool

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Progress summary over the filtered view",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if essays {
				mode, err := ff.essaySort(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{
					Data: t.EssayProgressSummary(t.ListEssays(ff.filter(), mode)),
					Meta: map[string]any{"view": "essays"},
				})
			}
			mode, err := ff.applicationSort(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: t.ProgressSummary(t.ListApplications(ff.filter(), mode)),
				Meta: map[string]any{"view": "applications"},
			})
		},
	}
	ff.register(cmd, "Sort mode of the underlying view")
	cmd.Flags().BoolVar(&essays, "essays", false, "Summarize the essay-centric view")
	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Totals, upcoming deadlines, outcome counts and essay-tag progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: t.Dashboard(),
				Meta: map[string]any{"today": model.NewDate(t.Now())},
			})
		},
	}
}

func newResultsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Decisions grouped by outcome, with aid and net cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			r := t.Results()
			out := format.Envelope{Data: r}
			if !r.HasDecisions() {
				out.Hints = []string{"apptrack apps update <id> --outcome accepted --decision-date YYYY-MM-DD"}
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Decided applications ordered by decision date",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: t.DecisionTimeline()})
		},
	}
}

func newRefreshSortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-sort",
		Short: "Recompute list order on the next list call",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			t.RefreshSort()
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"refresh": t.SortState().Refresh}})
		},
	}
}
