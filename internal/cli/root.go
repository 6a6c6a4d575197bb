package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"apptrack/internal/config"
	"apptrack/internal/format"
	"apptrack/internal/logger"
	"apptrack/internal/store"
	"apptrack/internal/tracker"

	"github.com/spf13/cobra"
)

type App struct {
	Dir      string
	Backend  string
	Format   string
	Pretty   bool
	LogLevel string

	cfg     *config.Config
	log     *logger.Logger
	store   store.Store
	tracker *tracker.Tracker
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "apptrack",
		Short:        "College application tracker (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  apptrack

  # List applications tagged Reach whose essays mention research
  apptrack apps list --tag st1 --search research

  # Snapshot an essay draft into its history
  apptrack essays commit e1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data directory (default: <config dir>/apptrack/data)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|json)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newAppsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newEssaysCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newProgressCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newResultsCmd(app))
	cmd.AddCommand(newTimelineCmd(app))
	cmd.AddCommand(newCompareCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newRefreshSortCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// configure resolves config (defaults < file < env < flags) and builds the logger and store.
func (app *App) configure(cmd *cobra.Command) error {
	_, v, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	flags := cmd.Flags()
	for key, name := range map[string]string{
		"data.dir":      "dir",
		"data.backend":  "backend",
		"output.format": "format",
		"output.pretty": "pretty",
		"log.level":     "log-level",
	} {
		if f := flags.Lookup(name); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg
	app.Format = cfg.Output.Format
	app.Pretty = cfg.Output.Pretty

	log, err := logger.New(cfg.Log)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log

	backend, err := store.ParseBackend(cfg.Data.Backend)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.store = store.Store{Dir: cfg.Data.Dir, Backend: backend, Log: log.WithComponent("store")}
	return nil
}

// open loads the snapshot and the persisted view state on first use.
func (app *App) open(ctx context.Context) (*tracker.Tracker, error) {
	if app.tracker != nil {
		return app.tracker, nil
	}
	res, err := app.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts := []tracker.Option{
		tracker.WithPersister(app.store),
		tracker.WithLogger(app.log.WithComponent("tracker")),
		tracker.WithDebounce(app.cfg.Edit.Debounce),
	}
	if vs, err := app.store.LoadViewState(); err == nil {
		opts = append(opts, tracker.WithSortState(vs.Sort))
	} else {
		app.log.WithError(err).Warnw("could not read view state")
	}
	app.tracker = tracker.New(res.Snapshot, opts...)
	return app.tracker, nil
}

// close flushes pending edits and remembers list ordering for the next invocation.
func (app *App) close() error {
	if app.tracker == nil {
		if app.log != nil {
			app.log.Sync()
		}
		return nil
	}
	app.tracker.Close()
	err := app.store.SaveViewState(&store.ViewState{Sort: app.tracker.SortState()})
	if err != nil {
		app.log.WithError(err).Warnw("could not save view state")
	}
	app.log.Sync()
	return nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// requireChanged maps a no-op mutation to a not-found error for the user.
func requireChanged(changed bool, err error, kind, id string) error {
	if err != nil {
		return err
	}
	if !changed {
		return errNotFound(kind, id)
	}
	return nil
}

var errNothingToDo = errors.New("nothing to update; pass at least one field flag")
