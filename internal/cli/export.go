package cli

import (
	"fmt"
	"os"

	"apptrack/internal/export"
	"apptrack/internal/model"
	"apptrack/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data (json snapshot or markdown document)",
	}

	cmd.AddCommand(newExportJSONCmd(app))
	cmd.AddCommand(newExportMarkdownCmd(app))

	return cmd
}

func newExportJSONCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Export the full snapshot as indented JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := store.ExportJSON(t.Snapshot())
			if err != nil {
				return writeErr(cmd, err)
			}
			return emit(cmd, out, b)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	return cmd
}

func newExportMarkdownCmd(app *App) *cobra.Command {
	var ff filterFlags
	var out, style string
	var render bool

	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Export the filtered, sorted application view as a Markdown document",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ff.applicationSort(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			apps := t.ListApplications(ff.filter(), mode)
			v := export.View{
				Applications:        apps,
				EssaysByApplication: make(map[string][]model.Essay, len(apps)),
				TagsByID:            t.TagsByID(),
			}
			for _, a := range apps {
				v.EssaysByApplication[a.ID] = t.EssaysForApplication(a.ID)
			}
			md := export.RenderMarkdown(v)
			if render && out == "" {
				md = export.RenderTerminal(md, terminalWidth(), export.Style(style))
			}
			return emit(cmd, out, []byte(md))
		},
	}
	ff.register(cmd, "Sort mode of the exported view")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&render, "render", false, "Render for the terminal (stdout only)")
	cmd.Flags().StringVar(&style, "style", "", "Render style (dark|light|notty; default: detect)")
	return cmd
}

func emit(cmd *cobra.Command, path string, b []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return writeErr(cmd, fmt.Errorf("write %s: %w", path, err))
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "wrote", path)
	return nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
