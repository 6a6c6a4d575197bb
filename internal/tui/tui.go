// Package tui is the interactive front end: a filtered, stably sorted
// application list with a detail pane for checklist tasks and essays.
package tui

import (
	"os"
	"time"

	"apptrack/internal/query"
	"apptrack/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type Options struct {
	Sort query.SortMode
	// Debounce is the tracker's edit delay; the view reloads shortly after it.
	Debounce time.Duration
}

func Run(t *tracker.Tracker, opts Options) error {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	m := newModel(t, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
