package tui

import (
	"strings"

	"apptrack/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorAccent     = ac("27", "62")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorDone       = ac("#15803d", "#50fa7b")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Background(colorSelectedBg).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(colorDone)
	paneStyle     = lipgloss.NewStyle().Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// tagColors maps the palette to terminal colors.
var tagColors = map[model.TagColor]lipgloss.AdaptiveColor{
	"rose":    ac("#e11d48", "#fb7185"),
	"pink":    ac("#db2777", "#f472b6"),
	"fuchsia": ac("#c026d3", "#e879f9"),
	"purple":  ac("#9333ea", "#c084fc"),
	"violet":  ac("#7c3aed", "#a78bfa"),
	"indigo":  ac("#4f46e5", "#818cf8"),
	"blue":    ac("#2563eb", "#60a5fa"),
	"sky":     ac("#0284c7", "#38bdf8"),
	"cyan":    ac("#0891b2", "#22d3ee"),
	"teal":    ac("#0d9488", "#2dd4bf"),
	"emerald": ac("#059669", "#34d399"),
	"green":   ac("#16a34a", "#4ade80"),
	"lime":    ac("#65a30d", "#a3e635"),
	"yellow":  ac("#ca8a04", "#facc15"),
	"amber":   ac("#d97706", "#fbbf24"),
	"orange":  ac("#ea580c", "#fb923c"),
	"red":     ac("#dc2626", "#f87171"),
}

func tagChip(t model.Tag) string {
	return lipgloss.NewStyle().Foreground(tagColors[t.Color]).Render("#" + t.Name)
}

func tagChips(tags []model.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, tagChip(t))
	}
	return strings.Join(parts, " ")
}

// truncate cuts s to w cells, keeping ANSI sequences intact.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return xansi.Truncate(s, w, "…")
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	return doneStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
