package export

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	rendererMu sync.Mutex
	// Keyed by style and wrap width. Auto style is avoided because it queries the terminal.
	renderers = map[string]*glamour.TermRenderer{}
)

// Style picks a glamour style: "dark", "light" or "notty"; anything else follows the terminal background.
func Style(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case styles.DarkStyle:
		return styles.DarkStyle
	case styles.LightStyle:
		return styles.LightStyle
	case styles.NoTTYStyle:
		return styles.NoTTYStyle
	}
	if lipgloss.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// RenderTerminal renders markdown for display. On renderer errors the markdown is returned unchanged.
func RenderTerminal(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	style = Style(style)
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return md
		}
		renderers[key] = rr
		r = rr
	}
	rendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
