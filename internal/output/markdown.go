package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

// markdownStyle picks a glamour style for the current output: no colors when
// stdout is not a terminal, otherwise dark or light by background.
func markdownStyle(plain bool) ansi.StyleConfig {
	var style ansi.StyleConfig
	switch {
	case plain || !IsTerminal():
		style = styles.NoTTYStyleConfig
	case termenv.HasDarkBackground():
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	style.Document.Margin = uintPtr(0)
	return style
}

func uintPtr(v uint) *uint { return &v }

// RenderMarkdown renders markdown content for terminal display, wrapped at
// width (0 = terminal width). Returns the original content on error.
func RenderMarkdown(content string, width int, plain bool) string {
	if width <= 0 {
		width = GetTerminalWidth()
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(plain)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n") + "\n"
}
