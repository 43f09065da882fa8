package ui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const maxRenderWidth = 100

// terminalWidth returns the stdout width capped at maxRenderWidth,
// falling back to 80 when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w > maxRenderWidth {
		return maxRenderWidth
	}
	return w
}

// RenderMarkdown renders markdown for terminal display. When rendering
// is unavailable (dumb terminal, pipe) the raw markdown is returned so
// output stays grep-friendly.
func RenderMarkdown(content string) string {
	if !ShouldUseColor() {
		return content
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
