// Package ui provides terminal styling for plankeep CLI output.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Semantic status colors, adaptive for light/dark terminals.
var (
	ColorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMute = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorHead = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

// Status styles, consistent across all commands.
var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMute)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHead)
)

// Status icons.
const (
	IconPass = "✅"
	IconWarn = "⚠️"
	IconFail = "❌"
	IconInfo = "📝"
)

// ShouldUseColor reports whether styled output is appropriate: stdout is
// a terminal and NO_COLOR is unset.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Success prints a green confirmation line to stdout.
func Success(format string, args ...any) {
	msg := IconPass + " " + fmt.Sprintf(format, args...)
	if ShouldUseColor() {
		msg = PassStyle.Render(msg)
	}
	fmt.Println(msg)
}

// Error prints a red error line to stderr.
func Error(format string, args ...any) {
	msg := IconFail + " " + fmt.Sprintf(format, args...)
	if ShouldUseColor() {
		msg = FailStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

// Warn prints a yellow warning line to stderr.
func Warn(format string, args ...any) {
	msg := IconWarn + " " + fmt.Sprintf(format, args...)
	if ShouldUseColor() {
		msg = WarnStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

// Header prints a bold section header to stdout.
func Header(text string) {
	if ShouldUseColor() {
		text = HeaderStyle.Render(text)
	}
	fmt.Println(text)
}

// Muted renders de-emphasized text (hints, similarity scores).
func Muted(text string) string {
	if ShouldUseColor() {
		return MutedStyle.Render(text)
	}
	return text
}
