package ui

import "testing"

// --- markdown fallback ---

func TestRenderMarkdownPlainWhenNotTerminal(t *testing.T) {
	// Test processes have no TTY on stdout, so rendering must fall
	// back to the raw markdown unchanged.
	in := "# Plan\n\n- [ ] Write code\n- [x] Read docs\n"
	if got := RenderMarkdown(in); got != in {
		t.Errorf("expected raw passthrough, got %q", got)
	}
}

func TestMutedPassthroughWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if got := Muted("hint"); got != "hint" {
		t.Errorf("Muted = %q, want %q", got, "hint")
	}
}
