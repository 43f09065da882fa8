// Package tools implements the MCP tool handlers for plan and session
// management, one file per tool. A tool is a struct holding its
// dependencies (session.Store, the template renderer) behind
// interfaces, with a Definition for registration and a Handle method
// matching mcp-go's CallToolRequest signature.
//
// Tools return mcp.NewToolResultError for domain failures (bad input,
// missing session) so the model can recover; a Go error is reserved for
// infrastructure failures.
package tools

import (
	"fmt"

	"github.com/plankeep/plankeep/internal/plan"
	"github.com/plankeep/plankeep/internal/session"
)

// findProjectRoot walks up from the current working directory looking
// for an existing context directory. If none is found, returns cwd.
// This allows tools to work from any subdirectory of the project.
func findProjectRoot(contextDir string) (string, error) {
	return session.FindRoot(contextDir)
}

// resolveSession picks the session to operate on: the explicit ID when
// given, otherwise the most recent one. The bool reports whether any
// session exists at all.
func resolveSession(store session.Store, root, id string) (string, bool, error) {
	if id != "" {
		return id, true, nil
	}
	current, ok, err := store.Current(root)
	if err != nil {
		return "", false, fmt.Errorf("finding current session: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return current.ID, true, nil
}

// loadPlan reads and parses the plan document of the given session.
func loadPlan(store session.Store, root, id string) (*plan.Document, error) {
	content, err := store.ReadPlan(root, id)
	if err != nil {
		return nil, fmt.Errorf("reading plan for session %s: %w", id, err)
	}
	return plan.Parse(content), nil
}

// noSessionMessage is the domain error returned when a tool needs a
// session and none exists yet.
const noSessionMessage = "No active session found. Start one with `session_start` first."

// formatSuggestions renders fuzzy matches as a numbered hint list.
func formatSuggestions(matches []plan.Match) string {
	if len(matches) == 0 {
		return ""
	}
	out := "\n\nDid you mean:\n"
	for i, m := range matches {
		out += fmt.Sprintf("  %d. %s (%.0f%% match)\n", i+1, m.Text, m.Score*100)
	}
	return out
}
