package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/session"
)

// contextReader is the slice of the session store this tool needs.
type contextReader interface {
	ReadContextFile(root, name string) (string, error)
}

// ContextSummaryTool handles the context_summary MCP tool.
// It condenses the shared context files into a single briefing suitable
// for loading at the start of a session.
type ContextSummaryTool struct {
	reader contextReader
}

// NewContextSummaryTool creates a ContextSummaryTool with the given reader.
func NewContextSummaryTool(reader contextReader) *ContextSummaryTool {
	return &ContextSummaryTool{reader: reader}
}

// Definition returns the MCP tool definition for registration.
func (t *ContextSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("context_summary",
		mcp.WithDescription(
			"Summarize the project context: active and blocked tasks, the "+
				"last session's outcome, recent decisions, and key conventions. "+
				"Call this first when picking up work in a project.",
		),
	)
}

// Handle processes the context_summary tool call.
func (t *ContextSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := findProjectRoot(session.DefaultContextDir)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Project Context\n\n")

	tasks, err := t.reader.ReadContextFile(root, session.ActiveTasksFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", session.ActiveTasksFile, err)
	}
	fmt.Fprintf(&b, "## Tasks\n\n- In progress: %d\n- Blocked: %d\n- Completed: %d\n",
		session.CountTasksInSection(tasks, "In Progress"),
		session.CountTasksInSection(tasks, "Blocked"),
		session.CountTasksInSection(tasks, "Completed"),
	)
	if inProgress := session.TasksInSection(tasks, "In Progress"); len(inProgress) > 0 {
		b.WriteString("\nIn progress:\n")
		for _, task := range inProgress {
			fmt.Fprintf(&b, "%s\n", task)
		}
	}

	lastRaw, err := t.reader.ReadContextFile(root, session.LastSessionSummaryFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", session.LastSessionSummaryFile, err)
	}
	last := session.ParseLastSession(lastRaw)
	b.WriteString("\n## Last Session\n\n")
	if last.SessionID == "" {
		b.WriteString("No sessions yet.\n")
	} else {
		fmt.Fprintf(&b, "- ID: %s\n- Date: %s\n- Status: %s\n", last.SessionID, last.Date, last.Status)
		if last.Summary != "" {
			fmt.Fprintf(&b, "- Summary: %s\n", last.Summary)
		}
	}

	decisionsRaw, err := t.reader.ReadContextFile(root, session.RecentDecisionsFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", session.RecentDecisionsFile, err)
	}
	if decisions := session.RecentDecisions(decisionsRaw, 5); len(decisions) > 0 {
		b.WriteString("\n## Recent Decisions\n\n")
		for _, d := range decisions {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	conventionsRaw, err := t.reader.ReadContextFile(root, session.ConventionsFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", session.ConventionsFile, err)
	}
	if conventions := session.KeyConventions(conventionsRaw, 5); len(conventions) > 0 {
		b.WriteString("\n## Key Conventions\n\n")
		for _, c := range conventions {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
