package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/session"
)

// SessionFinishTool handles the session_finish MCP tool.
// It writes the session summary and marks the task completed.
type SessionFinishTool struct {
	store session.Store
	now   func() time.Time
}

// NewSessionFinishTool creates a SessionFinishTool with the given session store.
func NewSessionFinishTool(store session.Store) *SessionFinishTool {
	return &SessionFinishTool{store: store, now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *SessionFinishTool) Definition() mcp.Tool {
	return mcp.NewTool("session_finish",
		mcp.WithDescription(
			"Finish the current session: fills in the summary document, "+
				"updates LAST_SESSION_SUMMARY.md, and moves the task from in "+
				"progress to completed.",
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("What was accomplished, decided, and left open."),
		),
		mcp.WithString("session_id",
			mcp.Description("Specific session ID. If omitted, uses the current session."),
		),
	)
}

// Handle processes the session_finish tool call.
func (t *SessionFinishTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := req.GetString("summary", "")
	sessionID := req.GetString("session_id", "")

	if summary == "" {
		return mcp.NewToolResultError("Summary cannot be empty."), nil
	}

	root, err := findProjectRoot(session.DefaultContextDir)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	id, ok, err := resolveSession(t.store, root, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mcp.NewToolResultError(noSessionMessage), nil
	}

	// Report final plan progress alongside the confirmation.
	progress := ""
	if doc, err := loadPlan(t.store, root, id); err == nil {
		progress = "\n\nFinal progress: " + doc.FormatProgress()
	}

	if err := t.store.Finish(root, id, summary, t.now()); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Session %q not found: %v", id, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Finished session `%s`.%s", id, progress,
	)), nil
}
