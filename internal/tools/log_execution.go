package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/session"
)

// LogExecutionTool handles the log_execution MCP tool.
// It appends a timestamped entry to the session's execution log.
type LogExecutionTool struct {
	store session.Store
	now   func() time.Time
}

// NewLogExecutionTool creates a LogExecutionTool with the given session store.
func NewLogExecutionTool(store session.Store) *LogExecutionTool {
	return &LogExecutionTool{store: store, now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *LogExecutionTool) Definition() mcp.Tool {
	return mcp.NewTool("log_execution",
		mcp.WithDescription(
			"Append a timestamped entry to the current session's execution "+
				"log. Use this to record progress, decisions, and problems as "+
				"the work happens.",
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The log message."),
		),
		mcp.WithString("level",
			mcp.Description("Entry severity. Defaults to info."),
			mcp.Enum("info", "warning", "error", "success"),
		),
		mcp.WithString("session_id",
			mcp.Description("Specific session ID. If omitted, uses the current session."),
		),
	)
}

// Handle processes the log_execution tool call.
func (t *LogExecutionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := req.GetString("message", "")
	level := session.LogLevel(req.GetString("level", string(session.LevelInfo)))
	sessionID := req.GetString("session_id", "")

	if message == "" {
		return mcp.NewToolResultError("Log message cannot be empty."), nil
	}
	if !session.ValidLevel(level) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Unknown level %q. Valid levels: info, warning, error, success.", level,
		)), nil
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

	entry := session.FormatLogEntry(t.now(), level, message)
	if err := t.store.AppendExecution(root, id, entry); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Session %q not found: %v", id, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Logged: %s", entry)), nil
}
