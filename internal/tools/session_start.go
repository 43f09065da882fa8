package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/session"
	"github.com/plankeep/plankeep/internal/templates"
)

// SessionStartTool handles the session_start MCP tool.
// It creates a new session triplet from the task-type templates.
type SessionStartTool struct {
	store    session.Store
	renderer *templates.Renderer
	now      func() time.Time
}

// NewSessionStartTool creates a SessionStartTool with its dependencies.
func NewSessionStartTool(store session.Store, renderer *templates.Renderer) *SessionStartTool {
	return &SessionStartTool{store: store, renderer: renderer, now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *SessionStartTool) Definition() mcp.Tool {
	return mcp.NewTool("session_start",
		mcp.WithDescription(
			"Start a new work session. Creates a phased plan, an execution "+
				"log, and a summary stub from the template matching the task "+
				"type, and registers the task as in progress.",
		),
		mcp.WithString("task_name",
			mcp.Required(),
			mcp.Description("Human-readable name of the task, e.g. \"Add user authentication\"."),
		),
		mcp.WithString("task_type",
			mcp.Description("Kind of work, selects the plan template. Defaults to feature."),
			mcp.Enum("feature", "bugfix", "docs", "refactor"),
		),
	)
}

// Handle processes the session_start tool call.
func (t *SessionStartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskName := req.GetString("task_name", "")
	taskType := templates.TaskType(req.GetString("task_type", string(templates.Feature)))

	if taskName == "" {
		return mcp.NewToolResultError("Task name cannot be empty."), nil
	}
	if err := templates.ValidateTaskType(taskType); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	root, err := findProjectRoot(session.DefaultContextDir)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	now := t.now()
	s := session.Session{ID: session.NewID(now), Slug: session.Slugify(taskName)}
	data := templates.SessionData{
		SessionID: s.ID,
		TaskName:  taskName,
		TaskType:  taskType,
		Timestamp: session.Timestamp(now),
	}

	planDoc, err := t.renderer.RenderPlan(taskType, data)
	if err != nil {
		return nil, fmt.Errorf("rendering plan template: %w", err)
	}
	execution, err := t.renderer.RenderExecution(data)
	if err != nil {
		return nil, fmt.Errorf("rendering execution template: %w", err)
	}
	summary, err := t.renderer.RenderSummary(data)
	if err != nil {
		return nil, fmt.Errorf("rendering summary template: %w", err)
	}

	if err := t.store.Create(root, s, planDoc, execution, summary); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Started session `%s` for task: %s\n\n"+
			"Plan type: %s\n\n"+
			"Review the plan with `plan_show`, then log progress with "+
			"`log_execution` and tick items off with `plan_update` as you work.",
		s.ID, taskName, taskType,
	)), nil
}
