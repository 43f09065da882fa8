package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/session"
)

// PlanShowTool handles the plan_show MCP tool.
// It returns the session plan content with a progress summary.
type PlanShowTool struct {
	store session.Store
}

// NewPlanShowTool creates a PlanShowTool with the given session store.
func NewPlanShowTool(store session.Store) *PlanShowTool {
	return &PlanShowTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanShowTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_show",
		mcp.WithDescription(
			"Show the current session plan with completion progress. "+
				"If `phase` is given, shows only that phase's section.",
		),
		mcp.WithString("phase",
			mcp.Description("Phase name to show. If omitted, shows the whole plan."),
		),
		mcp.WithString("session_id",
			mcp.Description("Specific session ID. If omitted, uses the current session."),
		),
	)
}

// Handle processes the plan_show tool call.
func (t *PlanShowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	phase := req.GetString("phase", "")
	sessionID := req.GetString("session_id", "")

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

	doc, err := loadPlan(t.store, root, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Session %q not found: %v", id, err)), nil
	}

	content := doc.String()
	if phase != "" {
		if err := doc.ValidatePhaseExists(phase); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content = doc.PhaseSection(phase)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"%s\n\n---\nProgress: %s", content, doc.FormatProgress(),
	)), nil
}
