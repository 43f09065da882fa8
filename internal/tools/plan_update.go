package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/plan"
	"github.com/plankeep/plankeep/internal/session"
)

// suggestionThreshold is looser than the default matching threshold so
// near-misses still surface as hints.
const suggestionThreshold = 0.5

// maxSuggestions caps how many near-matches a failed lookup reports.
const maxSuggestions = 3

// PlanUpdateTool handles the plan_update MCP tool.
// It checks or unchecks a checklist item in the session plan.
type PlanUpdateTool struct {
	store session.Store
}

// NewPlanUpdateTool creates a PlanUpdateTool with the given session store.
func NewPlanUpdateTool(store session.Store) *PlanUpdateTool {
	return &PlanUpdateTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_update",
		mcp.WithDescription(
			"Check or uncheck a checklist item in the current session plan. "+
				"The item is matched by case-insensitive substring; on a miss, "+
				"similar items are suggested.",
		),
		mcp.WithString("item",
			mcp.Required(),
			mcp.Description("Text identifying the checklist item to update."),
		),
		mcp.WithString("action",
			mcp.Description("Whether to check or uncheck the item. Defaults to check."),
			mcp.Enum("check", "uncheck"),
		),
		mcp.WithString("session_id",
			mcp.Description("Specific session ID. If omitted, uses the current session."),
		),
	)
}

// Handle processes the plan_update tool call.
func (t *PlanUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item := req.GetString("item", "")
	action := req.GetString("action", "check")
	sessionID := req.GetString("session_id", "")

	if item == "" {
		return mcp.NewToolResultError("Item text cannot be empty."), nil
	}
	check := action != "uncheck"

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

	box, found := doc.Check(item, check)
	if !found {
		matches := plan.SimilarItems(item, doc.Items(), suggestionThreshold)
		if len(matches) > maxSuggestions {
			matches = matches[:maxSuggestions]
		}
		return mcp.NewToolResultError(fmt.Sprintf(
			"Item %q not found in plan.%s", item, formatSuggestions(matches),
		)), nil
	}

	if err := t.store.WritePlan(root, id, doc.String()); err != nil {
		return nil, fmt.Errorf("writing plan: %w", err)
	}

	verb := "Checked"
	if !check {
		verb = "Unchecked"
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"%s: %s\n\nProgress: %s", verb, box.Text, doc.FormatProgress(),
	)), nil
}
