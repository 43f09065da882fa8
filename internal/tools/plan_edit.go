package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plankeep/plankeep/internal/plan"
	"github.com/plankeep/plankeep/internal/session"
)

// PlanEditTool handles the plan_edit MCP tool.
// It restructures the session plan: add, remove, or rename items, or
// append a whole phase.
type PlanEditTool struct {
	store session.Store
}

// NewPlanEditTool creates a PlanEditTool with the given session store.
func NewPlanEditTool(store session.Store) *PlanEditTool {
	return &PlanEditTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanEditTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_edit",
		mcp.WithDescription(
			"Edit the current session plan. Actions: `add` inserts a new "+
				"unchecked item (optionally into a named phase), `remove` deletes "+
				"the first matching item, `rename` rewrites a matching item's "+
				"text, `add_phase` appends a new phase section with optional "+
				"starter items.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("The edit to perform."),
			mcp.Enum("add", "remove", "rename", "add_phase"),
		),
		mcp.WithString("item",
			mcp.Description("Item text: the new item for `add`, the match pattern for `remove`/`rename`."),
		),
		mcp.WithString("new_text",
			mcp.Description("Replacement text for `rename`."),
		),
		mcp.WithString("phase",
			mcp.Description("Phase name: target phase for `add`, new phase name for `add_phase`."),
		),
		mcp.WithString("items",
			mcp.Description("Newline-separated starter items for `add_phase`."),
		),
		mcp.WithString("session_id",
			mcp.Description("Specific session ID. If omitted, uses the current session."),
		),
	)
}

// Handle processes the plan_edit tool call.
func (t *PlanEditTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := req.GetString("action", "")
	item := req.GetString("item", "")
	newText := req.GetString("new_text", "")
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

	var confirmation string
	switch action {
	case "add":
		if err := plan.ValidateItemNotEmpty(item); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := doc.ValidateNoDuplicate(item); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := doc.ValidatePhaseExists(phase); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		doc.AddItem(item, phase)
		confirmation = fmt.Sprintf("Added item: %s", item)

	case "remove":
		if !doc.RemoveItem(item) {
			return t.notFound(doc, item), nil
		}
		confirmation = fmt.Sprintf("Removed item matching: %s", item)

	case "rename":
		if err := plan.ValidateItemNotEmpty(newText); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !doc.RenameItem(item, newText) {
			return t.notFound(doc, item), nil
		}
		confirmation = fmt.Sprintf("Renamed item to: %s", newText)

	case "add_phase":
		if strings.TrimSpace(phase) == "" {
			return mcp.NewToolResultError("Phase name cannot be empty."), nil
		}
		doc.AddPhase(phase, splitItems(req.GetString("items", "")))
		confirmation = fmt.Sprintf("Added phase: %s", phase)

	default:
		return mcp.NewToolResultError(fmt.Sprintf("Unknown action %q.", action)), nil
	}

	if err := t.store.WritePlan(root, id, doc.String()); err != nil {
		return nil, fmt.Errorf("writing plan: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"%s\n\nProgress: %s", confirmation, doc.FormatProgress(),
	)), nil
}

// notFound builds the item-not-found result with fuzzy suggestions.
func (t *PlanEditTool) notFound(doc *plan.Document, item string) *mcp.CallToolResult {
	matches := plan.SimilarItems(item, doc.Items(), suggestionThreshold)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return mcp.NewToolResultError(fmt.Sprintf(
		"Item %q not found in plan.%s", item, formatSuggestions(matches),
	))
}

// splitItems parses the newline-separated starter item list, dropping
// blank lines.
func splitItems(raw string) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			items = append(items, s)
		}
	}
	return items
}
