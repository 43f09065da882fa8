// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/plankeep/plankeep/internal/session"
	"github.com/plankeep/plankeep/internal/templates"
	"github.com/plankeep/plankeep/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
// This is the single place where all dependencies are resolved.
func New() (*server.MCPServer, error) {
	// --- Create shared dependencies ---

	store := session.NewFileStore()

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating template renderer: %w", err)
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"plankeep",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register session lifecycle tools ---

	sessionStartTool := tools.NewSessionStartTool(store, renderer)
	s.AddTool(sessionStartTool.Definition(), sessionStartTool.Handle)

	sessionFinishTool := tools.NewSessionFinishTool(store)
	s.AddTool(sessionFinishTool.Definition(), sessionFinishTool.Handle)

	// --- Register plan tools ---

	planUpdateTool := tools.NewPlanUpdateTool(store)
	s.AddTool(planUpdateTool.Definition(), planUpdateTool.Handle)

	planEditTool := tools.NewPlanEditTool(store)
	s.AddTool(planEditTool.Definition(), planEditTool.Handle)

	planShowTool := tools.NewPlanShowTool(store)
	s.AddTool(planShowTool.Definition(), planShowTool.Handle)

	// --- Register logging and context tools ---

	logExecutionTool := tools.NewLogExecutionTool(store)
	s.AddTool(logExecutionTool.Definition(), logExecutionTool.Handle)

	contextSummaryTool := tools.NewContextSummaryTool(store)
	s.AddTool(contextSummaryTool.Definition(), contextSummaryTool.Handle)

	return s, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to drive a plankeep session.
func serverInstructions() string {
	return `You have access to plankeep, a session-based TDD workflow server.

## What is plankeep?

plankeep keeps AI-assisted coding sessions on the rails. Every unit of
work is a SESSION with three markdown documents:

- PLAN: a phased checklist driving the work
- EXECUTION: an append-only progress log
- SUMMARY: the wrap-up written when the session ends

All state is flat markdown under .ai-context/ — the user can read and
edit everything by hand.

## Session Workflow

1. Call context_summary FIRST when picking up work in a project. It
   tells you what is in progress, what was decided recently, and how
   the last session ended.
2. Call session_start with a task name and type (feature, bugfix,
   docs, refactor). This creates the plan from a template.
3. Review the plan with plan_show. Adjust it with plan_edit (add,
   remove, rename items, or add whole phases) so it matches the real
   work before writing any code.
4. Work the plan top to bottom. For TDD tasks: write the failing test
   first, then make it pass, then refactor.
5. After each meaningful step, call log_execution with what happened.
   Use level=success for wins, level=error for failures you hit.
6. Tick items off with plan_update as you complete them — never batch
   them up at the end.
7. When the work is done, call session_finish with a real summary:
   what was accomplished, what was decided, what is left open.

## Important Rules

- ONE task per session. Start a new session for unrelated work.
- Keep the plan honest: if the work changes shape, edit the plan
  before continuing.
- Log failures too — the execution log is most valuable when it
  records what did NOT work.
- Item matching is fuzzy-assisted: when plan_update cannot find your
  item it suggests close matches, pick one or re-check plan_show.
- Never write a summary like "done" — future sessions read it to
  recover context.`
}
