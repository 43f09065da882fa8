package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/session"
	"github.com/plankeep/plankeep/internal/templates"
	"github.com/plankeep/plankeep/internal/ui"
)

var startTaskType string

// startCmd begins a new work session.
var startCmd = &cobra.Command{
	Use:   "start <task name>",
	Short: "Start a new work session",
	Long: `Start a new work session for a task.

Creates the session triplet (plan, execution log, summary stub) from
the template matching the task type and registers the task as in
progress.

Examples:
  plankeep start "Add user authentication"
  plankeep start --type bugfix "Fix login crash on empty password"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startTaskType, "type", "t", "feature", "Task type: feature, bugfix, docs, refactor")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) {
	taskName := strings.Join(args, " ")
	taskType := templates.TaskType(startTaskType)
	if err := templates.ValidateTaskType(taskType); err != nil {
		FatalError("%v", err)
	}

	w := loadWorkspace()

	renderer, err := templates.NewRenderer()
	if err != nil {
		FatalError("loading templates: %v", err)
	}

	now := time.Now()
	s := session.Session{ID: session.NewID(now), Slug: session.Slugify(taskName)}
	data := templates.SessionData{
		SessionID: s.ID,
		TaskName:  taskName,
		TaskType:  taskType,
		Timestamp: session.Timestamp(now),
	}

	plan, err := renderer.RenderPlan(taskType, data)
	if err != nil {
		FatalError("rendering plan: %v", err)
	}
	execution, err := renderer.RenderExecution(data)
	if err != nil {
		FatalError("rendering execution log: %v", err)
	}
	summary, err := renderer.RenderSummary(data)
	if err != nil {
		FatalError("rendering summary: %v", err)
	}

	if err := w.Store.Create(w.Root, s, plan, execution, summary); err != nil {
		FatalError("creating session: %v", err)
	}

	ui.Success("Started session %s", s.ID)
	fmt.Printf("  Task: %s (%s)\n", taskName, taskType)
	fmt.Printf("  Plan: %s\n", ui.Muted(fmt.Sprintf("%s/sessions/%s-PLAN-%s.md", w.Cfg.SessionsDir, s.ID, s.Slug)))
	fmt.Println()
	fmt.Println("Review the plan with `plankeep plan --show`, then work it top to bottom.")
}
