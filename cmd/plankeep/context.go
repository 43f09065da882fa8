package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/session"
	"github.com/plankeep/plankeep/internal/ui"
)

// contextCmd summarizes the shared project context.
var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Summarize the project context",
	Long: `Summarize the shared project context: active and blocked tasks,
the last session's outcome, recent decisions, and key conventions.

Run this first when picking up work in a project.`,
	Args: cobra.NoArgs,
	Run:  runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) {
	w := loadWorkspace()

	tasks, err := w.Store.ReadContextFile(w.Root, session.ActiveTasksFile)
	if err != nil {
		FatalError("reading %s: %v", session.ActiveTasksFile, err)
	}

	ui.Header("Tasks")
	fmt.Printf("  In progress: %d\n", session.CountTasksInSection(tasks, "In Progress"))
	fmt.Printf("  Blocked:     %d\n", session.CountTasksInSection(tasks, "Blocked"))
	fmt.Printf("  Completed:   %d\n", session.CountTasksInSection(tasks, "Completed"))
	for _, task := range session.TasksInSection(tasks, "In Progress") {
		fmt.Printf("  %s\n", task)
	}

	lastRaw, err := w.Store.ReadContextFile(w.Root, session.LastSessionSummaryFile)
	if err != nil {
		FatalError("reading %s: %v", session.LastSessionSummaryFile, err)
	}
	last := session.ParseLastSession(lastRaw)

	fmt.Println()
	ui.Header("Last Session")
	if last.SessionID == "" {
		fmt.Println("  No sessions yet.")
	} else {
		fmt.Printf("  ID:     %s\n", last.SessionID)
		fmt.Printf("  Date:   %s\n", last.Date)
		fmt.Printf("  Status: %s\n", last.Status)
		if last.Summary != "" {
			fmt.Printf("  %s\n", last.Summary)
		}
	}

	decisionsRaw, err := w.Store.ReadContextFile(w.Root, session.RecentDecisionsFile)
	if err != nil {
		FatalError("reading %s: %v", session.RecentDecisionsFile, err)
	}
	if decisions := session.RecentDecisions(decisionsRaw, 5); len(decisions) > 0 {
		fmt.Println()
		ui.Header("Recent Decisions")
		for _, d := range decisions {
			fmt.Printf("  %s\n", d)
		}
	}

	conventionsRaw, err := w.Store.ReadContextFile(w.Root, session.ConventionsFile)
	if err != nil {
		FatalError("reading %s: %v", session.ConventionsFile, err)
	}
	if conventions := session.KeyConventions(conventionsRaw, 5); len(conventions) > 0 {
		fmt.Println()
		ui.Header("Key Conventions")
		for _, c := range conventions {
			fmt.Printf("  • %s\n", c)
		}
	}
}
