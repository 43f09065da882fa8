package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/plan"
	"github.com/plankeep/plankeep/internal/ui"
)

var finishSessionID string

// finishCmd closes the current session with a summary.
var finishCmd = &cobra.Command{
	Use:   "finish <summary>",
	Short: "Finish the session and write its summary",
	Long: `Finish a session: fills in the summary document, updates
LAST_SESSION_SUMMARY.md, and moves the task from in progress to
completed.

Write a real summary — the next session reads it to recover context.

Example:
  plankeep finish "Implemented OAuth login with tests. Refresh tokens still open."`,
	Args: cobra.MinimumNArgs(1),
	Run:  runFinish,
}

func init() {
	finishCmd.Flags().StringVar(&finishSessionID, "session", "", "Session ID (default: current session)")
	rootCmd.AddCommand(finishCmd)
}

func runFinish(cmd *cobra.Command, args []string) {
	w := loadWorkspace()
	id := w.currentSessionID(finishSessionID)

	summary := strings.Join(args, " ")

	// Final progress, best effort: the plan may have been deleted by hand.
	progress := ""
	if content, err := w.Store.ReadPlan(w.Root, id); err == nil {
		progress = plan.Parse(content).FormatProgress()
	}

	if err := w.Store.Finish(w.Root, id, summary, time.Now()); err != nil {
		FatalError("finishing session %s: %v", id, err)
	}

	ui.Success("Finished session %s", id)
	if progress != "" {
		fmt.Println(ui.Muted("Final progress: " + progress))
	}
}
