package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/session"
	"github.com/plankeep/plankeep/internal/ui"
)

var (
	logLevel     string
	logSessionID string
)

// logCmd appends an entry to the current session's execution log.
var logCmd = &cobra.Command{
	Use:   "log <message>",
	Short: "Append an entry to the session execution log",
	Long: `Append a timestamped entry to the current session's execution log.

Levels: info, warning, error, success.

Examples:
  plankeep log "Reproduced the crash with an empty password"
  plankeep log --level success "All tests green"
  plankeep log --level error "Migration fails on SQLite < 3.35"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runLog,
}

func init() {
	logCmd.Flags().StringVarP(&logLevel, "level", "l", "info", "Entry level: info, warning, error, success")
	logCmd.Flags().StringVar(&logSessionID, "session", "", "Session ID (default: current session)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) {
	level := session.LogLevel(logLevel)
	if !session.ValidLevel(level) {
		FatalError("unknown level %q (valid: info, warning, error, success)", logLevel)
	}

	w := loadWorkspace()
	id := w.currentSessionID(logSessionID)

	entry := session.FormatLogEntry(time.Now(), level, strings.Join(args, " "))
	if err := w.Store.AppendExecution(w.Root, id, entry); err != nil {
		FatalError("appending to execution log: %v", err)
	}

	ui.Success("Logged: %s", entry)
}
