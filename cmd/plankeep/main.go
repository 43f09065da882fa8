// plankeep: session-based TDD workflow for AI-assisted development.
//
// Every unit of work is a session with a phased markdown plan, an
// append-only execution log, and a wrap-up summary, all flat files
// under .ai-context/. The same engine is exposed two ways: a CLI for
// humans and an MCP server (plankeep serve) for AI coding tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/config"
	"github.com/plankeep/plankeep/internal/server"
	"github.com/plankeep/plankeep/internal/session"
	"github.com/plankeep/plankeep/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "plankeep",
	Short: "Session-based TDD workflow for AI-assisted development",
	Long: `plankeep keeps AI-assisted coding sessions on the rails.

Each session is a triplet of markdown files under .ai-context/sessions/:
a phased plan checklist, an append-only execution log, and a summary.
Everything is flat text — readable, editable, and diffable by hand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       server.Version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}

// FatalError prints a styled error to stderr and exits non-zero.
func FatalError(format string, args ...any) {
	ui.Error(format, args...)
	os.Exit(1)
}

// workspace bundles the resolved project root, its configuration, and
// the session store most commands need.
type workspace struct {
	Root  string
	Cfg   *config.Config
	Store *session.FileStore
}

// loadWorkspace discovers the project root (walking up from cwd) and
// loads configuration. Config problems are fatal: a malformed
// .plankeep.yaml should never be silently ignored.
func loadWorkspace() *workspace {
	// Root discovery needs the configured context dir, but the config
	// file lives at the root. Resolve with the default dir first, then
	// retry with the configured one if it differs.
	root, err := session.FindRoot(session.DefaultContextDir)
	if err != nil {
		FatalError("finding project root: %v", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		FatalError("loading config: %v", err)
	}
	if cfg.SessionsDir != session.DefaultContextDir {
		if r, err := session.FindRoot(cfg.SessionsDir); err == nil {
			root = r
		}
	}
	return &workspace{
		Root:  root,
		Cfg:   cfg,
		Store: &session.FileStore{ContextDir: cfg.SessionsDir},
	}
}

// currentSessionID resolves the session to operate on: the --session
// flag value when set, otherwise the newest session. Fatal when the
// project has no sessions yet.
func (w *workspace) currentSessionID(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	current, ok, err := w.Store.Current(w.Root)
	if err != nil {
		FatalError("finding current session: %v", err)
	}
	if !ok {
		FatalError("no active session — run `plankeep start <task>` first")
	}
	return current.ID
}

// printProgress writes the standard progress line for a plan.
func printProgress(progress string) {
	fmt.Println(ui.Muted("Progress: " + progress))
}
