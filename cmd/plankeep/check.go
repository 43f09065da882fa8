package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/quality"
	"github.com/plankeep/plankeep/internal/ui"
)

// checkCmd runs the configured quality gate.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the quality gate (format, lint, test)",
	Long: `Run the configured quality steps in order: format, lint, test.

All steps run even when an earlier one fails, so a single run reports
everything that needs fixing. The commands come from .plankeep.yaml;
the defaults are gofmt, go vet, and go test.`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	w := loadWorkspace()

	steps := quality.Steps(w.Cfg)
	if len(steps) == 0 {
		ui.Warn("no quality steps configured")
		return
	}

	results, passed := quality.Run(cmd.Context(), w.Root, steps, os.Stdout)

	fmt.Println()
	for _, r := range results {
		if r.Passed {
			fmt.Printf("  %s %s\n", ui.PassStyle.Render("✓"), r.Step.Name)
		} else {
			fmt.Printf("  %s %s: %v\n", ui.FailStyle.Render("✗"), r.Step.Name, r.Err)
		}
	}

	if !passed {
		FatalError("quality gate failed")
	}
	ui.Success("Quality gate passed")
}
