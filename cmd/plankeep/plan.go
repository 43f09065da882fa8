package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/plan"
	"github.com/plankeep/plankeep/internal/ui"
)

var (
	planShow      bool
	planUncheck   bool
	planAdd       string
	planRemove    string
	planRename    string
	planRenameTo  string
	planAddPhase  string
	planPhase     string
	planItems     []string
	planSessionID string
)

// planCmd views and edits the current session's plan checklist.
var planCmd = &cobra.Command{
	Use:   "plan [item]",
	Short: "View and edit the session plan checklist",
	Long: `View and edit the current session's plan checklist.

With an item argument, checks off the first checklist item whose text
contains the argument (case-insensitive). When no item matches, the
closest candidates are suggested.

Examples:
  plankeep plan "failing test"                 # check an item off
  plankeep plan --uncheck "failing test"       # back it out
  plankeep plan --show                         # render the whole plan
  plankeep plan --show --phase "Phase 2"       # render one phase
  plankeep plan --add "Write docs" --phase "Phase 3"
  plankeep plan --remove "obsolete step"
  plankeep plan --rename "old text" --to "new text"
  plankeep plan --add-phase "Phase 4: Cleanup" --item "Remove dead code"`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planShow, "show", false, "Show the plan with progress")
	planCmd.Flags().BoolVar(&planUncheck, "uncheck", false, "Uncheck the item instead of checking it")
	planCmd.Flags().StringVar(&planAdd, "add", "", "Add a new unchecked item")
	planCmd.Flags().StringVar(&planRemove, "remove", "", "Remove the first item matching this text")
	planCmd.Flags().StringVar(&planRename, "rename", "", "Rename the first item matching this text")
	planCmd.Flags().StringVar(&planRenameTo, "to", "", "New text for --rename")
	planCmd.Flags().StringVar(&planAddPhase, "add-phase", "", "Append a new phase section")
	planCmd.Flags().StringVar(&planPhase, "phase", "", "Phase name (target for --add, filter for --show)")
	planCmd.Flags().StringArrayVar(&planItems, "item", nil, "Starter item for --add-phase (repeatable)")
	planCmd.Flags().StringVar(&planSessionID, "session", "", "Session ID (default: current session)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) {
	w := loadWorkspace()
	id := w.currentSessionID(planSessionID)

	content, err := w.Store.ReadPlan(w.Root, id)
	if err != nil {
		FatalError("reading plan for session %s: %v", id, err)
	}
	doc := plan.Parse(content)

	switch {
	case planShow:
		showPlan(doc)
		return

	case planAdd != "":
		if err := plan.ValidateItemNotEmpty(planAdd); err != nil {
			FatalError("%v", err)
		}
		if err := doc.ValidateNoDuplicate(planAdd); err != nil {
			FatalError("%v", err)
		}
		if err := doc.ValidatePhaseExists(planPhase); err != nil {
			FatalError("%v", err)
		}
		doc.AddItem(planAdd, planPhase)
		savePlan(w, id, doc)
		ui.Success("Added: %s", planAdd)

	case planRemove != "":
		if !doc.RemoveItem(planRemove) {
			itemNotFound(w, doc, planRemove)
		}
		savePlan(w, id, doc)
		ui.Success("Removed item matching: %s", planRemove)

	case planRename != "":
		if err := plan.ValidateItemNotEmpty(planRenameTo); err != nil {
			FatalError("--to is required with --rename: %v", err)
		}
		if !doc.RenameItem(planRename, planRenameTo) {
			itemNotFound(w, doc, planRename)
		}
		savePlan(w, id, doc)
		ui.Success("Renamed to: %s", planRenameTo)

	case planAddPhase != "":
		doc.AddPhase(planAddPhase, planItems)
		savePlan(w, id, doc)
		ui.Success("Added phase: %s", planAddPhase)

	case len(args) == 1:
		box, found := doc.Check(args[0], !planUncheck)
		if !found {
			itemNotFound(w, doc, args[0])
		}
		savePlan(w, id, doc)
		if planUncheck {
			ui.Success("Unchecked: %s", box.Text)
		} else {
			ui.Success("Checked: %s", box.Text)
		}

	default:
		showPlan(doc)
		return
	}

	printProgress(doc.FormatProgress())
}

// showPlan renders the plan (or one phase of it) to stdout.
func showPlan(doc *plan.Document) {
	content := doc.String()
	if planPhase != "" {
		if err := doc.ValidatePhaseExists(planPhase); err != nil {
			FatalError("%v", err)
		}
		content = doc.PhaseSection(planPhase)
	}
	fmt.Print(ui.RenderMarkdown(content))
	fmt.Println()
	printProgress(doc.FormatProgress())
}

// itemNotFound reports a failed item lookup with fuzzy suggestions and
// exits non-zero.
func itemNotFound(w *workspace, doc *plan.Document, query string) {
	ui.Error("item %q not found in plan", query)

	matches := plan.SimilarItems(query, doc.Items(), w.Cfg.FuzzyThreshold)
	if len(matches) > 3 {
		matches = matches[:3]
	}
	if len(matches) > 0 {
		fmt.Fprintln(os.Stderr, "\nDid you mean:")
		for i, m := range matches {
			fmt.Fprintf(os.Stderr, "  %d. %s %s\n", i+1, m.Text, ui.Muted(fmt.Sprintf("(%.0f%% match)", m.Score*100)))
		}
	}
	os.Exit(1)
}

// savePlan writes the document back to the session's plan file.
func savePlan(w *workspace, id string, doc *plan.Document) {
	if err := w.Store.WritePlan(w.Root, id, doc.String()); err != nil {
		FatalError("writing plan: %v", err)
	}
}
