// Package quality runs the project's configured quality-gate commands
// (format, lint, test) and aggregates their results. It is thin
// subprocess glue: the commands themselves come from configuration and
// their output streams straight through to the user.
package quality

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/plankeep/plankeep/internal/config"
)

// Step is one named quality command.
type Step struct {
	Name string
	Argv []string
}

// Result records the outcome of one step.
type Result struct {
	Step   Step
	Passed bool
	Err    error
}

// Steps builds the ordered step list from configuration, skipping
// concerns with no command configured.
func Steps(cfg *config.Config) []Step {
	var steps []Step
	add := func(name string, argv []string) {
		if len(argv) > 0 {
			steps = append(steps, Step{Name: name, Argv: argv})
		}
	}
	add("format", cfg.Quality.Format)
	add("lint", cfg.Quality.Lint)
	add("test", cfg.Quality.Test)
	return steps
}

// Run executes every step in order, from dir, streaming output to out.
// All steps run even when earlier ones fail, so one invocation reports
// everything that is broken. Passed is true only when every step passed.
func Run(ctx context.Context, dir string, steps []Step, out io.Writer) (results []Result, passed bool) {
	passed = true
	for _, step := range steps {
		fmt.Fprintf(out, "→ %s: %v\n", step.Name, step.Argv)

		cmd := exec.CommandContext(ctx, step.Argv[0], step.Argv[1:]...)
		cmd.Dir = dir
		cmd.Stdout = out
		cmd.Stderr = out

		err := cmd.Run()
		results = append(results, Result{Step: step, Passed: err == nil, Err: err})
		if err != nil {
			passed = false
			fmt.Fprintf(out, "✗ %s failed: %v\n", step.Name, err)
		} else {
			fmt.Fprintf(out, "✓ %s passed\n", step.Name)
		}
	}
	return results, passed
}
