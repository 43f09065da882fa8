package quality

import (
	"context"
	"strings"
	"testing"

	"github.com/plankeep/plankeep/internal/config"
)

// --- Steps ---

func TestSteps_FromConfig(t *testing.T) {
	cfg := config.Default()
	steps := Steps(cfg)

	if len(steps) != 3 {
		t.Fatalf("len(steps) = %d, want 3", len(steps))
	}
	if steps[0].Name != "format" || steps[1].Name != "lint" || steps[2].Name != "test" {
		t.Errorf("unexpected step order: %v", steps)
	}
}

func TestSteps_SkipsEmptyCommands(t *testing.T) {
	cfg := config.Default()
	cfg.Quality.Format = nil
	cfg.Quality.Lint = nil

	steps := Steps(cfg)
	if len(steps) != 1 || steps[0].Name != "test" {
		t.Errorf("steps = %v, want only test", steps)
	}
}

// --- Run ---

func TestRun_AllPass(t *testing.T) {
	steps := []Step{
		{Name: "first", Argv: []string{"true"}},
		{Name: "second", Argv: []string{"true"}},
	}

	var out strings.Builder
	results, passed := Run(context.Background(), t.TempDir(), steps, &out)

	if !passed {
		t.Errorf("passed = false, output:\n%s", out.String())
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("step %s failed: %v", r.Step.Name, r.Err)
		}
	}
}

func TestRun_FailureDoesNotStopLaterSteps(t *testing.T) {
	steps := []Step{
		{Name: "failing", Argv: []string{"false"}},
		{Name: "passing", Argv: []string{"true"}},
	}

	var out strings.Builder
	results, passed := Run(context.Background(), t.TempDir(), steps, &out)

	if passed {
		t.Error("passed = true despite a failing step")
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (later steps must still run)", len(results))
	}
	if results[0].Passed {
		t.Error("failing step reported as passed")
	}
	if !results[1].Passed {
		t.Error("passing step reported as failed")
	}
}

func TestRun_MissingBinaryIsAFailure(t *testing.T) {
	steps := []Step{{Name: "ghost", Argv: []string{"plankeep-no-such-binary-xyzzy"}}}

	var out strings.Builder
	_, passed := Run(context.Background(), t.TempDir(), steps, &out)
	if passed {
		t.Error("a missing binary should fail the run")
	}
}
