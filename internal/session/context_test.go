package session

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleActiveTasks = `# Active Tasks

## In Progress

- Add auth (session: 20251102150000)
- Fix parser (session: 20251101090000)

## Blocked

- Waiting on API keys

## Completed

- Bootstrap repo (session: 20251031080000)
`

// --- Section queries ---

func TestCountTasksInSection(t *testing.T) {
	tests := []struct {
		section string
		want    int
	}{
		{"In Progress", 2},
		{"Blocked", 1},
		{"Completed", 1},
		{"Nonexistent", 0},
	}
	for _, tt := range tests {
		if got := CountTasksInSection(sampleActiveTasks, tt.section); got != tt.want {
			t.Errorf("CountTasksInSection(%q) = %d, want %d", tt.section, got, tt.want)
		}
	}
}

func TestTasksInSection(t *testing.T) {
	tasks := TasksInSection(sampleActiveTasks, "In Progress")
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	if tasks[0] != "- Add auth (session: 20251102150000)" {
		t.Errorf("tasks[0] = %q", tasks[0])
	}
}

// --- Decisions / conventions ---

func TestRecentDecisions(t *testing.T) {
	content := `# Recent Decisions

## [2025-11-02 10:00] Use cobra for the CLI

Rationale here.

## [2025-11-01 16:00] Keep sessions as flat files

More rationale.

## [2025-10-30 09:00] Older decision
`
	decisions := RecentDecisions(content, 2)
	if len(decisions) != 2 {
		t.Fatalf("len = %d, want 2", len(decisions))
	}
	if decisions[0] != "[2025-11-02 10:00] Use cobra for the CLI" {
		t.Errorf("decisions[0] = %q", decisions[0])
	}
}

func TestRecentDecisions_Empty(t *testing.T) {
	if got := RecentDecisions("# Recent Decisions\n", 3); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestKeyConventions(t *testing.T) {
	content := `# Conventions

### Always run tests before committing

### Table-driven tests for pure functions

### Error messages start lowercase
`
	conventions := KeyConventions(content, 2)
	if len(conventions) != 2 {
		t.Fatalf("len = %d, want 2", len(conventions))
	}
	if conventions[0] != "Always run tests before committing" {
		t.Errorf("conventions[0] = %q", conventions[0])
	}
}

// --- ParseLastSession ---

func TestParseLastSession(t *testing.T) {
	content := `# Last Session Summary

**Session ID**: 20251102150000
**Date**: 2025-11-02 18:00:00
**Status**: ✅ Completed

## Summary
Implemented the auth flow end to end.
`
	info := ParseLastSession(content)
	if info.SessionID != "20251102150000" {
		t.Errorf("SessionID = %q", info.SessionID)
	}
	if info.Date != "2025-11-02 18:00:00" {
		t.Errorf("Date = %q", info.Date)
	}
	if info.Status != "✅ Completed" {
		t.Errorf("Status = %q", info.Status)
	}
	if info.Summary != "Implemented the auth flow end to end." {
		t.Errorf("Summary = %q", info.Summary)
	}
}

func TestParseLastSession_MissingFieldsStayEmpty(t *testing.T) {
	info := ParseLastSession("# Last Session Summary\n\nNo sessions yet.\n")
	if info.SessionID != "" || info.Date != "" || info.Status != "" || info.Summary != "" {
		t.Errorf("expected zero value, got %+v", info)
	}
}

// --- FindRoot ---

func TestFindRoot_WalksUpToContextDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, DefaultContextDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer func() { _ = os.Chdir(orig) }()

	if err := os.Chdir(nested); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	found, err := FindRoot(DefaultContextDir)
	if err != nil {
		t.Fatalf("FindRoot: %v", err)
	}
	// Resolve symlinks: macOS TempDir lives behind /private.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("FindRoot = %s, want %s", found, root)
	}
}

func TestFindRoot_NoContextDirReturnsCwd(t *testing.T) {
	dir := t.TempDir()

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer func() { _ = os.Chdir(orig) }()

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	found, err := FindRoot(DefaultContextDir)
	if err != nil {
		t.Fatalf("FindRoot: %v", err)
	}
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("FindRoot = %s, want cwd %s", found, dir)
	}
}
