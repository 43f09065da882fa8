package session

import (
	"strings"
	"testing"
	"time"
)

// --- IDs and timestamps ---

func TestNewID(t *testing.T) {
	ts := time.Date(2025, 11, 2, 15, 0, 0, 0, time.UTC)
	if got := NewID(ts); got != "20251102150000" {
		t.Errorf("NewID = %q, want 20251102150000", got)
	}
}

func TestNewID_OrdersChronologically(t *testing.T) {
	earlier := NewID(time.Date(2025, 11, 2, 15, 0, 0, 0, time.UTC))
	later := NewID(time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))
	if !(earlier < later) {
		t.Errorf("IDs must sort chronologically: %q vs %q", earlier, later)
	}
}

// --- Slugify ---

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Add user authentication", "add-user-authentication"},
		{"Fix  crash  on   startup!", "fix-crash-on-startup"},
		{"already-a-slug", "already-a-slug"},
		{"", "unnamed-task"},
		{"   ", "unnamed-task"},
		{"!!!", "unnamed-task"},
		{"MiXeD CaSe", "mixed-case"},
		{"under_scores_too", "under-scores-too"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("word ", 30)
	slug := Slugify(long)
	if len(slug) > maxSlugLen {
		t.Errorf("slug too long: %d chars", len(slug))
	}
	if strings.HasSuffix(slug, "-") {
		t.Errorf("slug ends with hyphen: %q", slug)
	}
}

// --- Log entries ---

func TestFormatLogEntry(t *testing.T) {
	ts := time.Date(2025, 11, 2, 15, 4, 5, 0, time.UTC)
	got := FormatLogEntry(ts, LevelSuccess, "All tests passing")
	want := "[2025-11-02 15:04:05] ✅ All tests passing"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogLevel_UnknownFallsBackToInfo(t *testing.T) {
	if LogLevel("bogus").Emoji() != LevelInfo.Emoji() {
		t.Error("unknown level should use the info marker")
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []LogLevel{LevelInfo, LevelWarning, LevelError, LevelSuccess} {
		if !ValidLevel(l) {
			t.Errorf("%q should be valid", l)
		}
	}
	if ValidLevel("debug") {
		t.Error("debug is not a known level")
	}
}

// --- TaskNameFromPlan ---

func TestTaskNameFromPlan_FromHeading(t *testing.T) {
	plan := "# Task Plan: Add User Auth\n\n- [ ] something\n"
	if got := TaskNameFromPlan(plan, "add-user-auth"); got != "Add User Auth" {
		t.Errorf("got %q", got)
	}
}

func TestTaskNameFromPlan_FallsBackToSlug(t *testing.T) {
	plan := "# Some other heading\n"
	if got := TaskNameFromPlan(plan, "add-user-auth"); got != "Add User Auth" {
		t.Errorf("got %q", got)
	}
}
