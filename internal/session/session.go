// Package session manages the on-disk lifecycle of work sessions. Each
// session is a triplet of markdown files under <root>/.ai-context/sessions/:
//
//	<id>-PLAN-<slug>.md       the phased checklist driving the work
//	<id>-EXECUTION-<slug>.md  an append-only progress log
//	<id>-SUMMARY-<slug>.md    the wrap-up written when the session ends
//
// Session IDs are timestamps (20060102150405), so lexicographic order is
// chronological order and "the current session" is simply the newest ID.
// Everything is flat text on disk — no database, no locking; concurrent
// invocations racing on the same file are a known, accepted hazard for
// this single-user tool.
package session

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultContextDir is the per-project directory holding sessions
	// and shared context files.
	DefaultContextDir = ".ai-context"

	// maxSlugLen bounds slug length so filenames stay manageable.
	maxSlugLen = 50

	// idFormat is the timestamp layout used for session IDs.
	idFormat = "20060102150405"

	// stampFormat is the human-readable timestamp used inside files.
	stampFormat = "2006-01-02 15:04:05"
)

// Session identifies one unit of work.
type Session struct {
	// ID is the timestamp-derived identifier, e.g. "20251102150000".
	ID string
	// Slug is the filename-safe task name, e.g. "add-user-auth".
	Slug string
}

// Files holds the absolute paths of a session's document triplet.
type Files struct {
	Plan      string
	Execution string
	Summary   string
}

// NewID derives a session ID from the given time.
func NewID(t time.Time) string {
	return t.Format(idFormat)
}

// Timestamp formats t the way session files record times.
func Timestamp(t time.Time) string {
	return t.Format(stampFormat)
}

// Slugify converts a task name into a filename-safe slug: lowercase,
// letters and digits only, runs of separators collapsed to single
// hyphens, truncated at a word boundary where possible.
func Slugify(name string) string {
	if strings.TrimSpace(name) == "" {
		return "unnamed-task"
	}

	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '_' || r == '-':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "unnamed-task"
	}
	if len(slug) <= maxSlugLen {
		return slug
	}

	// Cut at the last hyphen before the limit to avoid mid-word cuts.
	cut := slug[:maxSlugLen]
	if i := strings.LastIndex(cut, "-"); i > 0 {
		cut = cut[:i]
	}
	return strings.Trim(cut, "-")
}

// LogLevel classifies execution-log entries.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
	LevelSuccess LogLevel = "success"
)

// Emoji returns the marker recorded next to entries of this level.
// Unknown levels fall back to the info marker.
func (l LogLevel) Emoji() string {
	switch l {
	case LevelWarning:
		return "⚠️"
	case LevelError:
		return "❌"
	case LevelSuccess:
		return "✅"
	default:
		return "📝"
	}
}

// ValidLevel reports whether l is one of the known log levels.
func ValidLevel(l LogLevel) bool {
	switch l {
	case LevelInfo, LevelWarning, LevelError, LevelSuccess:
		return true
	}
	return false
}

// FormatLogEntry renders an execution-log line: "[ts] <emoji> <message>".
func FormatLogEntry(t time.Time, level LogLevel, message string) string {
	return fmt.Sprintf("[%s] %s %s", Timestamp(t), level.Emoji(), message)
}

// TaskNameFromPlan extracts the task name from a PLAN's first-line
// heading "# Task Plan: <name>". When the heading is missing it falls
// back to the slug with hyphens expanded and words title-cased, so a
// session always has a displayable name.
func TaskNameFromPlan(planContent, slug string) string {
	for _, line := range strings.Split(planContent, "\n") {
		if name, ok := strings.CutPrefix(line, "# Task Plan:"); ok {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				return trimmed
			}
		}
	}

	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
