package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Shared context files live directly under the context directory and
// carry state across sessions. They are plain markdown, edited both by
// this tool and by hand.
const (
	ActiveTasksFile        = "ACTIVE_TASKS.md"
	LastSessionSummaryFile = "LAST_SESSION_SUMMARY.md"
	RecentDecisionsFile    = "RECENT_DECISIONS.md"
	ConventionsFile        = "CONVENTIONS.md"
)

// seedContent is written when a context file is first created.
var seedContent = map[string]string{
	ActiveTasksFile:        "# Active Tasks\n\n## In Progress\n\n## Blocked\n\n## Completed\n",
	LastSessionSummaryFile: "# Last Session Summary\n\nNo sessions yet.\n",
	RecentDecisionsFile:    "# Recent Decisions\n",
	ConventionsFile:        "# Conventions\n",
}

// FindRoot walks up from the current working directory looking for an
// existing context directory. If none is found it returns cwd — the
// caller decides whether that is acceptable.
func FindRoot(contextDir string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, contextDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

// ensureContext creates the context directory tree and seeds any missing
// context files. Existing files are never touched.
func (fs *FileStore) ensureContext(root string) error {
	dirs := []string{
		fs.SessionsPath(root),
		filepath.Join(fs.SessionsPath(root), "archive"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	for name, seed := range seedContent {
		path := filepath.Join(fs.ContextPath(root), name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
			return fmt.Errorf("seeding %s: %w", name, err)
		}
	}
	return nil
}

// ReadContextFile returns the content of a shared context file, or empty
// string when it doesn't exist (absence is not an error — the file just
// hasn't been created yet).
func (fs *FileStore) ReadContextFile(root, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(fs.ContextPath(root), name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

// addActiveTask appends "- <name> (session: <id>)" under the In Progress
// section of ACTIVE_TASKS.md, creating the file if missing.
func (fs *FileStore) addActiveTask(root, taskName, id string) error {
	path := filepath.Join(fs.ContextPath(root), ActiveTasksFile)

	content, err := fs.ReadContextFile(root, ActiveTasksFile)
	if err != nil {
		return err
	}
	if content == "" {
		content = seedContent[ActiveTasksFile]
	}

	entry := fmt.Sprintf("- %s (session: %s)", taskName, id)
	updated, ok := insertUnderSection(content, "## In Progress", entry)
	if !ok {
		updated = strings.TrimRight(content, "\n") + "\n\n## In Progress\n\n" + entry + "\n"
	}

	return os.WriteFile(path, []byte(updated), 0o644)
}

// completeActiveTask moves the entry referencing a session ID from
// wherever it is to the Completed section. A session with no entry is
// left alone.
func (fs *FileStore) completeActiveTask(root, id string) error {
	content, err := fs.ReadContextFile(root, ActiveTasksFile)
	if err != nil || content == "" {
		return err
	}

	lines := strings.Split(content, "\n")
	entry := ""
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-") && strings.Contains(line, id) {
			entry = strings.TrimSpace(line)
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	if entry == "" {
		return nil
	}

	updated, ok := insertUnderSection(strings.Join(lines, "\n"), "## Completed", entry)
	if !ok {
		updated = strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n\n## Completed\n\n" + entry + "\n"
	}

	path := filepath.Join(fs.ContextPath(root), ActiveTasksFile)
	return os.WriteFile(path, []byte(updated), 0o644)
}

// insertUnderSection places entry on the first line after the given
// "## <section>" heading (skipping one optional blank line). Returns
// false when the heading is absent.
func insertUnderSection(content, heading, entry string) (string, bool) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != heading {
			continue
		}
		insert := i + 1
		if insert < len(lines) && strings.TrimSpace(lines[insert]) == "" {
			insert++
		}
		lines = append(lines, "")
		copy(lines[insert+1:], lines[insert:])
		lines[insert] = entry
		return strings.Join(lines, "\n"), true
	}
	return content, false
}

// --- Context summary queries ---

var (
	decisionRe   = regexp.MustCompile(`##\s+\[([\d\-: ]+)\]\s+([^\n]+)`)
	conventionRe = regexp.MustCompile(`###\s+([^\n]+)`)
	bulletRe     = regexp.MustCompile(`^\s*[-*]\s+`)
	fieldRes     = map[string]*regexp.Regexp{
		"session_id": regexp.MustCompile(`\*\*Session ID\*\*:\s*(\d+)`),
		"date":       regexp.MustCompile(`\*\*Date\*\*:\s*([^\n]+)`),
		"status":     regexp.MustCompile(`\*\*Status\*\*:\s*([^\n]+)`),
	}
	summaryLineRe = regexp.MustCompile(`##\s+Summary\s*\n([^\n]+)`)
)

// CountTasksInSection counts bullet entries under a "## <section>"
// heading of ACTIVE_TASKS.md content. An absent section counts zero.
func CountTasksInSection(content, section string) int {
	body := sectionBody(content, section)
	count := 0
	for _, line := range strings.Split(body, "\n") {
		if bulletRe.MatchString(line) {
			count++
		}
	}
	return count
}

// TasksInSection returns the bullet entries under a "## <section>"
// heading, trimmed.
func TasksInSection(content, section string) []string {
	var tasks []string
	for _, line := range strings.Split(sectionBody(content, section), "\n") {
		if bulletRe.MatchString(line) {
			tasks = append(tasks, strings.TrimSpace(line))
		}
	}
	return tasks
}

// sectionBody extracts the text between "## <section>" and the next "##"
// heading or end of content.
func sectionBody(content, section string) string {
	lines := strings.Split(content, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "## "+section {
			start = i + 1
			break
		}
	}
	if start == -1 {
		return ""
	}
	end := len(lines)
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "##") {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

// RecentDecisions extracts up to n "[timestamp] title" summaries from
// RECENT_DECISIONS.md content, newest entries first in file order.
func RecentDecisions(content string, n int) []string {
	var decisions []string
	for _, m := range decisionRe.FindAllStringSubmatch(content, -1) {
		decisions = append(decisions, fmt.Sprintf("[%s] %s", m[1], m[2]))
		if len(decisions) == n {
			break
		}
	}
	return decisions
}

// KeyConventions extracts up to n convention titles (### headings) from
// CONVENTIONS.md content.
func KeyConventions(content string, n int) []string {
	var conventions []string
	for _, m := range conventionRe.FindAllStringSubmatch(content, -1) {
		conventions = append(conventions, strings.TrimSpace(m[1]))
		if len(conventions) == n {
			break
		}
	}
	return conventions
}

// LastSessionInfo summarizes LAST_SESSION_SUMMARY.md content.
type LastSessionInfo struct {
	SessionID string
	Date      string
	Status    string
	Summary   string
}

// ParseLastSession extracts the structured fields of a last-session
// summary. Missing fields stay empty.
func ParseLastSession(content string) LastSessionInfo {
	info := LastSessionInfo{}
	if m := fieldRes["session_id"].FindStringSubmatch(content); m != nil {
		info.SessionID = m[1]
	}
	if m := fieldRes["date"].FindStringSubmatch(content); m != nil {
		info.Date = strings.TrimSpace(m[1])
	}
	if m := fieldRes["status"].FindStringSubmatch(content); m != nil {
		info.Status = strings.TrimSpace(m[1])
	}
	if m := summaryLineRe.FindStringSubmatch(content); m != nil {
		info.Summary = strings.TrimSpace(m[1])
	}
	return info
}
