package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store defines the persistence interface for sessions. Abstracted for
// testability; the filesystem implementation is the only production one.
type Store interface {
	Create(root string, s Session, plan, execution, summary string) error
	Current(root string) (Session, bool, error)
	Recent(root string, n int) ([]Session, error)
	Files(root string, id string) (Files, error)
	ReadPlan(root, id string) (string, error)
	WritePlan(root, id, content string) error
	AppendExecution(root, id, entry string) error
	Finish(root, id, summary string, now time.Time) error
}

// FileStore implements Store on the local filesystem.
type FileStore struct {
	// ContextDir is the per-project context directory name,
	// DefaultContextDir unless overridden by configuration.
	ContextDir string
}

// NewFileStore creates a filesystem-backed session store using the
// default context directory.
func NewFileStore() *FileStore {
	return &FileStore{ContextDir: DefaultContextDir}
}

// ContextPath returns the absolute path of the context directory.
func (fs *FileStore) ContextPath(root string) string {
	return filepath.Join(root, fs.ContextDir)
}

// SessionsPath returns the absolute path of the sessions directory.
func (fs *FileStore) SessionsPath(root string) string {
	return filepath.Join(fs.ContextPath(root), "sessions")
}

// sessionFile builds the path of one document of a session triplet.
func (fs *FileStore) sessionFile(root string, s Session, kind string) string {
	name := fmt.Sprintf("%s-%s-%s.md", s.ID, kind, s.Slug)
	return filepath.Join(fs.SessionsPath(root), name)
}

// Create writes a session's document triplet and registers the task in
// ACTIVE_TASKS.md, creating the context directory structure as needed.
func (fs *FileStore) Create(root string, s Session, plan, execution, summary string) error {
	if err := fs.ensureContext(root); err != nil {
		return err
	}

	writes := []struct {
		path    string
		content string
	}{
		{fs.sessionFile(root, s, "PLAN"), plan},
		{fs.sessionFile(root, s, "EXECUTION"), execution},
		{fs.sessionFile(root, s, "SUMMARY"), summary},
	}
	for _, w := range writes {
		if err := os.WriteFile(w.path, []byte(w.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", w.path, err)
		}
	}

	taskName := TaskNameFromPlan(plan, s.Slug)
	if err := fs.addActiveTask(root, taskName, s.ID); err != nil {
		return fmt.Errorf("registering task: %w", err)
	}
	return nil
}

// list returns all sessions found on disk, newest first. A session is
// recognized by its PLAN file; stray files are ignored.
func (fs *FileStore) list(root string) ([]Session, error) {
	entries, err := os.ReadDir(fs.SessionsPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sessions directory: %w", err)
	}

	var sessions []Session
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		s, ok := parseSessionFilename(e.Name())
		if ok {
			sessions = append(sessions, s)
		}
	}

	// Timestamp IDs: lexicographic descending = newest first.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID > sessions[j].ID
	})
	return sessions, nil
}

// parseSessionFilename extracts a Session from "<id>-PLAN-<slug>.md".
func parseSessionFilename(name string) (Session, bool) {
	base, ok := strings.CutSuffix(name, ".md")
	if !ok {
		return Session{}, false
	}
	id, rest, ok := strings.Cut(base, "-PLAN-")
	if !ok || id == "" || rest == "" {
		return Session{}, false
	}
	return Session{ID: id, Slug: rest}, true
}

// Current returns the most recent session, or false when none exists.
func (fs *FileStore) Current(root string) (Session, bool, error) {
	sessions, err := fs.list(root)
	if err != nil {
		return Session{}, false, err
	}
	if len(sessions) == 0 {
		return Session{}, false, nil
	}
	return sessions[0], true, nil
}

// Recent returns up to n sessions, newest first.
func (fs *FileStore) Recent(root string, n int) ([]Session, error) {
	sessions, err := fs.list(root)
	if err != nil {
		return nil, err
	}
	if len(sessions) > n {
		sessions = sessions[:n]
	}
	return sessions, nil
}

// resolve finds the session with the given ID.
func (fs *FileStore) resolve(root, id string) (Session, error) {
	sessions, err := fs.list(root)
	if err != nil {
		return Session{}, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return Session{}, fmt.Errorf("session %q not found", id)
}

// Files returns the document paths for a session ID.
func (fs *FileStore) Files(root, id string) (Files, error) {
	s, err := fs.resolve(root, id)
	if err != nil {
		return Files{}, err
	}
	return Files{
		Plan:      fs.sessionFile(root, s, "PLAN"),
		Execution: fs.sessionFile(root, s, "EXECUTION"),
		Summary:   fs.sessionFile(root, s, "SUMMARY"),
	}, nil
}

// ReadPlan reads a session's PLAN content.
func (fs *FileStore) ReadPlan(root, id string) (string, error) {
	files, err := fs.Files(root, id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(files.Plan)
	if err != nil {
		return "", fmt.Errorf("reading plan: %w", err)
	}
	return string(data), nil
}

// WritePlan overwrites a session's PLAN content. The whole document is
// rewritten — mutations never do partial writes.
func (fs *FileStore) WritePlan(root, id, content string) error {
	files, err := fs.Files(root, id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(files.Plan, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}

// AppendExecution appends one pre-formatted entry line to the session's
// EXECUTION log.
func (fs *FileStore) AppendExecution(root, id, entry string) error {
	files, err := fs.Files(root, id)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(files.Execution, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening execution log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(entry + "\n"); err != nil {
		return fmt.Errorf("appending to execution log: %w", err)
	}
	return nil
}

// Finish closes a session: records the summary in the SUMMARY document,
// rewrites LAST_SESSION_SUMMARY.md, and moves the task from In Progress
// to Completed in ACTIVE_TASKS.md.
func (fs *FileStore) Finish(root, id, summary string, now time.Time) error {
	s, err := fs.resolve(root, id)
	if err != nil {
		return err
	}
	files, err := fs.Files(root, id)
	if err != nil {
		return err
	}

	planContent, err := os.ReadFile(files.Plan)
	if err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}
	taskName := TaskNameFromPlan(string(planContent), s.Slug)

	if err := fs.writeSummary(files.Summary, summary); err != nil {
		return err
	}

	last := fmt.Sprintf(
		"# Last Session Summary\n\n**Session ID**: %s\n**Date**: %s\n**Task**: %s\n**Status**: ✅ Completed\n\n## Summary\n%s\n",
		id, Timestamp(now), taskName, summary,
	)
	lastPath := filepath.Join(fs.ContextPath(root), "LAST_SESSION_SUMMARY.md")
	if err := os.WriteFile(lastPath, []byte(last), 0o644); err != nil {
		return fmt.Errorf("writing last session summary: %w", err)
	}

	if err := fs.completeActiveTask(root, id); err != nil {
		return fmt.Errorf("updating active tasks: %w", err)
	}
	return nil
}

// writeSummary records the summary text in the SUMMARY document,
// replacing the template placeholder when present and appending a
// section otherwise.
func (fs *FileStore) writeSummary(path, summary string) error {
	const placeholder = "[To be filled at end of session]"

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading summary: %w", err)
	}

	content := string(data)
	if strings.Contains(content, placeholder) {
		content = strings.Replace(content, placeholder, summary, 1)
	} else {
		content = strings.TrimRight(content, "\n") + "\n\n## Summary\n\n" + summary + "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
