// Package templates renders the session document triplet from embedded
// markdown templates. Each task type (feature, bugfix, docs, refactor)
// has its own PLAN template with a phase structure suited to that kind
// of work; EXECUTION and SUMMARY share one template each.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

//go:embed files
var templateFS embed.FS

// TaskType selects a PLAN template.
type TaskType string

const (
	Feature  TaskType = "feature"
	Bugfix   TaskType = "bugfix"
	Docs     TaskType = "docs"
	Refactor TaskType = "refactor"
)

// TaskTypes lists the valid task types in stable order.
func TaskTypes() []TaskType {
	return []TaskType{Feature, Bugfix, Docs, Refactor}
}

// ValidateTaskType rejects unknown task types with a message that
// enumerates the valid ones.
func ValidateTaskType(t TaskType) error {
	for _, valid := range TaskTypes() {
		if t == valid {
			return nil
		}
	}

	names := make([]string, 0, len(TaskTypes()))
	for _, v := range TaskTypes() {
		names = append(names, string(v))
	}
	sort.Strings(names)
	return fmt.Errorf("unknown task type %q; valid types: %s", t, strings.Join(names, ", "))
}

// SessionData carries the variables substituted into every template.
type SessionData struct {
	SessionID string
	TaskName  string
	TaskType  TaskType
	Timestamp string
}

// Renderer renders session documents from the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates. Failure here means the
// binary itself is broken, not user error.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "files/*.md")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// RenderPlan renders the PLAN document for the given task type.
func (r *Renderer) RenderPlan(t TaskType, data SessionData) (string, error) {
	if err := ValidateTaskType(t); err != nil {
		return "", err
	}
	return r.render(fmt.Sprintf("plan_%s.md", t), data)
}

// RenderExecution renders the initial EXECUTION log.
func (r *Renderer) RenderExecution(data SessionData) (string, error) {
	return r.render("execution.md", data)
}

// RenderSummary renders the initial SUMMARY document.
func (r *Renderer) RenderSummary(data SessionData) (string, error) {
	return r.render("summary.md", data)
}

func (r *Renderer) render(name string, data SessionData) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
