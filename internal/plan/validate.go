package plan

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors carry user-facing messages: callers print them and
// abort, nothing retries. A nil error means the input is valid.

// ValidateItemNotEmpty rejects empty or whitespace-only item text.
func ValidateItemNotEmpty(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("item text cannot be empty or whitespace-only; provide meaningful item text")
	}
	return nil
}

// ValidatePhaseExists checks that some "### Phase" heading contains phase
// as a case-insensitive substring. An empty phase means "append to last
// phase" and is always valid. The error message enumerates the available
// phases, or states that the plan has none.
func (d *Document) ValidatePhaseExists(phase string) error {
	if phase == "" {
		return nil
	}

	phaseLower := strings.ToLower(phase)
	var available []string
	for _, line := range d.lines {
		if !strings.HasPrefix(line, phasePrefix) {
			continue
		}
		available = append(available, strings.TrimSpace(line))
		if strings.Contains(strings.ToLower(line), phaseLower) {
			return nil
		}
	}

	if len(available) == 0 {
		return fmt.Errorf(
			"phase %q does not exist: no phases found in plan; add a phase first",
			phase,
		)
	}

	return fmt.Errorf(
		"phase %q does not exist in plan\n\nAvailable phases:\n  • %s\n\nAdd it as a new phase, or choose an existing one",
		phase, strings.Join(available, "\n  • "),
	)
}

// ValidateNoDuplicate rejects a new item whose normalized text exactly
// equals an existing item's normalized text. Normalization lowercases,
// collapses runs of whitespace to single spaces, and trims — so "Write
// Tests" duplicates "write   tests". Substring overlap is fine; only
// exact matches after normalization are duplicates.
func (d *Document) ValidateNoDuplicate(text string) error {
	candidate := normalizeItem(text)

	for _, existing := range d.Items() {
		if normalizeItem(existing) == candidate {
			return fmt.Errorf(
				"item %q already exists in plan; rename it to modify or remove it to delete",
				text,
			)
		}
	}
	return nil
}

// normalizeItem lowercases and collapses whitespace for duplicate checks.
func normalizeItem(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
