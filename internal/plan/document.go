// Package plan implements the checklist document engine for session PLAN
// files. A plan is a markdown document containing phase headings
// ("### Phase N: <name>") and task-list items ("- [ ] text" / "- [x] text").
//
// The model is deliberately line-oriented: a Document is an ordered
// sequence of lines, operations work directly over that sequence, and
// serialization joins with newlines. Lines that match neither pattern are
// preserved verbatim, so a parse → serialize round trip with no mutation
// is byte-identical.
//
// All lookups signal absence via return values. Nothing in this package
// panics on malformed input — a line that doesn't match the checkbox or
// phase pattern is simply ignored.
package plan

import (
	"fmt"
	"regexp"
	"strings"
)

// phasePrefix marks a phase heading. Anything after "### Phase" is the
// phase's display text.
const phasePrefix = "### Phase"

var (
	// checkboxRe matches a task-list line and captures its state marker.
	checkboxRe = regexp.MustCompile(`^\s*-\s*\[([ x])\]`)

	// checkboxTextRe additionally captures the item text after the marker.
	checkboxTextRe = regexp.MustCompile(`^(\s*-\s*\[[ x]\])\s*(.*)$`)

	// markerRe matches the checkbox marker itself, for in-line replacement.
	markerRe = regexp.MustCompile(`\[([ x])\]`)
)

// Document is an in-memory plan file, held as its ordered lines. It is
// constructed fresh from file content for each operation and discarded
// after serialization — there is no cross-call state beyond the file.
type Document struct {
	lines []string
}

// Parse builds a Document from raw file content.
func Parse(content string) *Document {
	return &Document{lines: strings.Split(content, "\n")}
}

// String serializes the document back to file content.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Checkbox is a single task-list line.
type Checkbox struct {
	// Line is the zero-based line index within the document.
	Line int
	// Checked reports whether the marker is [x].
	Checked bool
	// Text is the item text after the marker, leading whitespace trimmed.
	Text string
	// Raw is the full line, indentation and marker included.
	Raw string
}

// FindCheckbox returns the first checkbox line, in document order, that
// contains query as a case-insensitive substring. The second return is
// false when no line matches. Multiple matches are not ranked — first
// occurrence wins.
func (d *Document) FindCheckbox(query string) (Checkbox, bool) {
	queryLower := strings.ToLower(query)

	for i, line := range d.lines {
		if !checkboxRe.MatchString(line) {
			continue
		}
		if strings.Contains(strings.ToLower(line), queryLower) {
			return d.checkboxAt(i, line), true
		}
	}
	return Checkbox{}, false
}

// checkboxAt builds a Checkbox from a line known to match the pattern.
func (d *Document) checkboxAt(i int, line string) Checkbox {
	cb := Checkbox{Line: i, Raw: line}
	if m := checkboxTextRe.FindStringSubmatch(line); m != nil {
		cb.Checked = strings.Contains(m[1], "[x]")
		cb.Text = m[2]
	}
	return cb
}

// Items returns the text of every checkbox item, checked or not, in
// document order. Used as the candidate pool for fuzzy suggestions.
func (d *Document) Items() []string {
	var items []string
	for _, line := range d.lines {
		if m := checkboxTextRe.FindStringSubmatch(line); m != nil {
			items = append(items, m[2])
		}
	}
	return items
}

// Count scans every checkbox line once and returns (checked, total).
func (d *Document) Count() (checked, total int) {
	for _, line := range d.lines {
		m := checkboxRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		total++
		if m[1] == "x" {
			checked++
		}
	}
	return checked, total
}

// Progress returns the completion percentage, truncated toward zero.
// A document with no checkboxes is 0% complete.
func (d *Document) Progress() int {
	checked, total := d.Count()
	if total == 0 {
		return 0
	}
	return 100 * checked / total
}

// SetLine replaces the line at index i. Out-of-range indices are ignored.
func (d *Document) SetLine(i int, line string) {
	if i >= 0 && i < len(d.lines) {
		d.lines[i] = line
	}
}

// PhaseSectionAt extracts the phase section containing the given line
// index: from the nearest preceding "### Phase" heading (or line 0 if
// none precedes) up to, but not including, the next heading at "##"
// depth or deeper after the index, or end of document. Breaking on the
// "##" prefix means a top-level section like "## Notes" ends the phase
// just as the next "### Phase" does.
func (d *Document) PhaseSectionAt(line int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}

	start := 0
	for i := line; i >= 0; i-- {
		if strings.HasPrefix(d.lines[i], phasePrefix) {
			start = i
			break
		}
	}

	end := len(d.lines)
	for i := line + 1; i < len(d.lines); i++ {
		if strings.HasPrefix(d.lines[i], "##") {
			end = i
			break
		}
	}

	return strings.Join(d.lines[start:end], "\n")
}

// PhaseSection extracts a phase section located by case-insensitive
// substring match of name against the phase heading text. Returns the
// empty string when no heading matches.
func (d *Document) PhaseSection(name string) string {
	nameLower := strings.ToLower(name)

	start := -1
	for i, line := range d.lines {
		if strings.HasPrefix(line, phasePrefix) && strings.Contains(strings.ToLower(line), nameLower) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := len(d.lines)
	for i := start + 1; i < len(d.lines); i++ {
		if strings.HasPrefix(d.lines[i], "##") {
			end = i
			break
		}
	}

	return strings.Join(d.lines[start:end], "\n")
}

// PhaseHeadings returns every "### Phase" heading line, trimmed, in
// document order.
func (d *Document) PhaseHeadings() []string {
	var headings []string
	for _, line := range d.lines {
		if strings.HasPrefix(line, phasePrefix) {
			headings = append(headings, strings.TrimSpace(line))
		}
	}
	return headings
}

// ToggleCheckbox replaces the first checkbox marker in line with [x] if
// check is true, [ ] otherwise. Only the marker changes — indentation,
// item text, and any other bracketed text later in the line are left
// untouched.
func ToggleCheckbox(line string, check bool) string {
	marker := "[ ]"
	if check {
		marker = "[x]"
	}

	replaced := false
	return markerRe.ReplaceAllStringFunc(line, func(m string) string {
		if replaced {
			return m
		}
		replaced = true
		return marker
	})
}

// Check finds the first checkbox matching query and sets its marker.
// Returns the checkbox as it was after the toggle, or false when no item
// matches — in which case the document is unchanged.
func (d *Document) Check(query string, check bool) (Checkbox, bool) {
	cb, ok := d.FindCheckbox(query)
	if !ok {
		return Checkbox{}, false
	}
	d.lines[cb.Line] = ToggleCheckbox(cb.Raw, check)
	return d.checkboxAt(cb.Line, d.lines[cb.Line]), true
}

// FormatProgress renders the "N/M items complete (P%)" progress line used
// in confirmations.
func (d *Document) FormatProgress() string {
	checked, total := d.Count()
	return fmt.Sprintf("%d/%d items complete (%d%%)", checked, total, d.Progress())
}
