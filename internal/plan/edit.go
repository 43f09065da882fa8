package plan

import "strings"

// isTopLevelHeading reports whether a line is a top-level "##" heading —
// one that bounds the checklist area of the plan (Notes, References, …).
func isTopLevelHeading(line string) bool {
	return strings.HasPrefix(line, "##") && !strings.HasPrefix(line, "###")
}

// AddItem inserts a new unchecked item "- [ ] <text>".
//
// With a phase name, the heading is located by case-insensitive substring
// match and the item is inserted after the last existing checkbox within
// that phase's section (immediately after the heading when the phase has
// no items yet). A "#### " sub-heading inside a phase does not terminate
// the section — only the next "###" phase or a top-level "##" heading
// does. When the named phase does not exist, the item is inserted,
// preceded by a blank line, before the first top-level "##" heading, or
// appended at document end if there is none.
//
// With an empty phase, the item goes immediately after the last checkbox
// anywhere in the document ("append to last phase"), or at document end
// when the plan has no checkboxes at all.
func (d *Document) AddItem(text, phase string) {
	newItem := "- [ ] " + text

	if phase != "" {
		phaseLower := strings.ToLower(phase)
		target := -1
		for i, line := range d.lines {
			if strings.HasPrefix(line, phasePrefix) && strings.Contains(strings.ToLower(line), phaseLower) {
				target = i
				break
			}
		}

		if target == -1 {
			insert := len(d.lines)
			for i, line := range d.lines {
				if isTopLevelHeading(line) {
					insert = i
					break
				}
			}
			d.insertLine(insert, newItem)
			d.insertLine(insert, "")
			return
		}

		insert := target + 1
		for i := target + 1; i < len(d.lines); i++ {
			if strings.HasPrefix(d.lines[i], "###") && !strings.HasPrefix(d.lines[i], "#### ") {
				break
			}
			if isTopLevelHeading(d.lines[i]) {
				break
			}
			if checkboxRe.MatchString(d.lines[i]) {
				insert = i + 1
			}
		}
		d.insertLine(insert, newItem)
		return
	}

	lastCheckbox := -1
	for i, line := range d.lines {
		if checkboxRe.MatchString(line) {
			lastCheckbox = i
		}
	}

	if lastCheckbox == -1 {
		d.lines = append(d.lines, newItem)
		return
	}
	d.insertLine(lastCheckbox+1, newItem)
}

// RemoveItem removes the first checkbox line, top to bottom, containing
// pattern as a case-insensitive substring. At most one line is removed;
// no match leaves the document unchanged.
func (d *Document) RemoveItem(pattern string) bool {
	patternLower := strings.ToLower(pattern)

	for i, line := range d.lines {
		if checkboxRe.MatchString(line) && strings.Contains(strings.ToLower(line), patternLower) {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return true
		}
	}
	return false
}

// RenameItem replaces the text of the first checkbox line matching
// oldPattern, preserving indentation and marker state exactly. The
// pattern is matched against the whole line, marker included — the match
// also succeeds if the pattern happens to land in the marker region,
// though markers are fixed-width in practice.
func (d *Document) RenameItem(oldPattern, newText string) bool {
	oldLower := strings.ToLower(oldPattern)

	for i, line := range d.lines {
		m := checkboxTextRe.FindStringSubmatch(line)
		if m == nil || !strings.Contains(strings.ToLower(line), oldLower) {
			continue
		}
		d.lines[i] = m[1] + " " + newText
		return true
	}
	return false
}

// AddPhase inserts a new "### <name>" heading, one unchecked item line
// per entry in items, and a trailing blank line — positioned before the
// first top-level "##" heading, or at document end if there is none.
func (d *Document) AddPhase(name string, items []string) {
	insert := len(d.lines)
	for i, line := range d.lines {
		if isTopLevelHeading(line) {
			insert = i
			break
		}
	}

	section := []string{"### " + name}
	for _, item := range items {
		section = append(section, "- [ ] "+item)
	}
	section = append(section, "")

	for j, line := range section {
		d.insertLine(insert+j, line)
	}
}

// insertLine inserts a line before index i, clamped to the valid range.
func (d *Document) insertLine(i int, line string) {
	if i < 0 {
		i = 0
	}
	if i > len(d.lines) {
		i = len(d.lines)
	}
	d.lines = append(d.lines, "")
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = line
}
