package format

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// sectionHeaderRe matches a top-level section key with no inline value.
	sectionHeaderRe = regexp.MustCompile(`^(version|includes|vars|env|tasks|tasks_[A-Za-z0-9_-]+):$`)
	taskSectionRe   = regexp.MustCompile(`^tasks(_[A-Za-z0-9_-]+)?:$`)
	// taskDefinitionRe matches a key indented by exactly two spaces. Namespaced
	// names (docker:build) are accepted.
	taskDefinitionRe = regexp.MustCompile(`^  [A-Za-z0-9_-]+(:[A-Za-z0-9_-]+)*:(\s|$)`)
	// blockIndicatorRe matches a trailing literal or folded block indicator
	// with optional chomping and indentation indicators.
	blockIndicatorRe     = regexp.MustCompile(`(^|\s)[|>][1-9+-]{0,2}(\s+#.*)?$`)
	multipleEmptyLinesRe = regexp.MustCompile(`\n\n\n+`)
)

// InsertBlankLines separates top-level sections, and sibling tasks inside
// task sections, with a single blank line. Lines inside literal or folded
// block scalars are never touched. Comment lines directly above a header or
// task keep their position relative to it. Runs of blank lines collapse to
// one. The function never fails and is idempotent.
func InsertBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	w := newLineWriter(len(lines) + len(lines)/4)
	bs := blockScalarState{}
	inTaskSection := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		indent := indentOf(line)

		if bs.inside(trimmed, indent) {
			w.WriteLine(line)
			continue
		}

		if i > 0 {
			switch {
			case isSectionHeader(line):
				if !isBlank(lines[i-1]) {
					separate(w, 0, false)
				}
			case inTaskSection && taskDefinitionRe.MatchString(line):
				prev := lines[i-1]
				if !isBlank(prev) && !isSectionHeader(prev) && !w.LastIsBlank() {
					separate(w, 2, true)
				}
			}
		}

		if indent == 0 && trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			inTaskSection = taskSectionRe.MatchString(trimmed)
		}
		bs.observe(trimmed, indent)
		w.WriteLine(line)
	}

	return multipleEmptyLinesRe.ReplaceAllString(w.String(), "\n\n")
}

// separate inserts a blank line above the comment run attached to the line
// about to be written at indent. Nothing is inserted when the run starts the
// output or already follows a blank line. With afterHeader set, a run that
// directly follows a section header is left alone too.
func separate(w *lineWriter, indent int, afterHeader bool) {
	at := w.attachedStart(indent)
	if at == w.Len() {
		w.InsertBlank(at)
		return
	}
	if at == 0 {
		return
	}
	above := w.Line(at - 1)
	if isBlank(above) || (afterHeader && isSectionHeader(above)) {
		return
	}
	w.InsertBlank(at)
}

// blockScalarState tracks whether the current line belongs to the body of a
// literal or folded block scalar.
type blockScalarState struct {
	active    bool
	threshold int
}

// inside reports whether a line is part of an open block body, closing the
// block when a non-blank line is indented at or below the header.
func (s *blockScalarState) inside(trimmed string, indent int) bool {
	if !s.active {
		return false
	}
	if trimmed != "" && indent <= s.threshold {
		s.active = false
		return false
	}
	return true
}

// observe opens a block when a line outside any block ends with a block
// indicator. The header line's indentation becomes the closing threshold.
func (s *blockScalarState) observe(trimmed string, indent int) {
	if strings.HasPrefix(trimmed, "#") {
		return
	}
	if blockIndicatorRe.MatchString(trimmed) {
		s.active = true
		s.threshold = indent
	}
}

func isSectionHeader(line string) bool {
	return indentOf(line) == 0 && sectionHeaderRe.MatchString(strings.TrimSpace(line))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
}
