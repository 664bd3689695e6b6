package format

import "strings"

// lineWriter accumulates output lines and supports inserting a blank line
// above content that has already been written.
type lineWriter struct {
	lines []string
}

func newLineWriter(capacity int) *lineWriter {
	return &lineWriter{lines: make([]string, 0, capacity)}
}

// WriteLine appends one line (without its terminator).
func (w *lineWriter) WriteLine(line string) {
	w.lines = append(w.lines, line)
}

// Len reports the number of lines written so far.
func (w *lineWriter) Len() int {
	return len(w.lines)
}

// Line returns the i-th written line.
func (w *lineWriter) Line(i int) string {
	return w.lines[i]
}

// LastIsBlank reports whether the most recent line is empty or whitespace.
// An empty writer has no blank last line.
func (w *lineWriter) LastIsBlank() bool {
	if len(w.lines) == 0 {
		return false
	}
	return isBlank(w.lines[len(w.lines)-1])
}

// InsertBlank inserts an empty line before index at.
func (w *lineWriter) InsertBlank(at int) {
	if at < 0 || at > len(w.lines) {
		return
	}
	w.lines = append(w.lines, "")
	copy(w.lines[at+1:], w.lines[at:])
	w.lines[at] = ""
}

// attachedStart returns the index where the trailing run of comment lines
// at exactly indent begins. Without such a run it returns Len().
func (w *lineWriter) attachedStart(indent int) int {
	start := len(w.lines)
	for start > 0 {
		prev := w.lines[start-1]
		if indentOf(prev) != indent || !strings.HasPrefix(strings.TrimSpace(prev), "#") {
			break
		}
		start--
	}
	return start
}

// String joins the lines with "\n".
func (w *lineWriter) String() string {
	return strings.Join(w.lines, "\n")
}
