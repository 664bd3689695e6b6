package testkit

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"taskfmt/internal/document"
)

// CheckKeyOrder verifies the top-level key order of a mapping:
// 1) priority keys that are present appear first, in priority order
// 2) every other key follows, in byte-wise lexicographic order
func CheckKeyOrder(m *yaml.Node, priority []string) error {
	if m == nil || m.Kind != yaml.MappingNode {
		return fmt.Errorf("not a mapping")
	}
	seenOther := ""
	lastPriority := -1
	otherStarted := false
	for _, p := range document.Pairs(m) {
		name := p.KeyName()
		if idx := slices.Index(priority, name); idx >= 0 {
			if otherStarted {
				return fmt.Errorf("priority key %q after non-priority key %q", name, seenOther)
			}
			if idx < lastPriority {
				return fmt.Errorf("priority key %q out of order", name)
			}
			lastPriority = idx
			continue
		}
		if otherStarted && name < seenOther {
			return fmt.Errorf("key %q sorts before %q", name, seenOther)
		}
		otherStarted = true
		seenOther = name
	}
	return nil
}

// CheckSameKeys verifies that two mappings hold exactly the same key names.
func CheckSameKeys(before, after *yaml.Node) error {
	names := func(m *yaml.Node) []string {
		var out []string
		for _, p := range document.Pairs(m) {
			out = append(out, p.KeyName())
		}
		slices.Sort(out)
		return out
	}
	want, got := names(before), names(after)
	if !slices.Equal(want, got) {
		return fmt.Errorf("key sets differ: before=%v after=%v", want, got)
	}
	return nil
}

// CheckIdempotent runs fn twice and verifies the second pass is a no-op.
func CheckIdempotent(fn func([]byte) ([]byte, error), input []byte) error {
	once, err := fn(input)
	if err != nil {
		return fmt.Errorf("first pass: %w", err)
	}
	twice, err := fn(once)
	if err != nil {
		return fmt.Errorf("second pass: %w", err)
	}
	if !bytes.Equal(once, twice) {
		return fmt.Errorf("not idempotent:\n--- first\n%s\n--- second\n%s", once, twice)
	}
	return nil
}

// CheckBlockIntact verifies that the lines of block appear contiguously and
// unchanged in output, so nothing was inserted inside a block scalar.
func CheckBlockIntact(output, block string) error {
	if !strings.Contains(output, block) {
		return fmt.Errorf("block scalar body was altered:\n%s", output)
	}
	return nil
}

// CheckMaxBlankRun verifies output never holds more than one consecutive
// blank line.
func CheckMaxBlankRun(output string) error {
	if idx := strings.Index(output, "\n\n\n"); idx >= 0 {
		return fmt.Errorf("consecutive blank lines at offset %d", idx)
	}
	return nil
}
