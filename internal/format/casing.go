package format

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"taskfmt/internal/document"
)

// namespaceSep separates namespace segments in task names (docker:build).
const namespaceSep = ":"

var underscoreLowerRe = regexp.MustCompile(`_([a-z])`)

// UppercaseName upper-cases a variable name with full Unicode case mapping.
func UppercaseName(name string) string {
	// A Caser keeps state between calls; build one per use.
	return cases.Upper(language.Und).String(name)
}

// KebabTaskName turns every underscore that precedes a lowercase ASCII
// letter into a hyphen, segment by segment. Underscores before uppercase
// letters, digits or other underscores are left alone.
func KebabTaskName(name string) string {
	segments := strings.Split(name, namespaceSep)
	for i, seg := range segments {
		segments[i] = underscoreLowerRe.ReplaceAllString(seg, "-${1}")
	}
	return strings.Join(segments, namespaceSep)
}

// UppercaseVariableNames returns vars with every key upper-cased. Keys that
// collapse onto the same name keep the first position and the last value.
// Anything that is not a mapping is returned unchanged.
func UppercaseVariableNames(vars *yaml.Node) *yaml.Node {
	return renameKeys(vars, UppercaseName)
}

// KebabCaseTaskNames returns tasks with every task name kebab-cased.
// Anything that is not a mapping is returned unchanged.
func KebabCaseTaskNames(tasks *yaml.Node) *yaml.Node {
	return renameKeys(tasks, KebabTaskName)
}

func renameKeys(m *yaml.Node, rename func(string) string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return m
	}
	pairs := document.Pairs(m)
	renamed := make([]document.Pair, 0, len(pairs))
	for _, p := range pairs {
		key := p.Key
		if key.Kind == yaml.ScalarNode {
			if name := rename(key.Value); name != key.Value {
				key = document.RenameKey(key, name)
			}
		}
		renamed = document.SetPair(renamed, document.Pair{Key: key, Value: p.Value})
	}
	return document.NewMapping(m, renamed)
}
