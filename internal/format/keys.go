package format

import (
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"taskfmt/internal/document"
)

// KeyPriority is the canonical order of the well-known top-level sections.
var KeyPriority = [...]string{"version", "includes", "vars", "env", "tasks"}

func isPriorityKey(name string) bool {
	return slices.Contains(KeyPriority[:], name)
}

// SortKeys returns a new mapping with the priority sections first, in
// KeyPriority order, followed by every other key in byte-wise lexicographic
// order. Values are shared with the input. A nil or null input yields an
// empty mapping; other non-mapping nodes are returned as they are.
func SortKeys(m *yaml.Node) *yaml.Node {
	if document.KindOf(m) == document.KindNull {
		return document.EmptyMapping()
	}
	if m.Kind != yaml.MappingNode {
		return m
	}

	pairs := document.Pairs(m)
	sorted := make([]document.Pair, 0, len(pairs))
	for _, key := range KeyPriority {
		for _, p := range pairs {
			if p.Key.Kind == yaml.ScalarNode && p.KeyName() == key {
				sorted = append(sorted, p)
			}
		}
	}

	rest := make([]document.Pair, 0, len(pairs)-len(sorted))
	for _, p := range pairs {
		if p.Key.Kind == yaml.ScalarNode && isPriorityKey(p.KeyName()) {
			continue
		}
		rest = append(rest, p)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].KeyName() < rest[j].KeyName()
	})

	return document.NewMapping(m, append(sorted, rest...))
}
