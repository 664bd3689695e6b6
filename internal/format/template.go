package format

import (
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"taskfmt/internal/document"
)

// templateWhitespaceRe matches {{ .NAME }} directives with any amount of
// interior whitespace around the dot-prefixed upper-case identifier.
var templateWhitespaceRe = regexp.MustCompile(`\{\{\s*\.\s*([A-Z0-9_]+)\s*\}\}`)

// RemoveTemplateWhitespace rewrites {{ .NAME }} to {{.NAME}}. Directives of
// any other shape are left as they are.
func RemoveTemplateWhitespace(text string) string {
	return templateWhitespaceRe.ReplaceAllString(text, "{{.${1}}}")
}

// ProcessCommands normalizes template directives in every string entry of a
// command sequence. Structured entries and non-sequence values pass through.
// The input is not modified; a copy is returned when anything changed.
func ProcessCommands(cmds *yaml.Node) *yaml.Node {
	if cmds == nil || cmds.Kind != yaml.SequenceNode {
		return cmds
	}
	var out *yaml.Node
	for i, entry := range cmds.Content {
		if !document.IsString(entry) {
			continue
		}
		normalized := RemoveTemplateWhitespace(entry.Value)
		if normalized == entry.Value {
			continue
		}
		if out == nil {
			cp := *cmds
			cp.Content = slices.Clone(cmds.Content)
			out = &cp
		}
		out.Content[i] = document.WithValue(entry, normalized)
	}
	if out == nil {
		return cmds
	}
	return out
}
