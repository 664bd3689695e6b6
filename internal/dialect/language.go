package dialect

import (
	"path/filepath"
	"slices"
)

// Name identifies the dialect to hosts.
const (
	Name      = "TaskfileYAML"
	AstFormat = "taskfile-yaml"
)

// Language describes which files belong to the dialect.
type Language struct {
	Name       string
	Parsers    []string
	Extensions []string
	Filenames  []string
}

// Taskfile is the language entry. Extensions stay empty so ordinary YAML
// files are never claimed; only the file names below match.
var Taskfile = Language{
	Name:       Name,
	Parsers:    []string{AstFormat},
	Extensions: []string{},
	Filenames:  []string{"Taskfile.yml", "Taskfile.yaml", "taskfile.yml", "taskfile.yaml"},
}

// Matches reports whether the base name of path is one of the dialect's file
// names. The comparison is case-sensitive.
func (l Language) Matches(path string) bool {
	base := filepath.Base(filepath.FromSlash(path))
	if slices.Contains(l.Filenames, base) {
		return true
	}
	ext := filepath.Ext(base)
	return ext != "" && slices.Contains(l.Extensions, ext)
}
