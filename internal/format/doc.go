// Package format enforces the canonical Taskfile style.
//
// The pipeline has two halves. The object-model half (FormatDocument) works
// on the parsed node tree: it orders top-level sections, upper-cases
// variable names, kebab-cases task names and tightens template directives
// in task commands. The text half (InsertBlankLines) runs on the serialized
// output and separates sections and sibling tasks with blank lines, using
// only indentation and line patterns.
//
// Format wires both halves between the YAML collaborator's parse and
// stringify contracts (internal/document).
//
// Dependencies: internal/document, gopkg.in/yaml.v3, golang.org/x/text.
package format
