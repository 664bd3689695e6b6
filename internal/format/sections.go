package format

import (
	"strings"

	"gopkg.in/yaml.v3"

	"taskfmt/internal/document"
)

const (
	varsKey      = "vars"
	tasksKey     = "tasks"
	cmdsKey      = "cmds"
	taskGroupPfx = "tasks_"
)

// FormatDocument applies the object-model rules to a parsed Taskfile.
//
// It accepts either a DocumentNode or its root node and returns a root node.
// The input tree is left untouched; changed nodes are shallow copies and
// unchanged values are shared.
func FormatDocument(doc *yaml.Node) *yaml.Node {
	root := document.Root(doc)
	if document.KindOf(root) == document.KindNull {
		return document.EmptyMapping()
	}
	if root.Kind != yaml.MappingNode {
		return root
	}

	sorted := SortKeys(root)
	pairs := document.Pairs(sorted)
	for i, p := range pairs {
		name := p.KeyName()
		switch {
		case p.Key.Kind != yaml.ScalarNode:
		case name == varsKey:
			pairs[i].Value = UppercaseVariableNames(p.Value)
		case name == tasksKey:
			pairs[i].Value = formatTasks(p.Value)
		case strings.HasPrefix(name, taskGroupPfx) && document.IsMapping(p.Value):
			pairs[i].Value = formatTasks(p.Value)
		}
	}
	return document.NewMapping(sorted, pairs)
}

// formatTasks kebab-cases task names and normalizes each task's commands.
func formatTasks(tasks *yaml.Node) *yaml.Node {
	if tasks == nil || tasks.Kind != yaml.MappingNode {
		return tasks
	}
	renamed := KebabCaseTaskNames(tasks)
	pairs := document.Pairs(renamed)
	for i, p := range pairs {
		pairs[i].Value = formatTask(p.Value)
	}
	return document.NewMapping(renamed, pairs)
}

func formatTask(task *yaml.Node) *yaml.Node {
	if task == nil || task.Kind != yaml.MappingNode {
		return task
	}
	cmds, idx := document.Lookup(task, cmdsKey)
	if idx < 0 || cmds == nil || cmds.Kind != yaml.SequenceNode || len(cmds.Content) == 0 {
		return task
	}
	processed := ProcessCommands(cmds)
	if processed == cmds {
		return task
	}
	pairs := document.Pairs(task)
	pairs[idx].Value = processed
	return document.NewMapping(task, pairs)
}
