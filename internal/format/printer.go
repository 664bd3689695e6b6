package format

import (
	"gopkg.in/yaml.v3"

	"taskfmt/internal/document"
)

// Options controls how a formatted document is serialized.
type Options struct {
	// Stringify is passed to the YAML emitter. The zero value selects
	// document.DefaultStringifyOptions.
	Stringify document.StringifyOptions
}

func (o Options) withDefaults() Options {
	if o.Stringify == (document.StringifyOptions{}) {
		o.Stringify = document.DefaultStringifyOptions()
	}
	return o
}

// Parse reads Taskfile text into a document tree. Failures come back as
// *ParseError.
func Parse(text []byte) (doc *yaml.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, &ParseError{Err: recovered(r)}
		}
	}()

	doc, err = document.Parse(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}

// Print formats a parsed document and serializes it with blank lines
// between sections and tasks. Failures come back as *FormatError and no
// partial output is returned.
func Print(doc *yaml.Node, opt Options) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &FormatError{Err: recovered(r)}
		}
	}()

	opt = opt.withDefaults()
	formatted := FormatDocument(doc)

	// Document-level comments live on the DocumentNode, not on its root.
	wrapped := &yaml.Node{Kind: yaml.DocumentNode}
	if doc != nil && doc.Kind == yaml.DocumentNode {
		cp := *doc
		wrapped = &cp
	}
	wrapped.Content = []*yaml.Node{formatted}

	text, err := document.Stringify(wrapped, opt.Stringify)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return []byte(InsertBlankLines(string(text))), nil
}

// Format runs the whole pipeline over Taskfile text.
func Format(text []byte, opt Options) ([]byte, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Print(doc, opt)
}
