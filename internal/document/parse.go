package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Parse decodes text into a DocumentNode. Empty input (no document at all)
// yields a nil node and no error. Malformed text, duplicate mapping keys and
// streams holding more than one document fail with *SyntaxError.
func Parse(text []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(text))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, newSyntaxError(err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, newSyntaxError(err)
	default:
		return nil, &SyntaxError{Line: extra.Line, Column: extra.Column, Msg: "multiple YAML documents are not supported"}
	}

	if err := checkUniqueKeys(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Root returns the content node of a parsed document, or nil when the
// document is empty.
func Root(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	if doc.Kind != yaml.DocumentNode {
		return doc
	}
	if len(doc.Content) == 0 {
		return nil
	}
	return doc.Content[0]
}

// checkUniqueKeys rejects mappings that repeat a scalar key. yaml.v3 only
// enforces this when decoding into Go values, not into nodes.
func checkUniqueKeys(n *yaml.Node) error {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.MappingNode {
		seen := make(map[string]*yaml.Node, len(n.Content)/2)
		for _, p := range Pairs(n) {
			if p.Key.Kind != yaml.ScalarNode || p.Key.ShortTag() == "!!merge" {
				continue
			}
			if prev, ok := seen[p.Key.Value]; ok {
				return &SyntaxError{
					Line:   p.Key.Line,
					Column: p.Key.Column,
					Msg:    fmt.Sprintf("mapping key %q already defined at line %d", p.Key.Value, prev.Line),
				}
			}
			seen[p.Key.Value] = p.Key
		}
	}
	for _, c := range n.Content {
		if err := checkUniqueKeys(c); err != nil {
			return err
		}
	}
	return nil
}
