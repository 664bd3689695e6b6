package document

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScalarType selects how multi-line strings are emitted.
type ScalarType uint8

const (
	ScalarBlockLiteral ScalarType = iota + 1
	ScalarBlockFolded
)

func (t ScalarType) String() string {
	switch t {
	case ScalarBlockLiteral:
		return "BLOCK_LITERAL"
	case ScalarBlockFolded:
		return "BLOCK_FOLDED"
	default:
		return "unknown"
	}
}

func (t ScalarType) style() yaml.Style {
	if t == ScalarBlockFolded {
		return yaml.FoldedStyle
	}
	return yaml.LiteralStyle
}

// StringifyOptions configures Stringify.
type StringifyOptions struct {
	// Indent is the number of spaces per nesting level (2..9).
	Indent int
	// LineWidth caps line length; 0 disables wrapping and is the only
	// supported value since the emitter never folds long lines.
	LineWidth int
	// PrettyErrors reports emit failures as *EmitError carrying the YAML
	// path of the offending node.
	PrettyErrors bool
	// BlockQuote re-emits multi-line quoted and plain strings in block style.
	BlockQuote bool
	// FlowLevel is the nesting depth from which collections switch to flow
	// style; -1 keeps every collection in block style.
	FlowLevel int
	// DefaultType is the block style used for multi-line strings.
	DefaultType ScalarType
}

// DefaultStringifyOptions returns the options Taskfiles are printed with.
func DefaultStringifyOptions() StringifyOptions {
	return StringifyOptions{
		Indent:       2,
		LineWidth:    0,
		PrettyErrors: true,
		BlockQuote:   true,
		FlowLevel:    -1,
		DefaultType:  ScalarBlockLiteral,
	}
}

// Validate reports options the emitter cannot honour.
func (o StringifyOptions) Validate() error {
	if o.Indent < 2 || o.Indent > 9 {
		return fmt.Errorf("stringify: indent must be between 2 and 9, got %d", o.Indent)
	}
	if o.LineWidth != 0 {
		return fmt.Errorf("stringify: line wrapping is not supported (line width %d)", o.LineWidth)
	}
	if o.FlowLevel < -1 {
		return fmt.Errorf("stringify: flow level must be -1 or greater, got %d", o.FlowLevel)
	}
	switch o.DefaultType {
	case ScalarBlockLiteral, ScalarBlockFolded:
	default:
		return fmt.Errorf("stringify: unsupported default scalar type %d", o.DefaultType)
	}
	return nil
}

// Stringify renders n as YAML text. n may be a DocumentNode or any content
// node; nil renders as an empty mapping. The input tree is never modified:
// style adjustments are applied to a copy.
func Stringify(n *yaml.Node, opts StringifyOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode}
	switch {
	case n == nil:
		doc.Content = []*yaml.Node{EmptyMapping()}
	case n.Kind == yaml.DocumentNode:
		cp := *n
		doc = &cp
		if len(doc.Content) == 0 {
			doc.Content = []*yaml.Node{EmptyMapping()}
		}
	default:
		doc.Content = []*yaml.Node{n}
	}

	r := restyler{opts: opts}
	styled, err := r.node(doc, 0, "$", false)
	if err != nil {
		return nil, r.wrap(err, "$")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(opts.Indent)
	if err := enc.Encode(styled); err != nil {
		_ = enc.Close()
		return nil, r.wrap(err, "$")
	}
	if err := enc.Close(); err != nil {
		return nil, r.wrap(err, "$")
	}
	return buf.Bytes(), nil
}

type restyler struct {
	opts StringifyOptions
}

func (r restyler) wrap(err error, path string) error {
	var emitErr *EmitError
	if errors.As(err, &emitErr) {
		if r.opts.PrettyErrors {
			return emitErr
		}
		return errors.New(emitErr.Msg)
	}
	if !r.opts.PrettyErrors {
		return err
	}
	return &EmitError{Path: path, Msg: strings.TrimPrefix(err.Error(), "yaml: ")}
}

func (r restyler) node(n *yaml.Node, depth int, path string, isKey bool) (*yaml.Node, error) {
	if n == nil {
		return nil, &EmitError{Path: path, Msg: "nil node"}
	}
	cp := *n
	switch n.Kind {
	case yaml.DocumentNode:
		cp.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			styled, err := r.node(c, depth, path, false)
			if err != nil {
				return nil, err
			}
			cp.Content[i] = styled
		}
	case yaml.MappingNode, yaml.SequenceNode:
		if r.opts.FlowLevel < 0 || depth < r.opts.FlowLevel {
			cp.Style &^= yaml.FlowStyle
		} else {
			cp.Style |= yaml.FlowStyle
		}
		cp.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			childPath := path + "[" + strconv.Itoa(i) + "]"
			childIsKey := false
			if n.Kind == yaml.MappingNode {
				childIsKey = i%2 == 0
				if !childIsKey {
					childPath = path + "." + keyLabel(n.Content[i-1])
				}
			}
			styled, err := r.node(c, depth+1, childPath, childIsKey)
			if err != nil {
				return nil, err
			}
			cp.Content[i] = styled
		}
	case yaml.ScalarNode:
		if !isKey && r.opts.BlockQuote && strings.Contains(n.Value, "\n") &&
			KindOf(n) == KindString && n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) == 0 {
			cp.Style = n.Style&yaml.TaggedStyle | r.opts.DefaultType.style()
		}
	case yaml.AliasNode:
		if n.Value == "" && n.Alias == nil {
			return nil, &EmitError{Path: path, Msg: "alias without anchor"}
		}
		if n.Value == "" {
			cp.Value = n.Alias.Anchor
		}
	default:
		return nil, &EmitError{Path: path, Msg: "node kind is not set"}
	}
	return &cp, nil
}

func keyLabel(k *yaml.Node) string {
	if k == nil || k.Kind != yaml.ScalarNode {
		return "?"
	}
	return k.Value
}
