package document

import "gopkg.in/yaml.v3"

// Kind classifies a node by the value it carries rather than by its syntax.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMapping
	KindSequence
	KindAlias
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindAlias:
		return "alias"
	default:
		return "other"
	}
}

// KindOf reports the value kind of n. A nil node and an empty DocumentNode
// are null; a DocumentNode is classified by its content.
func KindOf(n *yaml.Node) Kind {
	if n == nil {
		return KindNull
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return KindNull
		}
		return KindOf(n.Content[0])
	case yaml.MappingNode:
		return KindMapping
	case yaml.SequenceNode:
		return KindSequence
	case yaml.AliasNode:
		return KindAlias
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str", "!!binary":
			return KindString
		case "!!int", "!!float":
			return KindNumber
		case "!!bool":
			return KindBool
		case "!!null":
			return KindNull
		}
		return KindOther
	}
	return KindNull
}

// IsMapping is shorthand for KindOf(n) == KindMapping.
func IsMapping(n *yaml.Node) bool { return KindOf(n) == KindMapping }

// IsString is shorthand for KindOf(n) == KindString.
func IsString(n *yaml.Node) bool { return KindOf(n) == KindString }
