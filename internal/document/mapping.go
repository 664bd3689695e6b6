package document

import "gopkg.in/yaml.v3"

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// KeyName returns the text of a scalar key. Complex keys (mappings or
// sequences used as keys) have no name and yield "".
func (p Pair) KeyName() string {
	if p.Key == nil || p.Key.Kind != yaml.ScalarNode {
		return ""
	}
	return p.Key.Value
}

// Pairs returns the entries of a mapping node in source order. Anything that
// is not a mapping has no pairs.
func Pairs(m *yaml.Node) []Pair {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		pairs = append(pairs, Pair{Key: m.Content[i], Value: m.Content[i+1]})
	}
	return pairs
}

// Lookup finds the value stored under key in mapping m. The index is the
// position of the pair, or -1 when the key is absent.
func Lookup(m *yaml.Node, key string) (*yaml.Node, int) {
	for i, p := range Pairs(m) {
		if p.Key.Kind == yaml.ScalarNode && p.Key.Value == key {
			return p.Value, i
		}
	}
	return nil, -1
}

// NewMapping builds a block mapping from pairs. When like is a mapping its
// style, tag, anchor and comments are carried over so the rebuilt node
// renders where the original did.
func NewMapping(like *yaml.Node, pairs []Pair) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if like != nil && like.Kind == yaml.MappingNode {
		cp := *like
		m = &cp
	}
	m.Content = make([]*yaml.Node, 0, 2*len(pairs))
	for _, p := range pairs {
		m.Content = append(m.Content, p.Key, p.Value)
	}
	return m
}

// EmptyMapping returns a fresh mapping with no entries.
func EmptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// SetPair assigns p into pairs with ordered-mapping semantics: when a pair
// with the same key name already exists its value is replaced in place,
// keeping the first key's position, otherwise p is appended.
func SetPair(pairs []Pair, p Pair) []Pair {
	name := p.KeyName()
	if p.Key != nil && p.Key.Kind == yaml.ScalarNode {
		for i := range pairs {
			if pairs[i].Key.Kind == yaml.ScalarNode && pairs[i].KeyName() == name {
				pairs[i].Value = p.Value
				return pairs
			}
		}
	}
	return append(pairs, p)
}

// RenameKey returns a shallow copy of key node k named name. The copy is
// tagged as a string so a name that would otherwise resolve to another type
// (TRUE, 1e3) is quoted on output.
func RenameKey(k *yaml.Node, name string) *yaml.Node {
	cp := *k
	cp.Value = name
	if cp.ShortTag() != "!!str" {
		cp.Tag = "!!str"
	}
	return &cp
}

// WithValue returns a shallow copy of scalar node n holding value.
func WithValue(n *yaml.Node, value string) *yaml.Node {
	cp := *n
	cp.Value = value
	return &cp
}
