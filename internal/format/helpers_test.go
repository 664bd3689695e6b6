package format

import (
	"testing"

	"gopkg.in/yaml.v3"

	"taskfmt/internal/document"
)

func mustRoot(t *testing.T, src string) *yaml.Node {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return document.Root(doc)
}

func keyNames(m *yaml.Node) []string {
	var out []string
	for _, p := range document.Pairs(m) {
		out = append(out, p.KeyName())
	}
	return out
}

func mustLookup(t *testing.T, m *yaml.Node, key string) *yaml.Node {
	t.Helper()
	v, idx := document.Lookup(m, key)
	if idx < 0 {
		t.Fatalf("key %q not found in %v", key, keyNames(m))
	}
	return v
}
