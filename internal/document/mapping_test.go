package document

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		src  string
		want Kind
	}{
		{"~", KindNull},
		{"text", KindString},
		{"'3'", KindString},
		{"3", KindNumber},
		{"1.5", KindNumber},
		{"true", KindBool},
		{"{a: 1}", KindMapping},
		{"[1]", KindSequence},
		{"!custom x", KindOther},
	}
	for _, tt := range tests {
		doc, err := Parse([]byte(tt.src))
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.src, err)
		}
		if got := KindOf(doc); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
	if KindOf(nil) != KindNull {
		t.Errorf("KindOf(nil) != null")
	}
	if KindOf(&yaml.Node{Kind: yaml.AliasNode}) != KindAlias {
		t.Errorf("alias not classified")
	}
}

func TestSetPair_LastWinsFirstPosition(t *testing.T) {
	var pairs []Pair
	pairs = SetPair(pairs, Pair{Key: scalar("A"), Value: scalar("1")})
	pairs = SetPair(pairs, Pair{Key: scalar("B"), Value: scalar("2")})
	pairs = SetPair(pairs, Pair{Key: scalar("A"), Value: scalar("3")})

	if len(pairs) != 2 {
		t.Fatalf("len = %d, want 2", len(pairs))
	}
	if pairs[0].KeyName() != "A" || pairs[0].Value.Value != "3" {
		t.Fatalf("pairs[0] = %s=%s, want A=3", pairs[0].KeyName(), pairs[0].Value.Value)
	}
}

func TestNewMapping_CopiesStyleAndComments(t *testing.T) {
	like := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", HeadComment: "# head", Content: []*yaml.Node{scalar("x"), scalar("y")}}
	m := NewMapping(like, []Pair{{Key: scalar("k"), Value: scalar("v")}})

	if m == like {
		t.Fatalf("NewMapping returned its template")
	}
	if m.HeadComment != "# head" {
		t.Fatalf("head comment lost")
	}
	if len(m.Content) != 2 || m.Content[0].Value != "k" {
		t.Fatalf("content = %v", m.Content)
	}
	if like.Content[0].Value != "x" {
		t.Fatalf("template modified")
	}
}

func TestRenameKey(t *testing.T) {
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"}
	got := RenameKey(k, "TRUE")
	if got.Value != "TRUE" || got.ShortTag() != "!!str" {
		t.Fatalf("got %q tagged %s", got.Value, got.ShortTag())
	}
	if k.Value != "true" {
		t.Fatalf("original key modified")
	}
}

func TestLookup_Missing(t *testing.T) {
	m := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar("a"), scalar("1")}}
	if v, idx := Lookup(m, "b"); v != nil || idx != -1 {
		t.Fatalf("Lookup(b) = %v, %d", v, idx)
	}
	if v, idx := Lookup(scalar("a"), "a"); v != nil || idx != -1 {
		t.Fatalf("Lookup on scalar = %v, %d", v, idx)
	}
}
