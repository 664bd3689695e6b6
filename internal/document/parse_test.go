package document

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# only a comment\n"} {
		doc, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		if KindOf(doc) != KindNull {
			t.Fatalf("Parse(%q) kind = %v, want null", src, KindOf(doc))
		}
	}
}

func TestParse_Document(t *testing.T) {
	doc, err := Parse([]byte("version: '3'\ntasks:\n  a: {}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := Root(doc)
	if !IsMapping(root) {
		t.Fatalf("root kind = %v", KindOf(root))
	}
	if v, idx := Lookup(root, "version"); idx != 0 || v.Value != "3" {
		t.Fatalf("version = %#v at %d", v, idx)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantMsg  string
	}{
		{"unclosed_flow", "a: [1, 2\n", 0, ""},
		{"duplicate_key", "a: 1\nb: 2\na: 3\n", 3, `mapping key "a" already defined at line 1`},
		{"nested_duplicate", "tasks:\n  x: 1\n  x: 2\n", 3, "already defined"},
		{"two_documents", "a: 1\n---\nb: 2\n", 0, "multiple YAML documents"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v (%T), want *SyntaxError", err, err)
			}
			if tt.wantLine != 0 && se.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", se.Line, tt.wantLine)
			}
			if !strings.Contains(se.Msg, tt.wantMsg) {
				t.Errorf("msg = %q, want %q", se.Msg, tt.wantMsg)
			}
			if strings.HasPrefix(err.Error(), "yaml: ") {
				t.Errorf("message keeps library prefix: %q", err.Error())
			}
		})
	}
}

func TestParse_MergeKeysAllowed(t *testing.T) {
	src := "base: &b\n  x: 1\nother:\n  <<: *b\n  <<: *b\n  y: 2\n"
	if _, err := Parse([]byte(src)); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestNewSyntaxError(t *testing.T) {
	tests := []struct {
		in   string
		want SyntaxError
	}{
		{"yaml: line 4: mapping values are not allowed in this context", SyntaxError{Line: 4, Msg: "mapping values are not allowed in this context"}},
		{"yaml: line 2, column 7: bad", SyntaxError{Line: 2, Column: 7, Msg: "bad"}},
		{"yaml: control characters are not allowed", SyntaxError{Msg: "control characters are not allowed"}},
	}
	for _, tt := range tests {
		if got := newSyntaxError(errors.New(tt.in)); *got != tt.want {
			t.Errorf("newSyntaxError(%q) = %+v, want %+v", tt.in, *got, tt.want)
		}
	}
}

func TestSyntaxError_Error(t *testing.T) {
	if got := (&SyntaxError{Line: 2, Column: 3, Msg: "x"}).Error(); got != "line 2, column 3: x" {
		t.Fatalf("got %q", got)
	}
	if got := (&SyntaxError{Line: 2, Msg: "x"}).Error(); got != "line 2: x" {
		t.Fatalf("got %q", got)
	}
	if got := (&SyntaxError{Msg: "x"}).Error(); got != "x" {
		t.Fatalf("got %q", got)
	}
}
