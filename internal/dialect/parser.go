package dialect

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"taskfmt/internal/diag"
	"taskfmt/internal/document"
	"taskfmt/internal/format"
)

// Parser is the parser entry of the dialect.
type Parser struct {
	AstFormat string
}

// Parse reads Taskfile text. On failure one diagnostic is reported against
// name and the *format.ParseError is returned.
func (p Parser) Parse(name string, text []byte, r diag.Reporter) (*yaml.Node, error) {
	doc, err := format.Parse(text)
	if err != nil {
		reportParseError(r, name, err)
		return nil, err
	}
	return doc, nil
}

// LocStart is always 0: the dialect does not track node locations.
func (Parser) LocStart(*yaml.Node) int { return 0 }

// LocEnd is always 0: the dialect does not track node locations.
func (Parser) LocEnd(*yaml.Node) int { return 0 }

func reportParseError(r diag.Reporter, name string, err error) {
	if r == nil {
		return
	}
	code := diag.YAMLInvalid
	loc := diag.At(name, 0, 0)
	var se *document.SyntaxError
	if errors.As(err, &se) {
		loc = diag.At(name, se.Line, se.Column)
		switch {
		case strings.Contains(se.Msg, "already defined"):
			code = diag.YAMLDuplicateKey
		case strings.Contains(se.Msg, "multiple YAML documents"):
			code = diag.YAMLMultiDoc
		}
	}
	diag.ReportError(r, code, loc, err.Error()).Emit()
}
