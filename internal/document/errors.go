package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SyntaxError reports text that is not well-formed YAML. Line and Column are
// 1-based; zero means the position is unknown.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// EmitError reports a node tree the emitter refused. Path is the YAML path
// of the node being prepared when the failure happened ("$" for the root).
type EmitError struct {
	Path string
	Msg  string
}

func (e *EmitError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

var yamlPositionRe = regexp.MustCompile(`^line (\d+)(?:, column (\d+))?: (.*)$`)

// newSyntaxError lifts a yaml.v3 error string ("yaml: line 3: ...") into a
// SyntaxError with a parsed position.
func newSyntaxError(err error) *SyntaxError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	m := yamlPositionRe.FindStringSubmatch(msg)
	if m == nil {
		return &SyntaxError{Msg: msg}
	}
	line, _ := strconv.Atoi(m[1])
	col := 0
	if m[2] != "" {
		col, _ = strconv.Atoi(m[2])
	}
	return &SyntaxError{Line: line, Column: col, Msg: m[3]}
}
