package diag

import (
	"fmt"

	"taskfmt/internal/source"
)

// Location points at a position inside a file.
type Location struct {
	Path string
	Pos  source.LineCol
}

// At builds a Location from 1-based line and column numbers. Negative values
// are treated as unknown.
func At(path string, line, col int) Location {
	loc := Location{Path: path}
	if line > 0 {
		loc.Pos.Line = uint32(line) // #nosec G115 -- line numbers fit in uint32
		if col > 0 {
			loc.Pos.Col = uint32(col) // #nosec G115 -- column numbers fit in uint32
		}
	}
	return loc
}

func (l Location) String() string {
	switch {
	case l.Pos.Line > 0 && l.Pos.Col > 0:
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Pos.Line, l.Pos.Col)
	case l.Pos.Line > 0:
		return fmt.Sprintf("%s:%d", l.Path, l.Pos.Line)
	}
	return l.Path
}

type Note struct {
	Loc Location
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	Notes    []Note
}
