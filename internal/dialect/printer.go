package dialect

import (
	"errors"

	"gopkg.in/yaml.v3"

	"taskfmt/internal/diag"
	"taskfmt/internal/document"
	"taskfmt/internal/format"
)

// Printer is the printer entry of the dialect.
type Printer struct {
	Options format.Options
}

// Print formats a parsed document. On failure one diagnostic is reported
// against name and the *format.FormatError is returned.
func (p Printer) Print(name string, doc *yaml.Node, r diag.Reporter) ([]byte, error) {
	out, err := format.Print(doc, p.Options)
	if err != nil {
		if r != nil {
			b := diag.ReportError(r, diag.FmtFailed, diag.At(name, 0, 0), err.Error())
			var ee *document.EmitError
			if errors.As(err, &ee) && ee.Path != "" {
				b = b.WithNote(diag.At(name, 0, 0), "while emitting "+ee.Path)
			}
			b.Emit()
		}
		return nil, err
	}
	return out, nil
}
