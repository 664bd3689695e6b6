package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"taskfmt/internal/diag"
	"taskfmt/internal/source"
)

type palette struct {
	err, warn, info, path, gutter, caret, note func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	default:
		return p.info(sev.String())
	}
}

// Pretty renders diagnostics in a human readable form. It walks
// bag.Items() (call bag.Sort() beforehand) and prints for each entry:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the surrounding source lines with a caret under the column
// and, when enabled, the notes in the same layout.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		loc := d.Primary
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path(locationLabel(loc, fs, opts.PathMode)),
			p.severity(d.Severity),
			d.Code.ID(),
			d.Message,
		)
		writeExcerpt(w, p, fs, loc, opts.Context)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			nloc := note.Loc
			if nloc.Path == "" {
				nloc.Path = loc.Path
			}
			fmt.Fprintf(w, "  %s %s: %s\n", p.note("note:"), locationLabel(nloc, fs, opts.PathMode), note.Msg)
		}
	}
}

func locationLabel(loc diag.Location, fs *source.FileSet, mode PathMode) string {
	loc.Path = displayPath(loc.Path, fs, mode)
	return loc.String()
}

func writeExcerpt(w io.Writer, p palette, fs *source.FileSet, loc diag.Location, context int8) {
	if fs == nil || !loc.Pos.IsValid() {
		return
	}
	f, ok := fs.GetByPath(loc.Path)
	if !ok {
		return
	}
	ctx := uint32(max(context, 0)) // #nosec G115 -- non-negative int8
	first := uint32(1)
	if loc.Pos.Line > ctx {
		first = loc.Pos.Line - ctx
	}
	last := loc.Pos.Line + ctx
	if lines := uint32(f.LineCount()); last > lines { // #nosec G115 -- bounded by file size
		last = max(lines, loc.Pos.Line)
	}
	width := len(fmt.Sprint(last))

	for n := first; n <= last; n++ {
		text := strings.TrimRight(f.GetLine(n), "\r")
		fmt.Fprintf(w, " %s %s\n", p.gutter(fmt.Sprintf("%*d |", width, n)), text)
		if n == loc.Pos.Line && loc.Pos.Col > 0 {
			pad := caretPadding(text, int(loc.Pos.Col))
			fmt.Fprintf(w, " %s %s%s\n", p.gutter(strings.Repeat(" ", width)+" |"), pad, p.caret("^"))
		}
	}
}

// caretPadding reproduces the leading whitespace of text up to col so tabs
// line up with the source.
func caretPadding(text string, col int) string {
	var b strings.Builder
	for i, r := range text {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	if n := col - 1 - len(text); n > 0 {
		b.WriteString(strings.Repeat(" ", n))
	}
	return b.String()
}
