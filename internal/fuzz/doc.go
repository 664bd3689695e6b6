// Package fuzztests houses Go fuzz harnesses for the Taskfile formatting
// pipeline (source -> document -> format). They guard against panics that
// escape the ParseError/FormatError boundary and against output that does
// not survive a second pass.
package fuzztests
