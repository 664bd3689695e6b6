// Package dialect describes the Taskfile YAML dialect to a host: a language
// entry matched by file name, a parser entry and a printer entry.
//
// Failures are reported to a caller-supplied diag.Reporter and returned as
// errors. Nothing is written to the console.
package dialect
