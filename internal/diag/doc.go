// Package diag defines the diagnostic model shared by the formatting stages.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     loading, parsing, formatting and writing Taskfiles.
//   - Offer light-weight utilities (Reporter, Bag, ReportBuilder) that let
//     producers emit diagnostics without coupling to storage or rendering.
//
// # Scope
//
// Package diag does not perform any IO or CLI integration. Rich rendering
// lives in internal/diagfmt; FormatShortDiagnostics provides the stable
// one-line form used by golden tests and the short CLI output.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code: compact numeric identifier (see codes.go) with stable string form.
//   - Message: human oriented text; keep it short and actionable.
//   - Primary: the Location (path, line, column) the finding points at.
//     Line 0 means the finding concerns the file as a whole.
//   - Notes: optional secondary locations/messages for additional context.
//
// # Emitting diagnostics
//
// Producers receive a Reporter and call ReportError / ReportWarning to get a
// ReportBuilder, attach notes, then Emit. BagReporter collects into a Bag
// with an upper bound on the number of stored entries.
package diag
