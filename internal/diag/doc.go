// Package diag defines the diagnostic model shared by the lexer and parser.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer and parser.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//   - Model fix suggestions as plain text edits.
//
// # Scope
//
// Package diag does no formatting beyond the single-line short form used by
// tests and the batch driver. Pretty rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable string form (LEX1001, SYN2001, ...).
//   - Message – short, actionable text.
//   - Primary – the source.Span pointing at the issue.
//   - Notes – optional secondary spans with extra context.
//   - Fixes – optional edits that would make the input parse.
//
// # Emitting diagnostics
//
// Phases talk to a Reporter. ReportError/ReportWarning/ReportInfo build a
// diagnostic fluently (WithNote, WithFix) and Emit sends it once. BagReporter
// collects into a Bag, which supports sorting, deduplication and a capacity
// limit.
package diag
