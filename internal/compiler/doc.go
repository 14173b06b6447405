// Package compiler turns a decoded stimulus configuration into typed
// IR events.
//
// Compilation runs in two stages. The raw document (JSON or YAML,
// already decoded to a CUE value) is first unified with the embedded
// schema, which rejects structurally malformed configs - wrong field
// types, unknown event kinds, missing per-kind fields. The compiler
// then extracts the validated fields into ir.Event values, collecting
// every error found rather than failing fast, so a user sees all
// problems with a config in one pass.
//
// The engine trusts this package completely: once a sequence compiles,
// every event carries exactly the fields its kind requires.
package compiler
