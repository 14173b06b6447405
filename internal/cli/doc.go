// Package cli implements the vecgen command-line surface.
//
// Commands:
//
//	generate  expand a config into a stimulus vector file
//	validate  check a config against the schema without generating
//	trace     expand a config and dump the trace to stdout
//	runs      inspect and verify the run journal
//
// All commands exit 0 on success and 1 on any configuration, I/O, or
// expansion error. Human-readable errors are prefixed ERROR: for
// configuration and I/O problems and FATAL: for terminal expansion
// errors; --format json wraps all output in the standard response
// envelope instead.
package cli
