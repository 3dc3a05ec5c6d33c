// Package csdbgerr defines the error taxonomy shared by the tracing
// library's foreground API (symtab, namespace, render, config). The
// instrumentation hooks in package tracer treat ErrLogic as fatal; every
// other kind is returned to the caller for the foreground API, or logged
// and swallowed by background subsystems (plugin callbacks, DSO
// iteration, the addr2line subprocess).
package csdbgerr

import "errors"

var (
	// ErrArgument marks a null or out-of-range caller input.
	ErrArgument = errors.New("csdbg: invalid argument")
	// ErrIO marks a file-not-found, unreadable, or stat failure.
	ErrIO = errors.New("csdbg: io error")
	// ErrBinaryFormat marks an invalid or stripped object file.
	ErrBinaryFormat = errors.New("csdbg: bad binary format")
	// ErrRegex marks a malformed filter or split-pattern regex.
	ErrRegex = errors.New("csdbg: bad regular expression")
	// ErrOSResource marks a failed socket/open/mmap/connect-equivalent call.
	ErrOSResource = errors.New("csdbg: os resource error")
	// ErrLogic marks an internal invariant violation. Callers at the
	// instrumentation hook boundary treat it as fatal.
	ErrLogic = errors.New("csdbg: internal logic error")
)
