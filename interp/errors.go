// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import "fmt"

// ExitError is returned by Eval when the exit builtin was run. The
// driver should treat it as a request to terminate the process with
// Code, rather than a diagnostic to print and recover from.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// builtinError is a BuiltinFailure (spec.md §7): it aborts the current
// command (?'s caller sets status) without aborting the rest of the
// command sequence.
type builtinError struct {
	text string
}

func (e *builtinError) Error() string { return e.text }

func builtinErrorf(format string, args ...any) *builtinError {
	return &builtinError{text: fmt.Sprintf(format, args...)}
}
