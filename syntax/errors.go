// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package syntax implements the command splitter and word splitter
// stages of the clash script evaluator.
package syntax

import "fmt"

// Kind identifies the class of a syntax error, independent of where in
// the script it was found.
type Kind int

const (
	// ErrUnterminatedQuote means a ' or " was opened but never closed.
	ErrUnterminatedQuote Kind = iota
	// ErrUnterminatedSubstitution means a ` was opened but never closed.
	ErrUnterminatedSubstitution
	// ErrUnterminatedBraceName means a ${ was opened but never closed
	// with a }.
	ErrUnterminatedBraceName
	// ErrTrailingBackslash means the script ends with an unescaped
	// backslash.
	ErrTrailingBackslash
	// ErrIncompletePipeline means a | was followed by an empty command.
	ErrIncompletePipeline
	// ErrMissingRedirectTarget means < or > was not followed by a
	// filename before the next < or > or the end of input.
	ErrMissingRedirectTarget
	// ErrFileOpenFailed means a redirect's target file could not be
	// opened; Text carries the underlying OS error.
	ErrFileOpenFailed
)

func (k Kind) String() string {
	switch k {
	case ErrUnterminatedQuote:
		return "unterminated quote"
	case ErrUnterminatedSubstitution:
		return "unterminated command substitution"
	case ErrUnterminatedBraceName:
		return "unterminated brace name"
	case ErrTrailingBackslash:
		return "trailing backslash"
	case ErrIncompletePipeline:
		return "incomplete pipeline"
	case ErrMissingRedirectTarget:
		return "missing redirect target"
	case ErrFileOpenFailed:
		return "redirect target could not be opened"
	default:
		return "syntax error"
	}
}

// Error is returned by Split and Words when the scanned text cannot be
// turned into commands or words. It satisfies errors.Is against its
// Kind via Is.
type Error struct {
	Kind Kind
	// Pos is the byte offset within the scanned text at which the
	// error was detected.
	Pos int
	Text string
}

func (e *Error) Error() string {
	if e.Text != "" {
		return e.Text
	}
	return e.Kind.String()
}

// Is reports whether target is the same Kind as e, so that callers can
// write errors.Is(err, syntax.ErrTrailingBackslash)-style checks
// against the Kind constants directly.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	return false
}

func (k Kind) Error() string { return k.String() }

func newError(kind Kind, pos int) error {
	return &Error{Kind: kind, Pos: pos, Text: fmt.Sprintf("%s at byte %d", kind, pos)}
}
