// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "os"

// Command is one ';'/newline/'|'-delimited unit of script text,
// together with the file descriptors it will read from and write to
// once dispatched. It is created by Split, mutated in place by the
// expand and word-splitting stages, and consumed by the executor.
type Command struct {
	// Text is the raw script fragment for this command. Split sets it
	// to the raw text; later stages overwrite it in place as they
	// process it further.
	Text string

	// Argv is the argument vector, populated by Words.
	Argv []string

	// Stdin and Stdout are the descriptors this command reads from and
	// writes to. They default to os.Stdin/os.Stdout and are replaced
	// by Split when the command is a pipeline member, and by Words
	// when the command carries a redirect.
	Stdin, Stdout *os.File

	// InPipeline is set when this command is part of a '|' chain.
	InPipeline bool

	// ownsStdin and ownsStdout record whether Stdin/Stdout were opened
	// by the evaluator (a pipe or a redirect target) and must be
	// closed by it after the command is dispatched, as opposed to the
	// process-wide standard streams, which must never be closed.
	ownsStdin, ownsStdout bool
}

func newCommand(text string) *Command {
	return &Command{Text: text, Stdin: os.Stdin, Stdout: os.Stdout}
}

// CloseOwned closes any pipe or redirect-opened file descriptors this
// command owns. It is a no-op for the process's standard streams.
func (c *Command) CloseOwned() {
	if c.ownsStdin {
		c.Stdin.Close()
	}
	if c.ownsStdout {
		c.Stdout.Close()
	}
}

// SetDefaultIO overrides c's Stdin/Stdout with stdin/stdout, but only
// on the side(s) Split left at their process-default value — a pipe
// end wired by Split is never overridden. Callers use this to route a
// command's unredirected ends to the evaluator's current standard
// streams, which may themselves be a capture pipe during a nested
// command substitution rather than the real os.Stdin/os.Stdout.
func (c *Command) SetDefaultIO(stdin, stdout *os.File) {
	if !c.ownsStdin {
		c.Stdin = stdin
	}
	if !c.ownsStdout {
		c.Stdout = stdout
	}
}
