// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"os"
	"strings"
)

// splitState tracks which quoting/substitution regions are currently
// open while the splitter scans the script. Unlike a single tagged
// enum, more than one of these can be true at once — e.g. a backslash
// can appear while a double-quoted region is open — so each field
// documents its own toggle guard rather than forcing an artificial
// single-valued state.
type splitState struct {
	backslashed  bool
	singleQuoted bool
	doubleQuoted bool
	commandSub   bool
	braceName    bool
}

// idle reports whether none of the quoting/substitution regions are
// open, meaning a ';', '|' or newline found here is a real command
// separator rather than literal text.
func (s splitState) idle() bool {
	return !s.backslashed && !s.singleQuoted && !s.doubleQuoted && !s.commandSub && !s.braceName
}

// Split scans script and emits the sequence of Commands separated by
// ';', newline or '|', honouring quote/escape/substitution boundaries.
// Adjacent '|'-separated Commands have an OS pipe created between them
// and wired into their Stdout/Stdin immediately.
func Split(script string) ([]*Command, error) {
	input := script + ";" // normalises the tail case, per spec.md §4.1
	var (
		st         splitState
		shouldPipe bool
		buf        strings.Builder
		commands   []*Command
	)

scan:
	for i := 0; i < len(input); i++ {
		c := input[i]

		switch c {
		case '\\':
			if !st.singleQuoted && !st.braceName {
				st.backslashed = !st.backslashed
			}
			buf.WriteByte(c)
			continue
		case '\'':
			if !st.backslashed && !st.doubleQuoted && !st.braceName {
				st.singleQuoted = !st.singleQuoted
			}
		case '"':
			if !st.backslashed && !st.singleQuoted && !st.braceName {
				st.doubleQuoted = !st.doubleQuoted
			}
		case '`':
			if !st.backslashed && !st.singleQuoted && !st.braceName {
				st.commandSub = !st.commandSub
			}
		case '$':
			if !st.backslashed && !st.singleQuoted && !st.braceName &&
				i+1 < len(input) && input[i+1] == '{' {
				st.braceName = true
			}
		case '}':
			st.braceName = false
		case ';', '\n', '|':
			if st.backslashed && i == len(input)-1 {
				// A backslash at the end of script would only escape the
				// appended terminator; leave it set for the checks below.
				break scan
			}
			if st.idle() {
				text := strings.TrimSpace(buf.String())
				if text == "" {
					if shouldPipe {
						return nil, newError(ErrIncompletePipeline, i)
					}
					continue
				}
				commands = append(commands, newCommand(text))
				buf.Reset()

				if shouldPipe {
					if err := wirePipe(commands[len(commands)-2], commands[len(commands)-1]); err != nil {
						return nil, err
					}
				}
				shouldPipe = c == '|'
				continue
			}
		}

		st.backslashed = false
		buf.WriteByte(c)
	}

	switch {
	case st.singleQuoted || st.doubleQuoted:
		return nil, newError(ErrUnterminatedQuote, len(input))
	case st.commandSub:
		return nil, newError(ErrUnterminatedSubstitution, len(input))
	case st.braceName:
		return nil, newError(ErrUnterminatedBraceName, len(input))
	case st.backslashed:
		return nil, newError(ErrTrailingBackslash, len(input))
	}
	return commands, nil
}

// wirePipe creates an OS pipe and assigns its write end to prev's
// Stdout and its read end to next's Stdin, marking both as pipeline
// members. The parent owns closing both ends after spawning the
// commands that use them.
func wirePipe(prev, next *Command) error {
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	prev.Stdout = w
	prev.ownsStdout = true
	prev.InPipeline = true
	next.Stdin = r
	next.ownsStdin = true
	next.InPipeline = true
	return nil
}
