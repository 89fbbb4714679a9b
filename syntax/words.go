// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"os"
	"strings"
)

func isWordBreak(b byte) bool {
	return b == ' ' || b == '\t' || b == '<' || b == '>'
}

// Words scans cmd.Text, which must already have been reduced by
// expand.Process to the single-quote-and-backslash alphabet described
// in spec.md §3, into an argument vector. Along the way it applies any
// "<file"/">file" redirects it finds to cmd.Stdin/cmd.Stdout and
// records the argv on cmd.
func Words(cmd *Command) ([]string, error) {
	text := cmd.Text

	var (
		argv    []string
		word    strings.Builder
		quoted  bool

		backslashed, singleQuoted, doubleQuoted bool
		expectInputFile, expectOutputFile       bool
	)

	flush := func(pos int) error {
		if word.Len() == 0 && !quoted {
			return nil
		}
		w := word.String()
		word.Reset()
		quoted = false

		switch {
		case expectInputFile:
			f, err := os.Open(w)
			if err != nil {
				return &Error{Kind: ErrFileOpenFailed, Pos: pos, Text: err.Error()}
			}
			if cmd.ownsStdin {
				cmd.Stdin.Close()
			}
			cmd.Stdin, cmd.ownsStdin = f, true
			expectInputFile = false
		case expectOutputFile:
			f, err := os.OpenFile(w, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				return &Error{Kind: ErrFileOpenFailed, Pos: pos, Text: err.Error()}
			}
			if cmd.ownsStdout {
				cmd.Stdout.Close()
			}
			cmd.Stdout, cmd.ownsStdout = f, true
			expectOutputFile = false
		default:
			argv = append(argv, w)
		}
		return nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case backslashed:
			word.WriteByte(c)
			quoted = true
			backslashed = false
			continue
		case singleQuoted:
			if c == '\'' {
				singleQuoted = false
			} else {
				word.WriteByte(c)
			}
			quoted = true
			continue
		case doubleQuoted:
			if c == '"' {
				doubleQuoted = false
			} else {
				word.WriteByte(c)
			}
			quoted = true
			continue
		}

		switch c {
		case '\\':
			backslashed = true
		case '\'':
			singleQuoted, quoted = true, true
		case '"':
			doubleQuoted, quoted = true, true
		case ' ', '\t', '<', '>':
			if err := flush(i); err != nil {
				return nil, err
			}
			if c == '<' || c == '>' {
				if expectInputFile || expectOutputFile {
					return nil, newError(ErrMissingRedirectTarget, i)
				}
				if c == '<' {
					expectInputFile = true
				} else {
					expectOutputFile = true
				}
			}
		default:
			word.WriteByte(c)
		}
	}

	if singleQuoted || doubleQuoted {
		return nil, newError(ErrUnterminatedQuote, len(text))
	}
	if err := flush(len(text)); err != nil {
		return nil, err
	}
	if expectInputFile || expectOutputFile {
		return nil, newError(ErrMissingRedirectTarget, len(text))
	}

	cmd.Argv = argv
	return argv, nil
}
