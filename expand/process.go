// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import "strings"

const oneCharVars = "#*?"

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Process turns the raw text of a command, as produced by syntax.Split,
// into the single-quote-and-backslash alphabet that syntax.Words
// expects: it resolves variable references and command substitutions
// and rewrites double-quoted regions into escaped single-quoted ones.
//
// vars resolves $name references. sub runs the script inside a
// backtick pair and returns its captured stdout.
func Process(text string, vars Environ, sub Substituter) (string, error) {
	var out strings.Builder

	var (
		singleQuoted, doubleQuoted bool
		varSub, nameInBraces       bool
		commandSub, subBackslashed bool
		varName, subcommand        strings.Builder
	)

	flushVar := func() {
		val, _ := vars.Get(varName.String())
		out.WriteString(val)
		varName.Reset()
	}

	i := 0
	for i < len(text) {
		c := text[i]

		switch {
		case singleQuoted:
			out.WriteByte(c)
			if c == '\'' {
				singleQuoted = false
			}
			i++
			continue

		case commandSub:
			switch {
			case subBackslashed:
				subcommand.WriteByte(c)
				subBackslashed = false
			case c == '\\':
				subcommand.WriteByte(c)
				subBackslashed = true
			case c == '`':
				commandSub = false
				captured, err := sub.Capture(subcommand.String())
				if err != nil {
					return "", err
				}
				out.WriteString(postprocessCapture(captured))
				subcommand.Reset()
			default:
				subcommand.WriteByte(c)
			}
			i++
			continue

		case varSub:
			switch {
			case nameInBraces:
				if c == '}' {
					nameInBraces = false
					varSub = false
					i++
					if varName.Len() == 0 {
						return "", newError(ErrEmptyVariableName, i)
					}
					flushVar()
					continue
				}
				varName.WriteByte(c)
				i++
				continue

			case varName.Len() == 0:
				switch {
				case strings.IndexByte(oneCharVars, c) >= 0:
					varName.WriteByte(c)
					i++
					varSub = false
					flushVar()
				case c == '{':
					nameInBraces = true
					i++
				case isAlnum(c):
					varName.WriteByte(c)
					i++
				default:
					// Nothing qualifies as a variable name: the $ is
					// discarded and c is re-dispatched below, in this
					// same pass, since i was not advanced.
					varSub = false
				}
				continue

			default:
				firstIsDigit := isDigit(varName.String()[0])
				if !isAlnum(c) || (firstIsDigit && !isDigit(c)) {
					// Name complete; c belongs to the outer state and
					// is re-dispatched below without advancing i.
					varSub = false
					flushVar()
					continue
				}
				varName.WriteByte(c)
				i++
				continue
			}
		}

		switch c {
		case '\\':
			if i+1 >= len(text) {
				return "", newError(ErrTrailingBackslash, i)
			}
			next := text[i+1]
			if doubleQuoted {
				switch next {
				case '$', '`', '"', '\\':
					out.WriteByte(next)
				case '\'':
					out.WriteString(`\'`)
				default:
					out.WriteByte('\\')
					out.WriteByte(next)
				}
			} else {
				switch next {
				case ' ', '\t', '<', '>':
					out.WriteByte('\\')
					out.WriteByte(next)
				default:
					out.WriteByte(next)
				}
			}
			i += 2

		case '\'':
			if doubleQuoted {
				out.WriteString(`\'`)
			} else {
				out.WriteByte('\'')
				singleQuoted = true
			}
			i++

		case '"':
			out.WriteByte('\'')
			doubleQuoted = !doubleQuoted
			i++

		case '$':
			varSub, nameInBraces = true, false
			varName.Reset()
			i++

		case '`':
			commandSub, subBackslashed = true, false
			subcommand.Reset()
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}

	if nameInBraces {
		return "", newError(ErrUnterminatedBraceName, len(text))
	}
	if varSub && varName.Len() > 0 {
		flushVar()
	}
	if singleQuoted || doubleQuoted {
		return "", newError(ErrUnterminatedQuote, len(text))
	}
	if commandSub {
		return "", newError(ErrUnterminatedSubstitution, len(text))
	}

	return out.String(), nil
}

// postprocessCapture turns the raw output of a command substitution into
// the text Process inserts: it trims a single trailing newline and folds
// every remaining newline and tab into a space.
func postprocessCapture(b []byte) string {
	s := strings.TrimSuffix(string(b), "\n")
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}
