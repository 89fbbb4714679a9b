// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package interp implements the executor stage of the clash script
// evaluator and the session state it shares with the other stages.
package interp

import (
	"os"
	"strconv"
	"strings"
)

// Session holds the three collections spec.md §3 calls Session State:
// variable bindings, the PATH directory list, and the command-path
// cache. It is constructed once per shell invocation and lives for the
// whole session.
type Session struct {
	vars map[string]string

	// pathDirs is the ordered, left-to-right PATH directory list, with
	// "." always present (see DESIGN.md's Open Question resolution).
	pathDirs []string

	// pathCache maps a resolved command's basename to its absolute
	// path. Populated lazily, never invalidated within a session.
	pathCache map[string]string

	// Dir is the session's current working directory, mutated by cd.
	Dir string
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithArgs seeds the positional parameters $1.. and the special names
// $0, $#, $* from the driver's script arguments.
func WithArgs(scriptName string, args []string) Option {
	return func(s *Session) {
		s.vars["0"] = scriptName
		for i, a := range args {
			s.vars[strconv.Itoa(i+1)] = a
		}
		s.vars["#"] = strconv.Itoa(len(args))
		s.vars["*"] = strings.Join(args, " ")
	}
}

// WithEnviron seeds variable bindings and PATH from a process
// environment in os.Environ() form ("NAME=VALUE").
func WithEnviron(environ []string) Option {
	return func(s *Session) {
		for _, kv := range environ {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			s.vars[name] = value
		}
	}
}

// defaultPath is used when PATH is unset in the ambient environment,
// per spec.md §6.
const defaultPath = "/usr/local/bin:/usr/local/sbin:/usr/bin:/usr/sbin:/bin:/sbin"

// NewSession builds a Session from opts, then normalizes PATH and ?
// and records the current working directory. It reads no environment
// variables itself; WithEnviron supplies them.
func NewSession(opts ...Option) *Session {
	s := &Session{
		vars:      make(map[string]string),
		pathCache: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := s.vars["?"]; !ok {
		s.vars["?"] = "0"
	}
	if dir, err := os.Getwd(); err == nil {
		s.Dir = dir
	}
	s.pathDirs = splitPath(s.vars["PATH"])
	return s
}

func splitPath(path string) []string {
	if path == "" {
		path = defaultPath
	}
	dirs := strings.Split(path, ":")
	for _, d := range dirs {
		if d == "." {
			return dirs
		}
	}
	return append(dirs, ".")
}

// Get implements expand.Environ.
func (s *Session) Get(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set assigns name to value. isAssignable should already have been
// checked by the caller for user-originated assignments; Set itself
// does not enforce the letter-then-alnum naming rule so that session
// initialization can freely set positional/special names.
func (s *Session) Set(name, value string) {
	s.vars[name] = value
}

// Unset removes name from bindings and, if present, from the ambient
// environment (so it is not inherited by child processes).
func (s *Session) Unset(name string) {
	delete(s.vars, name)
	os.Unsetenv(name)
}

// Export copies name's current binding into the ambient process
// environment, so external commands inherit it. Unknown names are a
// silent no-op, per spec.md §4.4.
func (s *Session) Export(name string) {
	if v, ok := s.vars[name]; ok {
		os.Setenv(name, v)
	}
}

// SetStatus records a foreground command's exit code as the decimal
// string bound to ?.
func (s *Session) SetStatus(code int) {
	s.vars["?"] = strconv.Itoa(code)
}

// Status returns the last-recorded exit status as an int, defaulting
// to 0 if ? is somehow unparsable.
func (s *Session) Status() int {
	n, _ := strconv.Atoi(s.vars["?"])
	return n
}

// isAssignable reports whether name is a legal user-assignment target:
// a letter followed by letters/digits/underscores.
func isAssignable(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_') {
			return false
		}
	}
	return true
}
