// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
)

// builtinNames are the four built-ins dispatched without forking, per
// spec.md §4.4.
var builtinNames = map[string]bool{
	"cd":     true,
	"exit":   true,
	"export": true,
	"unset":  true,
}

// isBuiltin reports whether name is one of the four recognized
// built-ins.
func isBuiltin(name string) bool {
	return builtinNames[name]
}

// runBuiltin dispatches one of the four built-ins and returns the exit
// status to store in ?. A non-nil err is either the *ExitError of exit,
// which the caller returns to end the session, or a BuiltinFailure: it
// is reported to stderr by the caller but does not abort the command
// sequence.
func (r *Runner) runBuiltin(name string, args []string) (status int, err error) {
	switch name {
	case "cd":
		return r.builtinCd(args)
	case "exit":
		return r.builtinExit(args)
	case "export":
		r.builtinExport(args)
		return 0, nil
	case "unset":
		r.builtinUnset(args)
		return 0, nil
	default:
		panic("interp: runBuiltin called with unknown builtin " + name)
	}
}

func (r *Runner) builtinCd(args []string) (int, error) {
	var dir string
	switch len(args) {
	case 0:
		dir, _ = r.Session.Get("HOME")
	case 1:
		dir = args[0]
	default:
		return 1, builtinErrorf("cd: too many arguments")
	}

	if err := os.Chdir(dir); err != nil {
		return 1, builtinErrorf("cd: %s: %s", dir, errnoMessage(err))
	}
	wd, err := os.Getwd()
	if err != nil {
		return 1, builtinErrorf("cd: %s: %s", dir, errnoMessage(err))
	}
	r.Session.Dir = wd
	return 0, nil
}

func (r *Runner) builtinExit(args []string) (int, error) {
	switch len(args) {
	case 0:
		return 0, &ExitError{Code: 0}
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 1, builtinErrorf("exit: %s: numeric argument required", args[0])
		}
		return n & 0xff, &ExitError{Code: n & 0xff}
	default:
		return 1, builtinErrorf("exit: too many arguments")
	}
}

func (r *Runner) builtinExport(names []string) {
	for _, name := range names {
		r.Session.Export(name)
	}
}

func (r *Runner) builtinUnset(names []string) {
	for _, name := range names {
		r.Session.Unset(name)
	}
}

// errnoMessage renders err the way a POSIX shell would report a failed
// syscall: a short, capitalized strerror-style string rather than Go's
// "chdir fakedirectory: no such file or directory" wrapping.
func errnoMessage(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	default:
		return err.Error()
	}
}
