// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// clash is a small POSIX-style command shell: a read-eval-print driver
// over the github.com/maxdarling/clash-shell/interp evaluator.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/maxdarling/clash-shell/interp"
)

var command = flag.String("c", "", "command to be executed")

func main() {
	flag.Parse()
	os.Exit(run())
}

// run selects one of the three invocation modes in spec.md §6 and
// returns the process exit code.
func run() int {
	args := flag.Args()
	switch {
	case *command != "":
		return runOnce(*command, args)
	case len(args) == 0:
		return runInteractive()
	default:
		return runFile(args[0], args[1:])
	}
}

func newSession(scriptName string, args []string) *interp.Session {
	return interp.NewSession(
		interp.WithEnviron(os.Environ()),
		interp.WithArgs(scriptName, args),
	)
}

// exitCode reports the process exit code for the outcome of a top-level
// Eval call: the explicit argument to exit if one fired, else the
// session's final ?.
func exitCode(err error, sess *interp.Session) int {
	var exitErr *interp.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return sess.Status()
}

func runOnce(script string, args []string) int {
	sess := newSession("-c", args)
	r := interp.NewRunner(sess, os.Stdin, os.Stdout, os.Stderr)
	return exitCode(r.Eval(script), sess)
}

func runFile(path string, args []string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clash: %s\n", err)
		return 1
	}
	sess := newSession(path, args)
	r := interp.NewRunner(sess, os.Stdin, os.Stdout, os.Stderr)
	return exitCode(r.Eval(string(data)), sess)
}

// runInteractive reads lines from standard input, printing the "% "
// prompt before each one when stdin is a terminal, until EOF or exit.
func runInteractive() int {
	sess := newSession("clash", nil)
	r := interp.NewRunner(sess, os.Stdin, os.Stdout, os.Stderr)

	isTerminal := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if isTerminal {
			fmt.Fprint(os.Stdout, "% ")
		}
		if !scanner.Scan() {
			break
		}
		var exitErr *interp.ExitError
		if err := r.Eval(scanner.Text()); errors.As(err, &exitErr) {
			return exitErr.Code
		}
	}
	return sess.Status()
}
