// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/maxdarling/clash-shell/expand"
	"github.com/maxdarling/clash-shell/syntax"
)

// Runner is the Executor of spec.md §4.4: it dispatches each Command
// the syntax package produces, mutating Session as it goes.
type Runner struct {
	Session *Session

	// Stdin and Stdout are the streams unredirected commands inherit.
	// During a command substitution, Stdout is temporarily swapped for
	// a pipe by Capture; everything else about dispatch is unaware of
	// the swap.
	Stdin, Stdout *os.File
	Stderr        io.Writer
}

// NewRunner builds a Runner over sess, reading from stdin and writing
// to stdout/stderr by default.
func NewRunner(sess *Session, stdin, stdout *os.File, stderr io.Writer) *Runner {
	return &Runner{Session: sess, Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

// Eval splits, expands, and dispatches script, printing any stage
// failure as "clash: <message>" and letting the session continue —
// except for the exit builtin, whose *ExitError is returned to the
// caller so the driver can terminate the process.
func (r *Runner) Eval(script string) error {
	err := r.run(script)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	fmt.Fprintf(r.Stderr, "clash: %s\n", err)
	return nil
}

// run is Eval without the print-and-continue wrapping: it stops at the
// first stage failure (Split/Process/Words) or exit request and
// returns it. Capture uses this directly so a failure inside a command
// substitution is reported to its caller instead of to stderr.
func (r *Runner) run(script string) error {
	cmds, err := syntax.Split(script)
	if err != nil {
		return err
	}
	return r.runCommands(cmds)
}

func (r *Runner) runCommands(cmds []*syntax.Command) error {
	i := 0
	for i < len(cmds) {
		if cmds[i].InPipeline {
			j := i
			for j < len(cmds) && cmds[j].InPipeline {
				j++
			}
			if err := r.runPipeline(cmds[i:j]); err != nil {
				return err
			}
			i = j
			continue
		}
		if err := r.runOne(cmds[i]); err != nil {
			return err
		}
		i++
	}
	return nil
}

// prepare runs the expand and word-splitting stages over cmd, in
// place, returning its argv.
func (r *Runner) prepare(cmd *syntax.Command) ([]string, error) {
	processed, err := expand.Process(cmd.Text, r.Session, r)
	if err != nil {
		return nil, err
	}
	cmd.Text = processed
	cmd.SetDefaultIO(r.Stdin, r.Stdout)
	return syntax.Words(cmd)
}

func (r *Runner) runOne(cmd *syntax.Command) error {
	argv, err := r.prepare(cmd)
	if err != nil {
		return err
	}
	defer cmd.CloseOwned()
	return r.dispatch(cmd, argv)
}

// dispatch implements spec.md §4.4's order: empty argv, assignment,
// builtin, external. Only the exit builtin's *ExitError propagates as
// a Go error; everything else just updates ? and is reported to
// stderr.
func (r *Runner) dispatch(cmd *syntax.Command, argv []string) error {
	if len(argv) == 0 {
		return nil
	}
	if name, value, ok := parseAssignment(argv); ok {
		r.Session.Set(name, value)
		return nil
	}
	if isBuiltin(argv[0]) {
		status, err := r.runBuiltin(argv[0], argv[1:])
		r.Session.SetStatus(status)
		if err != nil {
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				return err
			}
			fmt.Fprintf(r.Stderr, "clash: %s\n", err)
		}
		return nil
	}

	status, err := r.runExternal(cmd, argv)
	r.Session.SetStatus(status)
	if err != nil {
		fmt.Fprintf(r.Stderr, "clash: %s\n", err)
	}
	return nil
}

// runExternal resolves and runs a single, non-pipelined external
// command, waiting for it to finish.
func (r *Runner) runExternal(cmd *syntax.Command, argv []string) (status int, err error) {
	path, err := r.Session.resolve(argv[0])
	if err != nil {
		return 127, err
	}
	ec := exec.Command(path, argv[1:]...)
	ec.Args[0] = argv[0]
	ec.Stdin, ec.Stdout, ec.Stderr = cmd.Stdin, cmd.Stdout, os.Stderr
	ec.Dir = r.Session.Dir

	runErr := ec.Run()
	return exitCodeOf(runErr), forkExecErr(runErr)
}

// runPipeline runs a maximal run of '|'-connected commands: it expands
// and word-splits every stage first (aborting the whole pipeline if
// any stage's syntax is bad), starts every external stage, closing
// each stage's owned descriptors in the parent as soon as that stage
// has been started (never after the whole pipeline finishes, or the
// downstream reader would block forever waiting for EOF), then waits
// for all of them. The last stage's exit status becomes ?.
func (r *Runner) runPipeline(cmds []*syntax.Command) error {
	argvs := make([][]string, len(cmds))
	for i, cmd := range cmds {
		argv, err := r.prepare(cmd)
		if err != nil {
			for _, c := range cmds[:i] {
				c.CloseOwned()
			}
			return err
		}
		argvs[i] = argv
	}

	statuses := make([]int, len(cmds))
	execCmds := make([]*exec.Cmd, len(cmds))

	for i, cmd := range cmds {
		argv := argvs[i]
		switch {
		case len(argv) == 0:
			cmd.CloseOwned()

		case isBuiltin(argv[0]):
			status, err := r.runBuiltin(argv[0], argv[1:])
			statuses[i] = status
			if err != nil {
				var exitErr *ExitError
				if errors.As(err, &exitErr) {
					cmd.CloseOwned()
					return err
				}
				fmt.Fprintf(r.Stderr, "clash: %s\n", err)
			}
			cmd.CloseOwned()

		default:
			if name, value, ok := parseAssignment(argv); ok {
				r.Session.Set(name, value)
				cmd.CloseOwned()
				continue
			}
			path, err := r.Session.resolve(argv[0])
			if err != nil {
				statuses[i] = 127
				fmt.Fprintf(r.Stderr, "clash: %s\n", err)
				cmd.CloseOwned()
				continue
			}
			ec := exec.Command(path, argv[1:]...)
			ec.Args[0] = argv[0]
			ec.Stdin, ec.Stdout, ec.Stderr = cmd.Stdin, cmd.Stdout, os.Stderr
			ec.Dir = r.Session.Dir
			if err := ec.Start(); err != nil {
				statuses[i] = 127
				fmt.Fprintf(r.Stderr, "clash: %s\n", err)
				cmd.CloseOwned()
				continue
			}
			cmd.CloseOwned()
			execCmds[i] = ec
		}
	}

	var g errgroup.Group
	for i, ec := range execCmds {
		if ec == nil {
			continue
		}
		i, ec := i, ec
		g.Go(func() error {
			runErr := ec.Wait()
			statuses[i] = exitCodeOf(runErr)
			return forkExecErr(runErr)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(r.Stderr, "clash: %s\n", err)
	}

	r.Session.SetStatus(statuses[len(statuses)-1])
	return nil
}

// parseAssignment reports whether argv is exactly one NAME=VALUE
// token with a legal assignment-target name.
func parseAssignment(argv []string) (name, value string, ok bool) {
	if len(argv) != 1 {
		return "", "", false
	}
	name, value, found := strings.Cut(argv[0], "=")
	if !found || !isAssignable(name) {
		return "", "", false
	}
	return name, value, true
}

// exitCodeOf extracts the 0-255 exit code from a finished exec.Cmd's
// Wait/Run error, per the Open Question resolution in DESIGN.md:
// always the extracted code, never a raw wait-status word.
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 127
}

// forkExecErr returns err only when it represents a ForkExecFailed
// (the command never ran), not a plain nonzero exit, which is not an
// error in the Go sense — it only moves ?.
func forkExecErr(err error) error {
	var exitErr *exec.ExitError
	if err == nil || errors.As(err, &exitErr) {
		return nil
	}
	return err
}
