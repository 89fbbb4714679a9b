// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// Capture is the Output-Capturing Sub-evaluator of spec.md §4.6. It
// satisfies expand.Substituter, so the Special-Syntax Processor can
// call back into the evaluator for backtick substitution.
//
// It saves the runner's current standard output, redirects it to a
// pipe, and evaluates script recursively while a goroutine drains the
// pipe concurrently. The drain must run alongside run, not after it:
// a pipe is a fixed-size OS buffer (~64KB), and run waits for every
// child it spawns before returning, so a child that writes more than
// that would block on its own write syscall forever if nothing were
// reading the other end in the meantime (spec §5's back-pressure
// hazard). Closing the write end after run finishes is what lets the
// drain goroutine see EOF and return.
func (r *Runner) Capture(script string) ([]byte, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&buf, pr)
		return err
	})

	saved := r.Stdout
	r.Stdout = pw
	evalErr := r.run(script)
	r.Stdout = saved
	pw.Close()

	drainErr := g.Wait()
	pr.Close()

	if evalErr != nil {
		return nil, evalErr
	}
	if drainErr != nil {
		return nil, drainErr
	}
	return buf.Bytes(), nil
}
