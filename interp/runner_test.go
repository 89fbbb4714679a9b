// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"errors"
	"os/exec"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		argv      []string
		wantName  string
		wantValue string
		wantOk    bool
	}{
		{[]string{"x=abc"}, "x", "abc", true},
		{[]string{"x="}, "x", "", true},
		{[]string{"x=a=b"}, "x", "a=b", true},
		{[]string{"echo", "x=abc"}, "", "", false},
		{[]string{"1x=abc"}, "", "", false},
		{[]string{"echo"}, "", "", false},
	}
	for _, test := range tests {
		name, value, ok := parseAssignment(test.argv)
		qt.Assert(t, ok, qt.Equals, test.wantOk)
		if test.wantOk {
			qt.Assert(t, name, qt.Equals, test.wantName)
			qt.Assert(t, value, qt.Equals, test.wantValue)
		}
	}
}

func TestExitCodeOf(t *testing.T) {
	qt.Assert(t, exitCodeOf(nil), qt.Equals, 0)
	qt.Assert(t, exitCodeOf(errors.New("fork/exec: no such file or directory")), qt.Equals, 127)
}

func TestForkExecErr(t *testing.T) {
	qt.Assert(t, forkExecErr(nil), qt.IsNil)

	forkErr := errors.New("fork/exec /bin/doesnotexist: no such file or directory")
	qt.Assert(t, forkExecErr(forkErr), qt.Equals, forkErr)

	// A plain nonzero exit is not a Go-level error.
	runErr := exec.Command("false").Run()
	qt.Assert(t, runErr, qt.Not(qt.IsNil))
	qt.Assert(t, forkExecErr(runErr), qt.IsNil)
}

func TestDispatchEmptyArgvIsNoop(t *testing.T) {
	r := &Runner{Session: NewSession()}
	err := r.dispatch(nil, nil)
	qt.Assert(t, err, qt.IsNil)
}

func TestDispatchAssignmentSetsVariable(t *testing.T) {
	r := &Runner{Session: NewSession()}
	err := r.dispatch(nil, []string{"x=abc"})
	qt.Assert(t, err, qt.IsNil)
	v, ok := r.Session.Get("x")
	qt.Assert(t, ok, qt.IsTrue)
	qt.Assert(t, v, qt.Equals, "abc")
}
