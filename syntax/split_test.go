// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func texts(cmds []*Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Text
	}
	return out
}

func TestSplit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"echo hi", []string{"echo hi"}},
		{"echo hi;echo bye", []string{"echo hi", "echo bye"}},
		{"echo hi\necho bye", []string{"echo hi", "echo bye"}},
		{"echo 'a;b'", []string{"echo 'a;b'"}},
		{`echo "a;b"`, []string{`echo "a;b"`}},
		{"echo `a;b`", []string{"echo `a;b`"}},
		{"a=${x;y}", []string{"a=${x;y}"}},
		{";;;echo hi;;;", []string{"echo hi"}},
		{`x=\;; echo $x`, []string{`x=\;`, "echo $x"}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()
			cmds, err := Split(test.in)
			qt.Assert(t, err, qt.IsNil)
			qt.Assert(t, texts(cmds), qt.DeepEquals, test.want)
		})
	}
}

func TestSplitErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		wantErr Kind
	}{
		{"echo 'unterminated", ErrUnterminatedQuote},
		{`echo "unterminated`, ErrUnterminatedQuote},
		{"echo `unterminated", ErrUnterminatedSubstitution},
		{"echo ${unterminated", ErrUnterminatedBraceName},
		{`echo a\`, ErrTrailingBackslash},
		{"echo a |", ErrIncompletePipeline},
		{"echo a ||echo b", ErrIncompletePipeline},
	}
	for _, test := range tests {
		test := test
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()
			_, err := Split(test.in)
			qt.Assert(t, err, qt.Not(qt.IsNil))
			var serr *Error
			qt.Assert(t, errors.As(err, &serr), qt.IsTrue)
			qt.Assert(t, serr.Kind, qt.Equals, test.wantErr)
		})
	}
}

func TestSplitPipeline(t *testing.T) {
	t.Parallel()
	cmds, err := Split("echo hi | cat")
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, len(cmds), qt.Equals, 2)
	qt.Assert(t, cmds[0].InPipeline, qt.IsTrue)
	qt.Assert(t, cmds[1].InPipeline, qt.IsTrue)
	qt.Assert(t, cmds[0].Stdout, qt.Not(qt.IsNil))
	qt.Assert(t, cmds[1].Stdin, qt.Not(qt.IsNil))
	qt.Assert(t, cmds[0].Stdout, qt.Not(qt.Equals), cmds[1].Stdin)
}

func TestSplitThreeStagePipeline(t *testing.T) {
	t.Parallel()
	cmds, err := Split("sleep 1 | sleep 1 | sleep 1")
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, len(cmds), qt.Equals, 3)
	for _, c := range cmds {
		qt.Assert(t, c.InPipeline, qt.IsTrue)
	}
}
