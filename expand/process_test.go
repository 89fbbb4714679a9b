// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

type fakeEnviron map[string]string

func (f fakeEnviron) Get(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

type fakeSubstituter struct {
	out []byte
	err error
}

func (f fakeSubstituter) Capture(string) ([]byte, error) { return f.out, f.err }

func TestProcess(t *testing.T) {
	t.Parallel()
	vars := fakeEnviron{
		"x":    "hi",
		"name": "world",
		"0":    "clash",
		"1":    "a",
		"12":   "b",
		"#":    "2",
		"*":    "a b",
		"?":    "0",
	}
	sub := fakeSubstituter{out: []byte("output\n")}

	tests := []struct {
		in   string
		want string
	}{
		{"echo hi", "echo hi"},
		{"echo 'a b'", "echo 'a b'"},
		{"echo $x", "echo hi"},
		{"echo ${x}", "echo hi"},
		{"echo $xyz", "echo "},
		{"echo $1$12", "echo ab"},
		{"echo $#", "echo 2"},
		{"echo $*", "echo a b"},
		{"echo $?", "echo 0"},
		{"echo $name!", "echo world!"},
		{"echo ${name}!", "echo world!"},
		{"echo $ hi", "echo  hi"},
		{"echo `cmd`", "echo output"},
		{"echo \"a b\"", `echo 'a b'`},
		{`echo "it's"`, `echo 'it\'s'`},
		{`echo "\$x"`, `echo '$x'`},
		{`echo "\\"`, `echo '\'`},
		{`echo "\n"`, `echo '\n'`},
		{`echo \$x`, "echo $x"},
		{`echo \ hi`, `echo \ hi`},
		{`echo \a`, "echo a"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()
			got, err := Process(test.in, vars, sub)
			qt.Assert(t, err, qt.IsNil)
			qt.Assert(t, got, qt.Equals, test.want)
		})
	}
}

func TestProcessErrors(t *testing.T) {
	t.Parallel()
	vars := fakeEnviron{}
	sub := fakeSubstituter{}
	tests := []struct {
		in      string
		wantErr Kind
	}{
		{`echo a\`, ErrTrailingBackslash},
		{"echo ${unterminated", ErrUnterminatedBraceName},
		{"echo ${}", ErrEmptyVariableName},
		{"echo `unterminated", ErrUnterminatedSubstitution},
	}
	for _, test := range tests {
		test := test
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()
			_, err := Process(test.in, vars, sub)
			qt.Assert(t, err, qt.Not(qt.IsNil))
			var perr *Error
			qt.Assert(t, errors.As(err, &perr), qt.IsTrue)
			qt.Assert(t, perr.Kind, qt.Equals, test.wantErr)
		})
	}
}

func TestProcessCommandSubstitutionError(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("boom")
	sub := fakeSubstituter{err: wantErr}
	_, err := Process("echo `fail`", fakeEnviron{}, sub)
	qt.Assert(t, err, qt.Equals, wantErr)
}
