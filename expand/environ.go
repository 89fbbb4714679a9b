// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

// Environ is the variable-lookup side of session state that Process
// needs. It is satisfied by interp.Session, kept here as a narrow
// interface so that this package never has to import interp.
type Environ interface {
	// Get returns the value bound to name and whether it is bound at
	// all. Unbound names expand to "".
	Get(name string) (value string, ok bool)
}

// Substituter runs a subcommand and returns what it wrote to stdout,
// unprocessed. It is satisfied by interp.Runner's Capture method, which
// implements the output-capturing sub-evaluator.
type Substituter interface {
	Capture(script string) ([]byte, error)
}
