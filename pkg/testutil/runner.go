// Package testutil provides shared test doubles for riceup packages.
package testutil

import (
	"context"
	"strings"
)

// Call records one command handed to the FakeRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call the way it would appear on a shell line,
// which keeps test assertions readable.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// FakeRunner implements cmdrun.Runner for tests. It records every call
// and answers via the optional Respond hook.
type FakeRunner struct {
	Calls []Call

	// Respond, if set, decides the output and error for each call.
	// When nil every command succeeds with empty output.
	Respond func(Call) (string, error)
}

func (f *FakeRunner) Run(_ context.Context, dir string, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)

	if f.Respond != nil {
		return f.Respond(call)
	}
	return "", nil
}

// CommandLines returns every recorded call as a shell-style line.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}
