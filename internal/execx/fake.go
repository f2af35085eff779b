package execx

import (
	"context"
	"fmt"
	"sync"
)

// FakeCall is one scripted response for the FakeRunner. Calls are
// matched against the binary name; Match narrows further when set.
type FakeCall struct {
	// Name must equal Cmd.Name for this script entry to apply.
	Name string

	// Match, when non-nil, must also return true for Cmd.
	Match func(cmd Cmd) bool

	// Result is returned when the entry applies.
	Result Result

	// Err is returned alongside Result (process failed to start).
	Err error
}

// FakeRunner is a scripted Runner for tests. It records every
// invocation in order and answers from its script.
type FakeRunner struct {
	mu sync.Mutex

	// Script entries consulted in order; the first applicable entry
	// answers the call. An empty script answers success with no output.
	Script []FakeCall

	// Calls records every command in invocation order.
	Calls []Cmd
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, cmd Cmd) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, cmd)

	for _, entry := range f.Script {
		if entry.Name != cmd.Name {
			continue
		}
		if entry.Match != nil && !entry.Match(cmd) {
			continue
		}
		return entry.Result, entry.Err
	}

	return Result{}, nil
}

// CommandLines returns the recorded invocations as display strings,
// convenient for order assertions.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// FailWith is a convenience for scripting a non-zero exit with stderr.
func FailWith(name string, exitCode int, stderr string) FakeCall {
	return FakeCall{
		Name:   name,
		Result: Result{ExitCode: exitCode, Stderr: []byte(stderr)},
	}
}

// SucceedWith is a convenience for scripting a clean exit with stdout.
func SucceedWith(name string, stdout string) FakeCall {
	return FakeCall{
		Name:   name,
		Result: Result{Stdout: []byte(stdout)},
	}
}

// NotFound scripts a binary that cannot be started at all.
func NotFound(name string) FakeCall {
	return FakeCall{
		Name:   name,
		Result: Result{ExitCode: -1},
		Err:    fmt.Errorf("exec: %q: executable file not found in $PATH", name),
	}
}
