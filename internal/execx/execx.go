// Package execx provides a narrow interface for running external
// commands so that callers can be tested without the real binaries.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds the outcome of a finished command.
type Result struct {
	// Stdout is the captured standard output.
	Stdout []byte

	// Stderr is the captured standard error.
	Stderr []byte

	// ExitCode is the process exit code; 0 on success.
	ExitCode int
}

// Cmd describes a single external command invocation.
type Cmd struct {
	// Name is the binary to run, resolved via PATH if not absolute.
	Name string

	// Args are the arguments passed verbatim, in order.
	Args []string

	// Stdin is fed to the process's standard input when non-nil.
	Stdin []byte

	// Dir is the working directory; empty means inherit.
	Dir string
}

// String returns the command line for display in diagnostics.
func (c Cmd) String() string {
	line := c.Name
	for _, a := range c.Args {
		line += " " + a
	}
	return line
}

// Runner executes external commands. The render engine only ever
// talks to helm and pipe-stage binaries through this interface.
type Runner interface {
	// Run executes the command and blocks until it exits. A non-zero
	// exit is not an error here; callers inspect Result.ExitCode.
	// The returned error covers failures to start the process at all.
	Run(ctx context.Context, cmd Cmd) (Result, error)
}

// OSRunner runs commands on the host via os/exec.
type OSRunner struct{}

// NewOSRunner returns a Runner backed by os/exec.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, cmd Cmd) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	if cmd.Stdin != nil {
		c.Stdin = bytes.NewReader(cmd.Stdin)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// The process never started (binary missing, context canceled).
		res.ExitCode = -1
		return res, err
	}

	return res, nil
}
