// Package pipeline feeds rendered manifests through a user-declared
// chain of external post-processing commands.
package pipeline

import (
	"context"
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/cameronsjo/helmsman/internal/execx"
)

// StageError reports a failed pipe stage. Later stages are never run
// once one has failed.
type StageError struct {
	// Stage is the zero-based index of the failing command.
	Stage int

	// Command is the command line as given on the CLI.
	Command string

	// Stderr is the captured standard error of the stage, possibly
	// empty.
	Stderr string

	// Err is the underlying failure (non-zero exit or failed start).
	Err error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("pipe stage %d (%s): %v", e.Stage, e.Command, e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// stage is one parsed pipe command.
type stage struct {
	raw  string
	name string
	args []string
}

// Chain is an ordered sequence of post-processing commands.
type Chain struct {
	runner execx.Runner
	stages []stage
}

// New parses the given command lines (shell-style word splitting, so
// `grep 'image'` works as expected) into a chain. Parse errors are
// fatal before anything runs.
func New(runner execx.Runner, commands []string) (*Chain, error) {
	c := &Chain{runner: runner}
	for i, raw := range commands {
		words, err := shellquote.Split(raw)
		if err != nil {
			return nil, fmt.Errorf("parse pipe command %d (%s): %w", i, raw, err)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("pipe command %d is empty", i)
		}
		c.stages = append(c.stages, stage{raw: raw, name: words[0], args: words[1:]})
	}
	return c, nil
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Run feeds input through every stage in order, each stage reading
// the previous stage's output on stdin. An empty chain returns the
// input unchanged. The first failing stage short-circuits the rest
// and is reported as a *StageError.
func (c *Chain) Run(ctx context.Context, input []byte) ([]byte, error) {
	current := input
	for i, s := range c.stages {
		res, err := c.runner.Run(ctx, execx.Cmd{
			Name:  s.name,
			Args:  s.args,
			Stdin: current,
		})
		if err != nil {
			return nil, &StageError{Stage: i, Command: s.raw, Stderr: string(res.Stderr), Err: err}
		}
		if res.ExitCode != 0 {
			return nil, &StageError{
				Stage:   i,
				Command: s.raw,
				Stderr:  string(res.Stderr),
				Err:     fmt.Errorf("exited with %d", res.ExitCode),
			}
		}
		current = res.Stdout
	}
	return current, nil
}
