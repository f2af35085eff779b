// Package helm builds and runs helm invocations for the render
// engine. All process execution goes through execx so tests never
// need a real helm binary.
package helm

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/cameronsjo/helmsman/internal/execx"
	"github.com/cameronsjo/helmsman/internal/workload"
)

// DefaultBin is the helm binary looked up on PATH when no override is
// given.
const DefaultBin = "helm"

// ResolveBin returns the helm binary to use. An explicit override is
// taken verbatim; otherwise the binary is looked up on PATH.
func ResolveBin(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	bin, err := exec.LookPath(DefaultBin)
	if err != nil {
		return "", fmt.Errorf("helm binary not found on PATH: %w", err)
	}
	return bin, nil
}

// TemplateArgs builds the argument vector for `helm template` from an
// effective deployment. The order is part of the contract: helm is
// order-sensitive for overlapping value files (later file wins), so
// nothing is reordered or deduplicated.
func TemplateArgs(e workload.Effective) []string {
	args := []string{"template", e.ReleaseName, e.Chart}
	if e.Namespace != "" {
		args = append(args, "--namespace", e.Namespace)
	}
	for _, v := range e.Values {
		args = append(args, "--values", v)
	}
	args = append(args, e.Options...)
	return args
}

// Client runs helm commands.
type Client struct {
	bin    string
	runner execx.Runner
}

// NewClient creates a helm client using the given binary path and
// runner.
func NewClient(bin string, runner execx.Runner) *Client {
	return &Client{bin: bin, runner: runner}
}

// Template renders one effective deployment and returns the finished
// command (for diagnostics) and its captured result. A non-zero helm
// exit is reported through Result.ExitCode, not the error.
func (c *Client) Template(ctx context.Context, e workload.Effective) (execx.Cmd, execx.Result, error) {
	cmd := execx.Cmd{Name: c.bin, Args: TemplateArgs(e)}
	res, err := c.runner.Run(ctx, cmd)
	return cmd, res, err
}

// UpdateDependencies runs `helm dependency update` for the chart.
// Any failure is returned as an error; the caller treats it as fatal
// for the whole run.
func (c *Client) UpdateDependencies(ctx context.Context, chart string) error {
	cmd := execx.Cmd{Name: c.bin, Args: []string{"dependency", "update", chart}}
	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("helm dependency update: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("helm dependency update exited with %d\n%s", res.ExitCode, res.Stderr)
	}
	return nil
}
