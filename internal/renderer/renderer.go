// Package renderer sequences the render run: dependency refresh,
// deployment resolution, the helm template call, the pipe chain, and
// manifest materialization, with per-deployment failure isolation.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cameronsjo/helmsman/internal/config"
	"github.com/cameronsjo/helmsman/internal/execx"
	"github.com/cameronsjo/helmsman/internal/helm"
	"github.com/cameronsjo/helmsman/internal/output"
	"github.com/cameronsjo/helmsman/internal/pipeline"
	"github.com/cameronsjo/helmsman/internal/ui"
	"github.com/cameronsjo/helmsman/internal/workload"
)

// Options configures one render run.
type Options struct {
	// Filter restricts rendering to deployments whose name fully
	// matches this pattern.
	Filter string

	// ExtraOptions are appended after the workload's global options
	// for every deployment, for this run only.
	ExtraOptions []string

	// PipeCommands are post-processing command lines applied to each
	// render output, in order.
	PipeCommands []string

	// UpdateDependencies runs `helm dependency update` once before
	// rendering. Failure aborts the whole run.
	UpdateDependencies bool

	// Stdout streams manifests to the primary output stream instead
	// of writing files.
	Stdout bool
}

// DeploymentResult records the outcome of one attempted deployment.
type DeploymentResult struct {
	// Name is the deployment name.
	Name string

	// Command is the command line of the failing external call, or
	// the helm call on success.
	Command string

	// Path is the materialized file, empty in stream mode or on
	// failure.
	Path string

	// Stdout and Stderr hold captured output of the failing call.
	// Empty on success.
	Stdout string
	Stderr string

	// Err is nil when the deployment rendered and materialized.
	Err error
}

// Result aggregates a whole run.
type Result struct {
	// Deployments holds one entry per attempted deployment, in
	// render order.
	Deployments []DeploymentResult
}

// OK reports whether every attempted deployment succeeded. An empty
// run is a successful no-op.
func (r Result) OK() bool {
	for _, d := range r.Deployments {
		if d.Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the results of deployments that did not succeed.
func (r Result) Failed() []DeploymentResult {
	var failed []DeploymentResult
	for _, d := range r.Deployments {
		if d.Err != nil {
			failed = append(failed, d)
		}
	}
	return failed
}

// Renderer drives render runs. Deployments are processed strictly
// sequentially: helm may mutate shared local caches, so nothing
// overlaps.
type Renderer struct {
	helmBin string
	runner  execx.Runner
	printer *ui.Printer

	// stream is the primary output stream used in stdout mode.
	stream io.Writer
}

// New creates a Renderer. The runner is the only way external
// processes are reached, so tests substitute a fake.
func New(helmBin string, runner execx.Runner, printer *ui.Printer, stream io.Writer) *Renderer {
	return &Renderer{
		helmBin: helmBin,
		runner:  runner,
		printer: printer,
		stream:  stream,
	}
}

// Run renders every enabled, filter-matched deployment of the
// workload in declaration order. Fatal setup problems (bad filter,
// bad pipe command, failed dependency refresh) return an error before
// any deployment is attempted. Per-deployment failures are recorded
// in the Result and do not stop later deployments.
func (r *Renderer) Run(ctx context.Context, cfg *config.Workload, opts Options) (Result, error) {
	chain, err := pipeline.New(r.runner, opts.PipeCommands)
	if err != nil {
		return Result{}, err
	}

	deployments, err := workload.Resolve(cfg, workload.Options{
		Filter:       opts.Filter,
		ExtraOptions: opts.ExtraOptions,
	})
	if err != nil {
		return Result{}, err
	}

	client := helm.NewClient(r.helmBin, r.runner)

	if opts.UpdateDependencies {
		r.printer.Infof("updating chart dependencies for %s", cfg.Chart)
		if err := client.UpdateDependencies(ctx, cfg.Chart); err != nil {
			return Result{}, err
		}
	}

	if len(deployments) == 0 {
		r.printer.Warnf("no deployments to render")
		return Result{}, nil
	}

	var sink output.Sink
	if opts.Stdout {
		sink = output.NewStreamSink(r.stream)
	} else {
		sink = output.NewFileSink(cfg.OutputPath, cfg.Version)
	}

	res := Result{}
	for _, d := range deployments {
		res.Deployments = append(res.Deployments, r.renderOne(ctx, client, chain, sink, d))
	}

	r.summarize(res)
	return res, nil
}

// renderOne runs render → pipe chain → sink for a single deployment.
func (r *Renderer) renderOne(ctx context.Context, client *helm.Client, chain *pipeline.Chain, sink output.Sink, d workload.Effective) DeploymentResult {
	r.printer.Infof("rendering deployment %s (release %s)", d.Name, d.ReleaseName)

	cmd, rendered, err := client.Template(ctx, d)
	r.printer.Debugf("$ %s", cmd.String())
	result := DeploymentResult{Name: d.Name, Command: cmd.String()}

	if err != nil {
		result.Err = fmt.Errorf("helm template: %w", err)
		result.Stderr = string(rendered.Stderr)
		return result
	}
	if rendered.ExitCode != 0 {
		result.Err = fmt.Errorf("helm template exited with %d", rendered.ExitCode)
		result.Stdout = string(rendered.Stdout)
		result.Stderr = string(rendered.Stderr)
		return result
	}
	r.printer.Tracef("helm produced %d bytes", len(rendered.Stdout))

	final, err := chain.Run(ctx, rendered.Stdout)
	if err != nil {
		result.Err = err
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			result.Command = stageErr.Command
			result.Stderr = stageErr.Stderr
		}
		return result
	}

	path, err := sink.Write(d, final)
	if err != nil {
		result.Err = err
		return result
	}
	result.Path = path

	if path != "" {
		r.printer.Successf("%s → %s", d.Name, path)
	} else {
		r.printer.Successf("%s rendered", d.Name)
	}
	return result
}

// summarize reports per-deployment failures with the failing command
// line and any captured output. Empty streams are not surfaced.
func (r *Renderer) summarize(res Result) {
	failed := res.Failed()
	if len(failed) == 0 {
		return
	}

	r.printer.Errorf("%d of %d deployment(s) failed", len(failed), len(res.Deployments))
	for _, f := range failed {
		r.printer.Errorf("  %s: %v", f.Name, f.Err)
		r.printer.Errorf("    command: %s", f.Command)
		if out := strings.TrimSpace(f.Stdout); out != "" {
			fmt.Fprintf(r.printer.Writer(), "    stdout:\n%s\n", indent(out))
		}
		if errOut := strings.TrimSpace(f.Stderr); errOut != "" {
			fmt.Fprintf(r.printer.Writer(), "    stderr:\n%s\n", indent(errOut))
		}
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "      " + l
	}
	return strings.Join(lines, "\n")
}
