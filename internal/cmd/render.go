package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/helmsman/internal/config"
	"github.com/cameronsjo/helmsman/internal/execx"
	"github.com/cameronsjo/helmsman/internal/helm"
	"github.com/cameronsjo/helmsman/internal/renderer"
	"github.com/cameronsjo/helmsman/internal/ui"
)

var (
	renderAdditionalOptions []string
	renderFilter            string
	renderUpdateDeps        bool
	renderPipe              []string
	renderStdout            bool
	renderHelmBin           string
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render <config-file>...",
	Short: "Render deployments for given configuration file(s)",
	Long: `Render every enabled deployment of the given config file(s).

Each deployment is rendered with 'helm template' and written to
<output_path>/<deployment>/<release_name>/manifest.yaml, or streamed
to stdout with --stdout. Deployments render strictly in declaration
order; one failing deployment does not stop the others, but any
failure makes the run exit non-zero.

Examples:
  # Render all deployments of a workload
  helmsman render workload.yaml

  # Only deployments whose name matches the pattern (full match)
  helmsman render --filter 'edge-.*' workload.yaml

  # Inject a run-scoped option and refresh chart dependencies first
  helmsman render -a '--set image.tag=abc123' --update-dependencies workload.yaml

  # Post-process the output before writing
  helmsman render --pipe 'kubeval -' --pipe 'grep -v generation' workload.yaml`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runRender,
}

func init() {
	renderCmd.Flags().StringArrayVarP(&renderAdditionalOptions, "additional-options", "a", nil, "Additional options passed to every 'helm template' call (repeatable)")
	renderCmd.Flags().StringVar(&renderFilter, "filter", "", "Render only deployments whose name fully matches this regex")
	renderCmd.Flags().BoolVarP(&renderUpdateDeps, "update-dependencies", "u", false, "Run 'helm dependency update' once before rendering")
	renderCmd.Flags().StringArrayVar(&renderPipe, "pipe", nil, "Pipe rendered output through this command (repeatable, order-significant)")
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Write manifests to stdout instead of output_path")
	renderCmd.Flags().StringVar(&renderHelmBin, "helm-bin", "", "Helm binary to use; defaults to the one found on PATH")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	printer := ui.Default(verbosity)

	helmBin, err := helm.ResolveBin(renderHelmBin)
	if err != nil {
		printer.Errorf("%v", err)
		return err
	}

	eng := renderer.New(helmBin, execx.NewOSRunner(), printer, os.Stdout)
	opts := renderer.Options{
		Filter:             renderFilter,
		ExtraOptions:       renderAdditionalOptions,
		PipeCommands:       renderPipe,
		UpdateDependencies: renderUpdateDeps,
		Stdout:             renderStdout,
	}

	failures := 0
	for _, file := range args {
		printer.Infof("processing %s", file)

		cfg, err := config.Load(file)
		if err != nil {
			printer.Errorf("%v", err)
			failures++
			continue
		}
		if err := cfg.Validate(config.ValidateOpts{Streaming: renderStdout}); err != nil {
			printer.Errorf("%s: %v", file, err)
			failures++
			continue
		}

		res, err := eng.Run(cmd.Context(), cfg, opts)
		if err != nil {
			printer.Errorf("%s: %v", file, err)
			failures++
			continue
		}
		if !res.OK() {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("rendering failed for %d of %d config file(s)", failures, len(args))
	}
	return nil
}
