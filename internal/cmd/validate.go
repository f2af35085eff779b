package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/helmsman/internal/config"
	"github.com/cameronsjo/helmsman/internal/ui"
)

var validateSkipDisabled bool

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <config-file>...",
	Short: "Validate given configuration file(s)",
	Long: `Check configuration files without rendering anything.

Beyond the schema and required-field checks that rendering performs,
validate also verifies that the chart and the value files of enabled
deployments exist, and that at least one deployment is enabled.

Examples:
  helmsman validate workload.yaml
  helmsman validate --skip-disabled workloads/*.yaml`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runValidate,
}

func init() {
	validateCmd.Flags().BoolVarP(&validateSkipDisabled, "skip-disabled", "s", false, "Skip validation of files with enabled: false")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer := ui.Default(verbosity)

	failures := 0
	for _, file := range args {
		cfg, err := config.Load(file)
		if err != nil {
			printer.Errorf("%v", err)
			failures++
			continue
		}

		if validateSkipDisabled && !cfg.IsEnabled() {
			printer.Infof("%s: skipped (disabled)", file)
			continue
		}

		err = cfg.Validate(config.ValidateOpts{
			CheckFiles:               true,
			RequireEnabledDeployment: true,
		})
		if err != nil {
			printer.Errorf("%s: %v", file, err)
			failures++
			continue
		}

		printer.Successf("%s is valid", file)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d config file(s) failed validation", failures, len(args))
	}
	return nil
}
