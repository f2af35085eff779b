// Package cmd provides the CLI commands for helmsman.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// verbosity is the count of -v flags; diagnostics go to stderr.
var verbosity int

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "helmsman",
	Short: "Render Helm charts for multiple environments using explicit config",
	Long: `helmsman - multi-environment Helm chart renderer

Render one chart once per declared deployment from a single config
file (YAML, TOML, or JSON), writing each rendering to a deterministic
path or to stdout.

COMMANDS
  render <config>...    Render all enabled deployments
    --filter <regex>            Restrict to matching deployment names
    --additional-options <opt>  Extra helm options for this run
    --update-dependencies       Run 'helm dependency update' first
    --pipe <command>            Post-process rendered output (repeatable)
    --stdout                    Stream manifests instead of writing files
  validate <config>...  Check configuration files without rendering
    --skip-disabled             Skip files with enabled: false
  update                Update helmsman to the latest version

Repeat -v for more diagnostic output (-v, -vv, -vvv).`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase diagnostic verbosity (repeatable)")
	rootCmd.SetVersionTemplate("helmsman version {{.Version}}\n")
}
