package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cameronsjo/helmsman/internal/ui"
	"github.com/cameronsjo/helmsman/internal/update"
)

var updateCheckOnly bool

// updateCmd represents the update command.
var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"selfupdate"},
	Short:   "Update helmsman to the latest version",
	Long: `Update helmsman to the latest version from GitHub releases.

Examples:
  helmsman update           # Update to latest version
  helmsman update --check   # Check for updates without installing`,
	Run: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check for updates, don't install")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	printer := ui.Default(verbosity)

	printer.Infof("current version: %s (%s)", version, update.GetPlatformInfo())

	if updateCheckOnly {
		release, available, err := update.CheckForUpdate(version)
		if err != nil {
			printer.Errorf("failed to check for updates: %v", err)
			return
		}
		if !available {
			printer.Successf("you're running the latest version")
			return
		}
		printer.Successf("new version available: %s (released %s)", release.Version, release.PublishedAt)
		ui.Blue.Println("To update, run: helmsman update")
		return
	}

	release, err := update.Update(version)
	if err != nil {
		printer.Errorf("update failed: %v", err)
		return
	}
	if release == nil {
		printer.Successf("you're already running the latest version")
		return
	}

	printer.Successf("updated to version %s", release.Version)
}
