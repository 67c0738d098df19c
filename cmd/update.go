package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cjtool/cj/internal/generator"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the container image with the latest base image",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

var updatePackages []string

func init() {
	updateCmd.Flags().StringArrayVarP(&updatePackages, "package", "p", nil, "Extra apt package to install (can be repeated)")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	project, err := currentProject()
	if err != nil {
		return err
	}
	if err := project.Require(); err != nil {
		return err
	}

	image, err := project.ReadImageName()
	if err != nil {
		return err
	}

	settings, err := project.LoadSettings()
	if err != nil {
		return err
	}
	if len(updatePackages) > 0 {
		settings.Packages = generator.MergePackages(settings.Packages, updatePackages)
		if err := project.SaveSettings(settings); err != nil {
			return err
		}
	}
	if len(settings.Packages) > 0 {
		logInfo("Extra packages to install: %s", strings.Join(settings.Packages, " "))
	}

	logInfo("Rebuilding container image '%s'...", image)
	if err := buildProjectImage(ctx, project, newManager(), settings, image, project.UpdateLogPath()); err != nil {
		return err
	}

	logInfo("Update log saved to %s", project.UpdateLogPath())
	logSuccess("Updated container image '%s'", image)
	logInfo("Run 'cj' to start Claude Code in the updated container")
	return nil
}
