package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cjtool/cj/internal/config"
	"github.com/cjtool/cj/internal/container"
	"github.com/cjtool/cj/internal/errors"
	"github.com/cjtool/cj/internal/generator"
	"github.com/cjtool/cj/internal/logging"
	"github.com/cjtool/cj/internal/namegen"
	"github.com/cjtool/cj/internal/system"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create project configuration and build the container image",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

var setupPackages []string

func init() {
	setupCmd.Flags().StringArrayVarP(&setupPackages, "package", "p", nil, "Extra apt package to install (can be repeated)")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	fs := system.DefaultFS()

	project, err := currentProject()
	if err != nil {
		return err
	}

	if fs.Exists(project.DockerfilePath()) {
		return errors.New(errors.ExitConfigExists, "container setup already exists; run 'cj update' to rebuild")
	}

	mgr := newManager()
	if !mgr.Available(ctx) {
		return errors.ContainerUnavailable()
	}

	// The directory may already exist with just a settings.toml in it.
	createdDir := !project.Exists()
	if createdDir {
		if err := project.Create(); err != nil {
			return err
		}
	}

	err = doSetup(ctx, project, mgr, fs)
	if err != nil && createdDir {
		if cerr := project.Cleanup(); cerr != nil {
			logging.Debug("cleanup after failed setup", "error", cerr)
		}
	}
	return err
}

func doSetup(ctx context.Context, project *config.Project, mgr *container.Manager, fs system.FileSystem) error {
	settings, err := project.LoadSettings()
	if err != nil {
		return err
	}
	if len(setupPackages) > 0 {
		settings.Packages = generator.MergePackages(settings.Packages, setupPackages)
		if err := project.SaveSettings(settings); err != nil {
			return err
		}
		logInfo("Extra packages to install: %s", strings.Join(settings.Packages, " "))
	}

	if err := ensureContainerAccess(ctx, project); err != nil {
		return err
	}

	if err := writeDockerfile(project, settings, fs); err != nil {
		return err
	}
	logInfo("Generated Dockerfile at %s", project.DockerfilePath())

	claudeMD := filepath.Join(project.BaseDir(), "CLAUDE.md")
	if !fs.Exists(claudeMD) {
		if err := fs.WriteFile(claudeMD, []byte(generator.DefaultClaudeMD()), 0644); err != nil {
			return errors.ConfigError("failed to write CLAUDE.md", err)
		}
		logInfo("Generated default CLAUDE.md at %s", claudeMD)
	}

	image := namegen.Generate()
	logInfo("Building container image '%s'...", image)
	if err := mgr.BuildImage(ctx, project.DockerfilePath(), image, project.BaseDir(), project.BuildLogPath()); err != nil {
		return err
	}
	if err := project.WriteImageName(image); err != nil {
		return err
	}

	logInfo("Build log saved to %s", project.BuildLogPath())
	logSuccess("Created container image '%s'", image)
	logInfo("Run 'cj' to start Claude Code in the container")
	return nil
}

// writeDockerfile renders and writes the project Dockerfile from settings.
func writeDockerfile(project *config.Project, settings config.Settings, fs system.FileSystem) error {
	content, err := generator.Dockerfile(generator.Params{
		BridgePort:    settings.BridgePort,
		ExtraPackages: settings.Packages,
	})
	if err != nil {
		return errors.ConfigError("failed to generate Dockerfile", err)
	}
	if err := fs.WriteFile(project.DockerfilePath(), []byte(content), 0644); err != nil {
		return errors.ConfigError("failed to write Dockerfile", err)
	}
	return nil
}

// buildProjectImage regenerates the Dockerfile and rebuilds the image under
// an existing tag.
func buildProjectImage(ctx context.Context, project *config.Project, mgr *container.Manager, settings config.Settings, image, logPath string) error {
	if !mgr.Available(ctx) {
		return errors.ContainerUnavailable()
	}
	if err := ensureContainerAccess(ctx, project); err != nil {
		return err
	}
	fs := system.DefaultFS()
	if err := writeDockerfile(project, settings, fs); err != nil {
		return err
	}
	if err := mgr.BuildImage(ctx, project.DockerfilePath(), image, project.BaseDir(), logPath); err != nil {
		return err
	}
	return nil
}
