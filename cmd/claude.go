package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cjtool/cj/internal/config"
	"github.com/cjtool/cj/internal/logging"
	"github.com/cjtool/cj/internal/session"
	"github.com/cjtool/cj/internal/ssh"
	"github.com/cjtool/cj/internal/system"
)

// runClaude is the default command: start a Claude Code session in the
// project's container.
func runClaude(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	project, err := currentProject()
	if err != nil {
		return err
	}
	if err := project.Require(); err != nil {
		return err
	}

	mgr := newManager()

	image, err := project.ReadImageName()
	if err != nil {
		return err
	}

	settings, err := project.LoadSettings()
	if err != nil {
		return err
	}

	if !mgr.ImageExists(ctx, image) {
		logInfo("Container image not found. Rebuilding...")
		if err := buildProjectImage(ctx, project, mgr, settings, image, project.BuildLogPath()); err != nil {
			return err
		}
	}

	if err := project.EnsureClaudeDir(); err != nil {
		return err
	}
	if err := ensureContainerAccess(ctx, project); err != nil {
		return err
	}

	argv, err := settings.ClaudeArgv()
	if err != nil {
		return err
	}

	logging.Debug("starting claude session", "image", image, "command", argv)

	code, err := session.New(session.Options{
		Project:  project,
		Manager:  mgr,
		WorkDir:  project.BaseDir(),
		Settings: settings,
		Command:  argv,
	}).Run(ctx)
	if err != nil {
		return err
	}
	return exitWithCode(code)
}

// ensureContainerAccess makes sure the per-project SSH key pair exists for
// the browser bridge tunnel.
func ensureContainerAccess(ctx context.Context, project *config.Project) error {
	if err := project.EnsureSSHDir(); err != nil {
		return err
	}
	return ssh.EnsureKeys(ctx, system.DefaultFS(), system.DefaultExecutor(), project.SSHDir())
}
