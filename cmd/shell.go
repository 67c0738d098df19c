package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cjtool/cj/internal/errors"
	"github.com/cjtool/cj/internal/session"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive shell in the project container",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
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
	if !mgr.ImageExists(ctx, image) {
		return errors.New(errors.ExitImageNameNotFound,
			fmt.Sprintf("container image '%s' not found; run 'cj setup' first", image))
	}

	if err := project.EnsureClaudeDir(); err != nil {
		return err
	}
	if err := ensureContainerAccess(ctx, project); err != nil {
		return err
	}

	settings, err := project.LoadSettings()
	if err != nil {
		return err
	}

	term := os.Getenv("TERM")
	if term == "" {
		term = "xterm-256color"
	}

	code, err := session.New(session.Options{
		Project:        project,
		Manager:        mgr,
		WorkDir:        project.BaseDir(),
		Settings:       settings,
		Command:        []string{"/bin/bash"},
		Env:            []string{"TERM=" + term},
		ReadOnlyConfig: true,
	}).Run(ctx)
	if err != nil {
		return err
	}
	return exitWithCode(code)
}
