package cmd

import (
	"os"

	"github.com/cjtool/cj/internal/config"
	"github.com/cjtool/cj/internal/container"
	"github.com/cjtool/cj/internal/errors"
)

// currentProject returns the Project rooted at the working directory.
func currentProject() (*config.Project, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.ConfigError("failed to determine working directory", err)
	}
	return config.NewProject(wd, nil)
}

// newManager returns a container Manager on the real OS executor.
func newManager() *container.Manager {
	return container.NewManager(nil, nil)
}

// exitWithCode converts a container exit code into the command result. A
// nonzero code becomes a message-less error so the process exits with the
// container's status.
func exitWithCode(code int) error {
	if code == 0 {
		return nil
	}
	return errors.New(code, "")
}
