package container

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cjtool/cj/internal/errors"
	"github.com/cjtool/cj/internal/logging"
	"github.com/cjtool/cj/internal/system"
)

// binary is the macOS container CLI.
const binary = "container"

// Mount is a volume mount published into the container.
type Mount struct {
	Host      string
	Container string
	ReadOnly  bool
}

// String renders the mount in host:container[:ro] form.
func (m Mount) String() string {
	s := m.Host + ":" + m.Container
	if m.ReadOnly {
		s += ":ro"
	}
	return s
}

// PortForward publishes a host port to a container port.
type PortForward struct {
	Host      int
	Container int
}

// RunSpec describes an interactive container run.
type RunSpec struct {
	Image      string
	WorkingDir string
	Mounts     []Mount
	Ports      []PortForward
	Env        []string // KEY=VALUE
	Command    []string
}

// Manager wraps the container CLI.
type Manager struct {
	exec system.CommandExecutor
	fs   system.FileSystem
}

// NewManager creates a Manager. Nil arguments fall back to the OS
// implementations.
func NewManager(exec system.CommandExecutor, fs system.FileSystem) *Manager {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Manager{exec: exec, fs: fs}
}

// Available reports whether the container CLI can be invoked.
func (m *Manager) Available(ctx context.Context) bool {
	_, err := m.exec.Execute(ctx, binary, "--version")
	return err == nil
}

// BuildImage builds an image from the Dockerfile, capturing build output to
// logFile when set. The log is written on failure too.
func (m *Manager) BuildImage(ctx context.Context, dockerfilePath, tag, contextDir, logFile string) error {
	out, err := m.exec.Execute(ctx, binary, "build", "-t", tag, "-f", dockerfilePath, contextDir)

	if logFile != "" {
		if werr := m.fs.WriteFile(logFile, out, 0644); werr != nil {
			logging.Warn("failed to write build log", "path", logFile, "error", werr)
		}
	}

	if err != nil {
		return errors.BuildFailed(err)
	}
	return nil
}

// ImageExists reports whether an image with the given tag is present.
func (m *Manager) ImageExists(ctx context.Context, tag string) bool {
	out, err := m.exec.Execute(ctx, binary, "image", "list")
	if err != nil {
		return false
	}
	return strings.Contains(string(out), tag)
}

// RunInteractive runs the container in the foreground with the caller's
// terminal attached and returns the container's exit code.
func (m *Manager) RunInteractive(ctx context.Context, spec RunSpec) (int, error) {
	args := []string{"run", "-it", "--rm"}

	for _, p := range spec.Ports {
		args = append(args, "-p", fmt.Sprintf("%d:%d", p.Host, p.Container))
	}
	for _, mnt := range spec.Mounts {
		args = append(args, "-v", mnt.String())
	}
	for _, env := range spec.Env {
		args = append(args, "-e", env)
	}
	if spec.WorkingDir != "" {
		args = append(args, "-w", spec.WorkingDir)
	}
	args = append(args, spec.Image)
	args = append(args, spec.Command...)

	err := m.exec.ExecuteInteractive(ctx, binary, args...)
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, errors.RunFailed(err)
}

// RemoveImage deletes an image. Best effort: a missing image or a failing
// delete is not an error.
func (m *Manager) RemoveImage(ctx context.Context, tag string) {
	if _, err := m.exec.Execute(ctx, binary, "image", "delete", tag); err != nil {
		logging.Debug("image delete failed", "tag", tag, "error", err)
	}
}
