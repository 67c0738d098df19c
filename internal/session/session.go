package session

import (
	"context"
	"strings"

	"github.com/cjtool/cj/internal/bridge"
	"github.com/cjtool/cj/internal/config"
	"github.com/cjtool/cj/internal/container"
	"github.com/cjtool/cj/internal/logging"
	"github.com/cjtool/cj/internal/system"
	"github.com/cjtool/cj/internal/tunnel"
)

// Container-side paths.
const (
	ContainerWorkspace = "/workspace"
	ContainerClaudeDir = "/root/.claude"
	ContainerConfigDir = "/workspace/.cj"

	containerSSHPort = 22
)

// scratchPrefix marks container paths that are never URL-translation
// targets.
const scratchPrefix = "/tmp"

// Options configures one container session.
type Options struct {
	Project  *config.Project
	Manager  *container.Manager
	Executor system.CommandExecutor

	// WorkDir is the host project root, mounted at /workspace.
	WorkDir string

	Settings config.Settings

	// Command runs inside the container.
	Command []string

	// Env are KEY=VALUE pairs passed into the container.
	Env []string

	// ReadOnlyConfig additionally mounts .cj read-only into the workspace
	// (shell sessions).
	ReadOnlyConfig bool

	// tunnelOpts tune the tunnel supervisor; tests shorten the sshd
	// startup grace delay.
	tunnelOpts []tunnel.Option
}

// Session runs a container in the foreground with the browser bridge and
// its SSH reverse tunnel around it.
type Session struct {
	opts Options
}

// New creates a Session. A nil executor falls back to the default OS
// executor.
func New(opts Options) *Session {
	if opts.Executor == nil {
		opts.Executor = system.DefaultExecutor()
	}
	return &Session{opts: opts}
}

// Mounts returns the session's volume mounts: the workspace, the credential
// directory, the optional read-only .cj mount, and any extra mounts from
// settings.
func (s *Session) Mounts() ([]container.Mount, error) {
	mounts := []container.Mount{
		{Host: s.opts.WorkDir, Container: ContainerWorkspace},
		{Host: s.opts.Project.ClaudeDir(), Container: ContainerClaudeDir},
	}
	if s.opts.ReadOnlyConfig {
		mounts = append(mounts, container.Mount{
			Host:      s.opts.Project.Dir(),
			Container: ContainerConfigDir,
			ReadOnly:  true,
		})
	}

	extra, err := s.opts.Project.ResolveMounts(s.opts.Settings)
	if err != nil {
		return nil, err
	}
	for _, m := range extra {
		mounts = append(mounts, container.Mount{
			Host:      m.Host,
			Container: m.Container,
			ReadOnly:  m.ReadOnly,
		})
	}
	return mounts, nil
}

// Mappings derives URL-translation pairs from the volume mounts, in mount
// order. Container paths under the scratch prefix are skipped.
func Mappings(mounts []container.Mount) []bridge.PathMapping {
	var mappings []bridge.PathMapping
	for _, m := range mounts {
		if strings.HasPrefix(m.Container, scratchPrefix) {
			continue
		}
		mappings = append(mappings, bridge.PathMapping{
			ContainerPrefix: m.Container,
			HostPrefix:      m.Host,
		})
	}
	return mappings
}

// Run executes the session: start the bridge, establish the tunnel, run the
// container in the foreground, then tear the tunnel and bridge down. Bridge
// and tunnel failures degrade the session, they never abort it. The returned
// int is the container's exit code.
func (s *Session) Run(ctx context.Context) (int, error) {
	image, err := s.opts.Project.ReadImageName()
	if err != nil {
		return 0, err
	}

	mounts, err := s.Mounts()
	if err != nil {
		return 0, err
	}

	b := bridge.New(bridge.Config{
		Port:     s.opts.Settings.BridgePort,
		Mappings: Mappings(mounts),
	}, bridge.NewExecOpener(s.opts.Executor))
	b.Start()
	defer b.Stop()

	sup := tunnel.NewSupervisor(s.opts.Executor, s.opts.tunnelOpts...)
	h := sup.Start(s.opts.Project.PrivateKeyPath(), s.opts.Settings.SSHPort, s.opts.Settings.BridgePort)
	defer h.Close()

	// The container starts only once tunnel establishment has settled (or
	// the bounded wait expired); either way the session proceeds.
	if !h.WaitReady(tunnel.ReadyTimeout) {
		logging.UserWarning("Browser redirection is not available for this session")
	}

	return s.opts.Manager.RunInteractive(ctx, container.RunSpec{
		Image:      image,
		WorkingDir: ContainerWorkspace,
		Mounts:     mounts,
		Ports:      []container.PortForward{{Host: s.opts.Settings.SSHPort, Container: containerSSHPort}},
		Env:        s.opts.Env,
		Command:    s.opts.Command,
	})
}
