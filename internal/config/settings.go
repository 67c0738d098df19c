package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/cjtool/cj/internal/errors"
)

const (
	// DefaultBridgePort is the host port the browser bridge listens on and
	// the container's open shim writes to.
	DefaultBridgePort = 9999

	// DefaultSSHPort is the host port published to the container's sshd.
	DefaultSSHPort = 2222
)

// Settings holds the optional per-project settings from settings.toml.
// A missing file means all defaults.
type Settings struct {
	// Packages are extra apt packages baked into the image.
	Packages []string `toml:"packages"`

	// BridgePort overrides the browser bridge port.
	BridgePort int `toml:"bridge_port"`

	// SSHPort overrides the published container SSH port.
	SSHPort int `toml:"ssh_port"`

	// ClaudeCommand overrides the command run inside the container,
	// parsed with shell quoting rules.
	ClaudeCommand string `toml:"claude_command"`

	// Mounts are extra volume mounts for the session container.
	Mounts []Mount `toml:"mounts"`
}

// Mount is one extra volume mount. Host is relative to the project root.
type Mount struct {
	Host      string `toml:"host"`
	Container string `toml:"container"`
	ReadOnly  bool   `toml:"read_only"`
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		BridgePort: DefaultBridgePort,
		SSHPort:    DefaultSSHPort,
	}
}

// LoadSettings reads settings.toml, returning defaults when the file does
// not exist. Unset ports fall back to their defaults.
func (p *Project) LoadSettings() (Settings, error) {
	s := DefaultSettings()

	data, err := p.fs.ReadFile(p.SettingsPath())
	if err != nil {
		return s, nil
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, errors.ConfigError("failed to parse settings.toml", err)
	}
	if s.BridgePort == 0 {
		s.BridgePort = DefaultBridgePort
	}
	if s.SSHPort == 0 {
		s.SSHPort = DefaultSSHPort
	}

	if err := s.validate(); err != nil {
		return s, err
	}
	return s, nil
}

// SaveSettings writes settings.toml.
func (p *Project) SaveSettings(s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return errors.ConfigError("failed to encode settings", err)
	}
	if err := p.fs.WriteFile(p.SettingsPath(), data, 0644); err != nil {
		return errors.ConfigError("failed to write settings.toml", err)
	}
	return nil
}

func (s Settings) validate() error {
	if s.BridgePort < 1 || s.BridgePort > 65535 {
		return errors.ConfigError(fmt.Sprintf("invalid bridge_port %d", s.BridgePort), nil)
	}
	if s.SSHPort < 1 || s.SSHPort > 65535 {
		return errors.ConfigError(fmt.Sprintf("invalid ssh_port %d", s.SSHPort), nil)
	}
	for _, m := range s.Mounts {
		if m.Host == "" || m.Container == "" {
			return errors.ConfigError("mount requires both host and container paths", nil)
		}
		if !filepath.IsAbs(m.Container) {
			return errors.ConfigError(fmt.Sprintf("mount container path must be absolute: %s", m.Container), nil)
		}
	}
	return nil
}

// ClaudeArgv returns the command to run inside the session container. An
// unset override means plain "claude".
func (s Settings) ClaudeArgv() ([]string, error) {
	if strings.TrimSpace(s.ClaudeCommand) == "" {
		return []string{"claude"}, nil
	}
	argv, err := shellquote.Split(s.ClaudeCommand)
	if err != nil {
		return nil, errors.ConfigError("failed to parse claude_command", err)
	}
	if len(argv) == 0 {
		return []string{"claude"}, nil
	}
	return argv, nil
}

// ResolveMounts resolves relative host paths against the project root,
// rejecting paths that would escape it.
func (p *Project) ResolveMounts(s Settings) ([]Mount, error) {
	if len(s.Mounts) == 0 {
		return nil, nil
	}

	resolved := make([]Mount, 0, len(s.Mounts))
	for _, m := range s.Mounts {
		if filepath.IsAbs(m.Host) {
			return nil, errors.ConfigError(fmt.Sprintf("mount host path must be relative to the project: %s", m.Host), nil)
		}
		if strings.HasPrefix(filepath.Clean(m.Host), "..") {
			return nil, errors.ConfigError(fmt.Sprintf("mount host path escapes the project: %s", m.Host), nil)
		}
		host, err := securejoin.SecureJoin(p.baseDir, m.Host)
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to resolve mount host path %s", m.Host), err)
		}
		resolved = append(resolved, Mount{
			Host:      host,
			Container: m.Container,
			ReadOnly:  m.ReadOnly,
		})
	}
	return resolved, nil
}
