package config

import (
	"path/filepath"
	"strings"

	"github.com/cjtool/cj/internal/errors"
	"github.com/cjtool/cj/internal/system"
)

const (
	// DirName is the per-project configuration directory.
	DirName = ".cj"

	imageNameFile  = "image-name"
	dockerfileName = "Dockerfile"
	settingsName   = "settings.toml"
	claudeDirName  = "claude"
	sshDirName     = "ssh"
	privateKeyName = "id_rsa"
	publicKeyName  = "id_rsa.pub"
	buildLogName   = "build.log"
	updateLogName  = "update.log"
)

// Project manages a project's .cj directory and its contents.
type Project struct {
	baseDir string
	fs      system.FileSystem
}

// NewProject creates a Project rooted at baseDir. A nil filesystem falls
// back to the default OS filesystem.
func NewProject(baseDir string, fs system.FileSystem) (*Project, error) {
	if fs == nil {
		fs = system.DefaultFS()
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.ConfigError("failed to resolve project directory", err)
	}
	return &Project{baseDir: abs, fs: fs}, nil
}

// BaseDir returns the absolute project root.
func (p *Project) BaseDir() string {
	return p.baseDir
}

// Dir returns the absolute path of the .cj directory.
func (p *Project) Dir() string {
	return filepath.Join(p.baseDir, DirName)
}

// Exists reports whether the .cj directory exists.
func (p *Project) Exists() bool {
	return p.fs.IsDir(p.Dir())
}

// Create makes the .cj directory, failing if it already exists.
func (p *Project) Create() error {
	if p.fs.Exists(p.Dir()) {
		return errors.ConfigExists(p.Dir())
	}
	if err := p.fs.MkdirAll(p.Dir(), 0755); err != nil {
		return errors.ConfigError("failed to create configuration directory", err)
	}
	return nil
}

// ImageNamePath returns the path of the image-name file.
func (p *Project) ImageNamePath() string {
	return filepath.Join(p.Dir(), imageNameFile)
}

// ReadImageName returns the recorded image name for this project.
func (p *Project) ReadImageName() (string, error) {
	data, err := p.fs.ReadFile(p.ImageNamePath())
	if err != nil {
		return "", errors.ImageNameNotFound(p.ImageNamePath())
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteImageName records the image name for this project.
func (p *Project) WriteImageName(name string) error {
	if err := p.fs.WriteFile(p.ImageNamePath(), []byte(name+"\n"), 0644); err != nil {
		return errors.ConfigError("failed to write image name", err)
	}
	return nil
}

// DockerfilePath returns the path of the generated Dockerfile.
func (p *Project) DockerfilePath() string {
	return filepath.Join(p.Dir(), dockerfileName)
}

// SettingsPath returns the path of settings.toml.
func (p *Project) SettingsPath() string {
	return filepath.Join(p.Dir(), settingsName)
}

// ClaudeDir returns the path of the credential persistence directory.
func (p *Project) ClaudeDir() string {
	return filepath.Join(p.Dir(), claudeDirName)
}

// EnsureClaudeDir creates the claude directory if absent. Idempotent.
func (p *Project) EnsureClaudeDir() error {
	if err := p.fs.MkdirAll(p.ClaudeDir(), 0755); err != nil {
		return errors.ConfigError("failed to create claude directory", err)
	}
	return nil
}

// SSHDir returns the path of the per-project SSH key directory.
func (p *Project) SSHDir() string {
	return filepath.Join(p.Dir(), sshDirName)
}

// EnsureSSHDir creates the ssh directory if absent. Idempotent.
func (p *Project) EnsureSSHDir() error {
	if err := p.fs.MkdirAll(p.SSHDir(), 0755); err != nil {
		return errors.ConfigError("failed to create ssh directory", err)
	}
	return nil
}

// PrivateKeyPath returns the path of the container-access private key.
func (p *Project) PrivateKeyPath() string {
	return filepath.Join(p.SSHDir(), privateKeyName)
}

// PublicKeyPath returns the path of the container-access public key.
func (p *Project) PublicKeyPath() string {
	return filepath.Join(p.SSHDir(), publicKeyName)
}

// BuildLogPath returns where image build output is captured.
func (p *Project) BuildLogPath() string {
	return filepath.Join(p.Dir(), buildLogName)
}

// UpdateLogPath returns where image rebuild output is captured.
func (p *Project) UpdateLogPath() string {
	return filepath.Join(p.Dir(), updateLogName)
}

// Cleanup removes the .cj directory and everything under it.
func (p *Project) Cleanup() error {
	if !p.fs.Exists(p.Dir()) {
		return nil
	}
	if err := p.fs.RemoveAll(p.Dir()); err != nil {
		return errors.ConfigError("failed to remove configuration directory", err)
	}
	return nil
}

// Require returns an error unless the .cj directory exists. Commands that
// operate on an existing project call this first.
func (p *Project) Require() error {
	if !p.Exists() {
		return errors.ConfigNotFound()
	}
	return nil
}
