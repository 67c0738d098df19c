// Package ssh provides SSH key management and argument building for the
// reverse tunnel into the container.
package ssh

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cjtool/cj/internal/errors"
	"github.com/cjtool/cj/internal/system"
)

// Default connection values for the container's forwarded sshd.
const (
	DefaultUser    = "root"
	DefaultHost    = "localhost"
	DefaultSSHPort = 2222
	KeyComment     = "cj-container-access"
	KeyBits        = 4096
)

// Options configures an SSH invocation. The container is freshly
// provisioned and loopback-only, so host-key verification stays off by
// default (accepted risk, not a defect).
type Options struct {
	Port               int
	User               string
	Host               string
	IdentityFile       string
	StrictHostKeyCheck bool
	KnownHostsFile     string
	NoCommand          bool   // -N, forwarding-only session
	ReverseForward     string // -R spec, e.g. "9999:localhost:9999"
}

// DefaultOptions returns Options for reaching the container's sshd
// forwarded on the given host port.
func DefaultOptions(port int) Options {
	return Options{
		Port:           port,
		User:           DefaultUser,
		Host:           DefaultHost,
		KnownHostsFile: "/dev/null",
	}
}

// WithIdentity returns a copy using the given private key file.
func (o Options) WithIdentity(path string) Options {
	o.IdentityFile = path
	return o
}

// WithReverseForward returns a copy carrying a -R forwarding spec that
// exposes host port `port` inside the container on the same port.
func (o Options) WithReverseForward(port int) Options {
	o.ReverseForward = fmt.Sprintf("%d:localhost:%d", port, port)
	o.NoCommand = true
	return o
}

// Destination returns the user@host string.
func (o Options) Destination() string {
	return fmt.Sprintf("%s@%s", o.User, o.Host)
}

// BuildArgs returns the complete ssh argument list (without the program
// name).
func (o Options) BuildArgs() []string {
	var args []string

	if o.ReverseForward != "" {
		args = append(args, "-R", o.ReverseForward)
	}

	args = append(args, "-p", fmt.Sprintf("%d", o.Port))

	if o.IdentityFile != "" {
		args = append(args, "-i", o.IdentityFile)
	}

	if o.NoCommand {
		args = append(args, "-N")
	}

	if !o.StrictHostKeyCheck {
		args = append(args, "-o", "StrictHostKeyChecking=no")
	}

	if o.KnownHostsFile != "" {
		args = append(args, "-o", fmt.Sprintf("UserKnownHostsFile=%s", o.KnownHostsFile))
	}

	args = append(args, o.Destination())
	return args
}

// EnsureKeys generates an RSA key pair for container access if it does not
// exist yet. The private key ends up with 0600 permissions. Idempotent:
// existing keys are left alone.
func EnsureKeys(ctx context.Context, fs system.FileSystem, exec system.CommandExecutor, sshDir string) error {
	privateKey := filepath.Join(sshDir, "id_rsa")
	publicKey := filepath.Join(sshDir, "id_rsa.pub")

	if fs.Exists(privateKey) && fs.Exists(publicKey) {
		return nil
	}

	if err := fs.MkdirAll(sshDir, 0700); err != nil {
		return errors.SSHKeyFailed("failed to create SSH directory", err)
	}

	output, err := exec.Execute(ctx, "ssh-keygen",
		"-t", "rsa",
		"-b", fmt.Sprintf("%d", KeyBits),
		"-f", privateKey,
		"-N", "",
		"-C", KeyComment,
	)
	if err != nil {
		return errors.SSHKeyFailed(fmt.Sprintf("failed to generate SSH keys: %s", output), err)
	}

	if err := fs.Chmod(privateKey, 0600); err != nil {
		return errors.SSHKeyFailed("failed to set permissions on private key", err)
	}

	return nil
}
