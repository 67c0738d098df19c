// Package tunnel supervises the SSH reverse tunnel that lets the container
// reach the browser bridge port on the host.
package tunnel

import (
	"sync"
	"time"

	"github.com/cjtool/cj/internal/logging"
	"github.com/cjtool/cj/internal/ssh"
	"github.com/cjtool/cj/internal/system"
)

const (
	// DefaultStartupDelay gives the container's sshd time to finish
	// starting before the first connection attempt.
	DefaultStartupDelay = 2 * time.Second

	// ReadyTimeout bounds how long callers wait for the tunnel before
	// proceeding with degraded functionality.
	ReadyTimeout = 5 * time.Second

	// stopTimeout bounds the wait on the ssh child during teardown.
	stopTimeout = 2 * time.Second
)

// Supervisor establishes and owns the SSH reverse-tunnel child process.
type Supervisor struct {
	exec         system.CommandExecutor
	startupDelay time.Duration
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithStartupDelay overrides the sshd startup grace period.
func WithStartupDelay(d time.Duration) Option {
	return func(s *Supervisor) {
		s.startupDelay = d
	}
}

// NewSupervisor creates a Supervisor. A nil executor falls back to the
// default OS executor.
func NewSupervisor(exec system.CommandExecutor, opts ...Option) *Supervisor {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	s := &Supervisor{
		exec:         exec,
		startupDelay: DefaultStartupDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches tunnel establishment in a background goroutine and returns
// the handle immediately. After the startup grace delay it spawns
//
//	ssh -R fwd:localhost:fwd -p sshPort -i key -N \
//	    -o StrictHostKeyChecking=no -o UserKnownHostsFile=/dev/null \
//	    root@localhost
//
// exposing host port forwardPort inside the container on the same port.
// Failure to spawn is a warning, never a session abort: the handle simply
// never becomes ready and browser redirection stays unavailable.
func (s *Supervisor) Start(privateKeyPath string, sshPort, forwardPort int) *Handle {
	h := &Handle{settled: make(chan struct{})}

	go func() {
		defer close(h.settled)

		time.Sleep(s.startupDelay)

		opts := ssh.DefaultOptions(sshPort).
			WithIdentity(privateKeyPath).
			WithReverseForward(forwardPort)

		proc, err := s.exec.Start("ssh", opts.BuildArgs()...)
		if err != nil {
			logging.Warn("failed to establish SSH tunnel; browser redirection will not be available",
				"error", err)
			return
		}

		h.mu.Lock()
		if h.closed {
			// Torn down before establishment finished; don't leak the child.
			h.mu.Unlock()
			terminate(proc)
			return
		}
		h.proc = proc
		h.ready = true
		h.mu.Unlock()

		logging.Debug("ssh reverse tunnel established",
			"sshPort", sshPort, "forwardPort", forwardPort)
	}()

	return h
}

// Handle wraps the tunnel child process. The handle owner is responsible
// for calling Close on session end, whether or not the tunnel ever became
// ready.
type Handle struct {
	mu      sync.Mutex
	proc    system.Process
	ready   bool
	closed  bool
	settled chan struct{}
}

// WaitReady blocks until establishment settles or the timeout passes and
// reports whether the tunnel is up. Callers proceed either way.
func (h *Handle) WaitReady(timeout time.Duration) bool {
	select {
	case <-h.settled:
	case <-time.After(timeout):
	}
	return h.Ready()
}

// Ready reports whether the tunnel process is running.
func (h *Handle) Ready() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

// Close terminates the tunnel child, waiting a bounded time for it to exit.
// All failures are swallowed; Close is safe when no child was ever spawned
// and safe to call more than once.
func (h *Handle) Close() {
	h.mu.Lock()
	h.closed = true
	h.ready = false
	proc := h.proc
	h.proc = nil
	h.mu.Unlock()

	if proc == nil {
		return
	}
	terminate(proc)
}

func terminate(proc system.Process) {
	if err := proc.Terminate(); err != nil {
		logging.Debug("ssh tunnel terminate failed", "error", err)
	}

	done := make(chan struct{})
	go func() {
		_ = proc.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(stopTimeout):
		logging.Warn("ssh tunnel did not exit in time")
	}
}
