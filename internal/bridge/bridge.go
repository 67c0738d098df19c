package bridge

import (
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/cjtool/cj/internal/logging"
)

const (
	// DefaultPort is the well-known bridge port. The container-side open
	// shim writes to the same port; the value is a convention shared with
	// the Dockerfile generator, not negotiated.
	DefaultPort = 9999

	// maxMessageSize caps a single URL message.
	maxMessageSize = 4096

	// acceptTimeout is the accept deadline used to poll the running flag.
	acceptTimeout = 1 * time.Second

	// readTimeout bounds the single read on an accepted connection so a
	// stalled client cannot wedge the sequential accept loop.
	readTimeout = 5 * time.Second

	// stopTimeout bounds the join on the listener goroutine during Stop.
	stopTimeout = 2 * time.Second
)

// Bridge is the host-side URL listener. It accepts one-shot URL messages
// from the container (via the SSH reverse tunnel), translates file:// paths
// to host paths, and hands the result to an Opener.
//
// Connections are handled strictly sequentially: one message is fully
// processed before the next Accept. This bounds in-flight work to a single
// message, which is fine for a single-session, localhost-only channel.
//
// Start and Stop are idempotent and expected to be called from the one
// goroutine orchestrating the session, not concurrently with each other.
type Bridge struct {
	cfg    Config
	opener Opener

	running atomic.Bool

	mu sync.Mutex // guards ln
	ln net.Listener

	done chan struct{}
}

// New creates a Bridge for one container session. A nil opener defaults to
// the platform URL handler.
func New(cfg Config, opener Opener) *Bridge {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if opener == nil {
		opener = NewExecOpener(nil)
	}
	return &Bridge{cfg: cfg, opener: opener}
}

// Running reports whether the bridge has been started and not yet stopped.
func (b *Bridge) Running() bool {
	return b.running.Load()
}

// Start launches the accept loop in a background goroutine and returns
// immediately. There is no readiness guarantee: callers that must observe
// the socket bound need to poll externally. Calling Start on a running
// bridge is a no-op.
func (b *Bridge) Start() {
	if b.running.Swap(true) {
		return
	}
	b.done = make(chan struct{})
	go b.listen()
}

// Stop clears the running flag, closes the listening socket to unblock a
// parked Accept, and waits for the loop to exit, bounded by stopTimeout.
// Stop is best-effort and never blocks indefinitely; calling it on a
// stopped bridge is a no-op.
func (b *Bridge) Stop() {
	if !b.running.Swap(false) {
		return
	}

	b.mu.Lock()
	if b.ln != nil {
		// Close errors are expected when the socket never bound.
		_ = b.ln.Close()
	}
	b.mu.Unlock()

	select {
	case <-b.done:
	case <-time.After(stopTimeout):
		logging.Warn("browser bridge listener did not stop in time")
	}
}

// listen is the accept loop. A bind failure is fatal to the bridge only:
// the loop exits and the session continues without browser redirection.
func (b *Bridge) listen() {
	defer close(b.done)

	// Go's net package enables SO_REUSEADDR on TCP listeners.
	ln, err := net.Listen("tcp", net.JoinHostPort("localhost", strconv.Itoa(b.cfg.Port)))
	if err != nil {
		logging.Error("browser bridge listen failed", "port", b.cfg.Port, "error", err)
		return
	}

	b.mu.Lock()
	b.ln = ln
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		_ = ln.Close()
		b.ln = nil
		b.mu.Unlock()
	}()

	tl := ln.(*net.TCPListener)

	for b.running.Load() {
		_ = tl.SetDeadline(time.Now().Add(acceptTimeout))

		conn, err := tl.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				// Deadline expired; re-check the running flag.
				continue
			}
			if !b.running.Load() {
				// Listener closed by Stop.
				return
			}
			logging.Error("browser bridge accept failed", "error", err)
			return
		}

		b.handle(conn)
	}
}

// handle reads one URL message from the connection and dispatches it.
// Malformed input closes the connection without crashing the loop.
func (b *Bridge) handle(conn net.Conn) {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	buf := make([]byte, maxMessageSize)
	n, err := conn.Read(buf)
	if n == 0 {
		// A client that connects and closes without sending is not an error.
		if err != nil && err != io.EOF {
			logging.Debug("browser bridge read failed", "error", err)
		}
		return
	}

	data := buf[:n]
	if !utf8.Valid(data) {
		logging.Warn("browser bridge received malformed message", "bytes", n)
		return
	}

	url := strings.TrimSpace(string(data))
	if url == "" {
		return
	}

	b.opener.Open(Translate(url, b.cfg.Mappings))
}
