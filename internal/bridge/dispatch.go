package bridge

import (
	goruntime "runtime"

	"github.com/cjtool/cj/internal/logging"
	"github.com/cjtool/cj/internal/system"
)

// Opener dispatches a URL to a handler. Implementations must not return or
// propagate failures to the accept loop; a message counts as delivered once
// Open has been called.
type Opener interface {
	Open(url string)
}

// OpenCommand returns the host's default URL/file opener.
func OpenCommand() string {
	if goruntime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// ExecOpener opens URLs by spawning the host URL handler as a detached
// child process with output discarded. Spawn failures are logged and
// swallowed.
type ExecOpener struct {
	exec    system.CommandExecutor
	command string
}

// NewExecOpener creates an ExecOpener using the platform opener command.
// A nil executor falls back to the default OS executor.
func NewExecOpener(exec system.CommandExecutor) *ExecOpener {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &ExecOpener{exec: exec, command: OpenCommand()}
}

func (o *ExecOpener) Open(url string) {
	logging.Debug("opening url on host", "url", url, "command", o.command)
	if err := o.exec.ExecuteDetached(o.command, url); err != nil {
		logging.Error("failed to open URL", "url", url, "error", err)
	}
}
