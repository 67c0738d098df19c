// Package errors provides typed errors with exit codes for cj.
//
// CJError wraps a user-facing message, an optional cause, and a process
// exit code:
//
//	type CJError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// Use the constructors for the common failure categories:
//
//	errors.ConfigNotFound()
//	errors.ContainerUnavailable()
//	errors.BuildFailed(err)
//	errors.SSHKeyFailed("failed to generate SSH keys", err)
//
// main extracts the exit code from the chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
