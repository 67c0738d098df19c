package errors

import (
	"errors"
	"fmt"
)

// Exit codes for cj.
const (
	ExitSuccess              = 0
	ExitGeneralError         = 1
	ExitConfigExists         = 2
	ExitConfigNotFound       = 3
	ExitImageNameNotFound    = 4
	ExitContainerUnavailable = 5
	ExitBuildFailed          = 6
	ExitRunFailed            = 7
	ExitSSHKeyFailed         = 8
)

// CJError is the base error type for cj.
type CJError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CJError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CJError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error.
func (e *CJError) ExitCode() int {
	return e.Code
}

// New creates a new CJError.
func New(code int, message string) *CJError {
	return &CJError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CJError.
func Wrap(code int, message string, cause error) *CJError {
	return &CJError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigExists returns an error for an already-initialized project.
func ConfigExists(path string) *CJError {
	return New(ExitConfigExists, fmt.Sprintf("configuration directory already exists: %s", path))
}

// ConfigNotFound returns an error for a missing .cj directory.
func ConfigNotFound() *CJError {
	return New(ExitConfigNotFound, ".cj directory not found; run 'cj setup' first")
}

// ImageNameNotFound returns an error for a missing image-name file.
func ImageNameNotFound(path string) *CJError {
	return New(ExitImageNameNotFound, fmt.Sprintf("image name file not found: %s", path))
}

// ContainerUnavailable returns an error when the container command is missing.
func ContainerUnavailable() *CJError {
	return New(ExitContainerUnavailable, "'container' command not found; please install the macOS container tool")
}

// BuildFailed returns an error for a failed image build.
func BuildFailed(cause error) *CJError {
	return Wrap(ExitBuildFailed, "failed to build image", cause)
}

// RunFailed returns an error for a failed container run.
func RunFailed(cause error) *CJError {
	return Wrap(ExitRunFailed, "failed to run container", cause)
}

// SSHKeyFailed returns an error for ssh key generation problems.
func SSHKeyFailed(message string, cause error) *CJError {
	return Wrap(ExitSSHKeyFailed, message, cause)
}

// ConfigError returns a general configuration error.
func ConfigError(message string, cause error) *CJError {
	return Wrap(ExitGeneralError, message, cause)
}

// GetExitCode extracts the exit code from an error chain.
func GetExitCode(err error) int {
	var cjErr *CJError
	if errors.As(err, &cjErr) {
		return cjErr.ExitCode()
	}
	return ExitGeneralError
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
