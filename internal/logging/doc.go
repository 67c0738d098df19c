// Package logging provides logging utilities for cj.
//
// Two categories of output are provided:
//   - Debug logging: structured records via slog, controlled by the
//     --verbose and --json root flags through Setup.
//   - User output: formatted status messages for end users.
//
// Debug logging:
//
//	logging.Debug("building image", "tag", tag, "dockerfile", path)
//	logging.Warn("tunnel not ready", "port", port)
//
// User output:
//
//	logging.UserInfo("Building container image %q...", name)
//	logging.UserSuccess("Successfully created container image %q", name)
//	logging.UserWarning("Browser redirection will not be available")
//	logging.UserError("Error during setup: %v", err)
package logging
