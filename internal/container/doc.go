// Package container wraps the macOS container CLI: image builds, existence
// checks, interactive runs, and best-effort image removal.
package container
