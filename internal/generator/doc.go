// Package generator renders the project Dockerfile and the default
// CLAUDE.md. The Dockerfile bakes in the SSH public key for the reverse
// tunnel and an open shim that hands URLs to the host browser bridge.
package generator
