// Package bridge implements the host-side browser bridge: a loopback TCP
// listener that receives URL-open requests originating inside the container
// and dispatches them to the host's default URL handler.
//
// # Wire protocol
//
// TCP, localhost-only, fixed well-known port (default 9999). A message is
// the raw bytes of a single URL, optionally newline-terminated, at most
// 4096 bytes, one message per connection. No response is sent; the client
// closes after sending. The container reaches the port through an SSH
// reverse tunnel (see the tunnel package).
//
// # Path translation
//
// file:// URLs carry container-local paths. Translate rewrites them with an
// ordered list of (container-prefix, host-prefix) mappings derived from the
// session's volume mounts; first match wins. Other schemes pass through.
//
// # Failure policy
//
// Nothing in this package is allowed to abort the container session. Bind
// failures, dispatch failures, unmapped paths, and malformed messages all
// degrade to "browser redirection unavailable" with a log line.
package bridge
