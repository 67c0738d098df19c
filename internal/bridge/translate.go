package bridge

import (
	"strings"

	"github.com/cjtool/cj/internal/logging"
)

const fileScheme = "file://"

// Translate rewrites a file:// URL's path from container-local to host-local
// using the first matching mapping. Any other scheme (http, https, ...)
// passes through unchanged.
//
// Matching is a plain string-prefix test, not path-segment-aware: a mapping
// for "/root" also matches "/rootfoo". When no mapping matches, the URL is
// returned unchanged with a warning; opening it will likely fail on the
// host, which beats failing silently.
func Translate(url string, mappings []PathMapping) string {
	if !strings.HasPrefix(url, fileScheme) {
		return url
	}

	path := url[len(fileScheme):]

	for _, m := range mappings {
		if strings.HasPrefix(path, m.ContainerPrefix) {
			// Single leftmost replacement, not a global substitution.
			return fileScheme + strings.Replace(path, m.ContainerPrefix, m.HostPrefix, 1)
		}
	}

	logging.Warn("no path mapping found for container path", "path", path)
	return url
}
