// Package session orchestrates one foreground container run: volume mounts,
// URL-translation mappings derived from them, the browser bridge, and the
// SSH reverse tunnel that connects the two.
package session
