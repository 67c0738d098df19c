// Package config manages the per-project .cj directory: the recorded image
// name, the generated Dockerfile, credential and SSH key directories, build
// logs, and the optional settings.toml overrides.
package config
