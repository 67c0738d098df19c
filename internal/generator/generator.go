package generator

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
)

// basePackages are the apt packages every generated image carries,
// independent of per-project extras.
var basePackages = []string{
	"ca-certificates",
	"clang",
	"curl",
	"g++",
	"gcc",
	"git",
	"neovim",
	"openssh-server",
	"python3",
	"vim",
	"zsh",
}

var dockerfileTemplate = template.Must(template.New("dockerfile").Parse(dockerfileTemplateText))

// Params configures Dockerfile rendering.
type Params struct {
	// BridgePort is the host port the container's open shim writes URLs to.
	BridgePort int

	// ExtraPackages are additional apt packages baked into the image.
	ExtraPackages []string
}

// templateData is the resolved input handed to the Dockerfile template.
type templateData struct {
	Packages   []string
	BridgePort int
}

// Dockerfile renders the project Dockerfile. Extra packages are merged
// into the base set, deduplicated and sorted.
func Dockerfile(p Params) (string, error) {
	if p.BridgePort < 1 || p.BridgePort > 65535 {
		return "", fmt.Errorf("invalid bridge port %d", p.BridgePort)
	}

	data := templateData{
		Packages:   MergePackages(basePackages, p.ExtraPackages),
		BridgePort: p.BridgePort,
	}

	var buf bytes.Buffer
	if err := dockerfileTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render Dockerfile: %w", err)
	}
	return buf.String(), nil
}

// MergePackages unions two package lists, dropping duplicates and empty
// entries and sorting the result.
func MergePackages(stored, extra []string) []string {
	seen := make(map[string]bool, len(stored)+len(extra))
	var merged []string
	for _, list := range [][]string{stored, extra} {
		for _, pkg := range list {
			if pkg == "" || seen[pkg] {
				continue
			}
			seen[pkg] = true
			merged = append(merged, pkg)
		}
	}
	sort.Strings(merged)
	return merged
}

// DefaultClaudeMD returns the CLAUDE.md content written into new projects.
func DefaultClaudeMD() string {
	return claudeMDTemplate
}
