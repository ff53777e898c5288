package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

var localFilesPrio = []string{
	"yamis.private.yml",
	"yamis.private.yaml",
	"yamis.yml",
	"yamis.yaml",
	"yamis.root.yml",
	"yamis.root.yaml",
}

var globalFilesPrio = []string{
	filepath.Join("yamis", "yamis.global.yml"),
	filepath.Join("yamis", "yamis.global.yaml"),
}

func isRootMarker(name string) bool {
	return strings.HasPrefix(name, "yamis.root.")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DiscoverPaths returns, closest-first, the ordered sequence of config file
// paths that would be loaded starting the ancestor walk at dir: the
// priority list checked in every directory on the way up, stopping at (and
// including) the first yamis.root.* match, followed by the global fallback
// if no root marker was found.
func DiscoverPaths(dir string) []string {
	var paths []string
	foundRoot := false

	current := dir
outer:
	for {
		for _, name := range localFilesPrio {
			p := filepath.Join(current, name)
			if isRegularFile(p) {
				paths = append(paths, p)
				if isRootMarker(name) {
					foundRoot = true
					break outer
				}
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	if !foundRoot {
		if p, ok := globalConfigPath(); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// globalConfigPath returns the first existing global config file path under
// the user's home directory.
func globalConfigPath() (string, bool) {
	if xdg.Home == "" {
		return "", false
	}
	for _, name := range globalFilesPrio {
		p := filepath.Join(xdg.Home, name)
		if isRegularFile(p) {
			return p, true
		}
	}
	return "", false
}

// ExplicitPath validates a user-supplied -f/--file path: it must name an
// existing regular file.
func ExplicitPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !isRegularFile(abs) {
		return "", fmt.Errorf("config file `%s` not found", path)
	}
	return abs, nil
}
