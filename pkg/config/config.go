// Package config loads the pixi.toml project descriptor.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

// DefaultPath is where every command expects the project descriptor,
// relative to the working directory the command runs in.
const DefaultPath = "pixi.toml"

type PackageInfo struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type WorkspaceInfo struct {
	License     string `toml:"license"`
	LicenseFile string `toml:"license-file"`
	Homepage    string `toml:"homepage"`
	Repository  string `toml:"repository"`
	Description string `toml:"description"`
}

// ProjectConfig contains the subset of pixi.toml the packaging tools need.
// It is loaded once per invocation and passed down to the commands, never
// written back.
type ProjectConfig struct {
	Package      PackageInfo       `toml:"package"`
	Workspace    WorkspaceInfo     `toml:"workspace"`
	Dependencies map[string]string `toml:"dependencies"`

	// DependencyOrder lists the dependency names in the order they appear
	// in pixi.toml. Go maps don't preserve insertion order but the recipe
	// must list its run requirements in file order.
	DependencyOrder []string `toml:"-"`
}

// Load parses the project descriptor at the given path. Callers treat any
// failure as fatal since no command can proceed without the configuration.
func Load(path string) (ProjectConfig, error) {
	var cfg ProjectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, eris.Wrapf(err, "Failed to load %s", path)
	}

	for _, key := range meta.Keys() {
		if len(key) == 2 && key[0] == "dependencies" {
			cfg.DependencyOrder = append(cfg.DependencyOrder, key[1])
		}
	}

	return cfg, nil
}

// BuildOutputDir returns the directory conda packages are built into and
// published from. If CONDA_BLD_PATH is set, it wins; otherwise the current
// working directory is used.
func BuildOutputDir() (string, error) {
	if dir := os.Getenv("CONDA_BLD_PATH"); dir != "" {
		return dir, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", eris.Wrap(err, "Failed to retrieve the current working directory")
	}
	return wd, nil
}
