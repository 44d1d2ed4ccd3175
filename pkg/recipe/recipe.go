// Package recipe builds the recipe.yaml document consumed by the external
// package builder.
package recipe

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"

	"github.com/mojo-zlib/devtools/pkg/config"
)

type Context struct {
	Version string `yaml:"version"`
}

type Package struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type Source struct {
	Path string `yaml:"path"`
}

type Build struct {
	Script []string `yaml:"script"`
}

type Requirements struct {
	Run []string `yaml:"run"`
}

type About struct {
	Homepage    string `yaml:"homepage"`
	License     string `yaml:"license"`
	LicenseFile string `yaml:"license_file"`
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	Repository  string `yaml:"repository"`
}

// Recipe is the full document written to recipe.yaml.
type Recipe struct {
	Context      Context      `yaml:"context"`
	Package      Package      `yaml:"package"`
	Source       []Source     `yaml:"source"`
	Build        Build        `yaml:"build"`
	Requirements Requirements `yaml:"requirements"`
	About        About        `yaml:"about"`
}

// Options contains the parts of the recipe that don't come from pixi.toml.
type Options struct {
	// ContextVersion is the toolchain version pinned in the recipe context.
	ContextVersion string
	// ArtifactName is the name passed to `mojo package` inside the build
	// script. Historically this is "zlib" and is intentionally independent
	// of the package name configured in pixi.toml.
	ArtifactName string
	// SourceDir is the source tree included in the package.
	SourceDir string
	// ReadmePath is read verbatim into the recipe's long description.
	ReadmePath string
	// Path is where the serialized recipe is written.
	Path string
}

func DefaultOptions() Options {
	return Options{
		ContextVersion: "13.4.2",
		ArtifactName:   "zlib",
		SourceDir:      "src",
		ReadmePath:     "README.md",
		Path:           "recipe.yaml",
	}
}

// Generate builds the recipe document from the project configuration. The
// run requirements keep the order the dependencies have in pixi.toml.
func Generate(cfg config.ProjectConfig, opts Options) (*Recipe, error) {
	script := []string{
		"mkdir -p ${PREFIX}/lib/mojo",
		fmt.Sprintf("pixi run mojo package %s -o ${PREFIX}/lib/mojo/%s.mojopkg", opts.ArtifactName, opts.ArtifactName),
	}

	if err := checkScript(script); err != nil {
		return nil, err
	}

	description, err := os.ReadFile(opts.ReadmePath)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to read %s", opts.ReadmePath)
	}

	run := make([]string, 0, len(cfg.DependencyOrder))
	for _, name := range cfg.DependencyOrder {
		dep, err := FormatDependency(name, cfg.Dependencies[name])
		if err != nil {
			return nil, err
		}
		run = append(run, dep)
	}

	return &Recipe{
		Context: Context{Version: opts.ContextVersion},
		Package: Package{
			Name:    cfg.Package.Name,
			Version: cfg.Package.Version,
		},
		Source: []Source{
			{Path: opts.SourceDir},
			{Path: cfg.Workspace.LicenseFile},
		},
		Build:        Build{Script: script},
		Requirements: Requirements{Run: run},
		About: About{
			Homepage:    cfg.Workspace.Homepage,
			License:     cfg.Workspace.License,
			LicenseFile: cfg.Workspace.LicenseFile,
			Summary:     cfg.Workspace.Description,
			Description: string(description),
			Repository:  cfg.Workspace.Repository,
		},
	}, nil
}

// checkScript makes sure every build script line parses as POSIX shell so
// a broken recipe is rejected here instead of inside the external builder.
func checkScript(lines []string) error {
	parser := syntax.NewParser()
	for _, line := range lines {
		_, err := parser.Parse(strings.NewReader(line), "build script")
		if err != nil {
			return eris.Wrapf(err, "Failed to parse build script line %q", line)
		}
	}
	return nil
}

// Write serializes the recipe to the given path, overwriting any existing
// file.
func (r *Recipe) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "Failed to create %s", path)
	}

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		f.Close()
		return eris.Wrapf(err, "Failed to serialize the recipe to %s", path)
	}

	if err := encoder.Close(); err != nil {
		f.Close()
		return eris.Wrapf(err, "Failed to flush the recipe to %s", path)
	}

	return f.Close()
}
