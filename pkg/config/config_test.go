package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const fixtureToml = `[package]
name = "mojo-zlib"
version = "0.3.0"

[workspace]
license = "Apache-2.0"
license-file = "LICENSE"
homepage = "https://example.com/mojo-zlib"
repository = "https://github.com/mojo-zlib/mojo-zlib"
description = "zlib bindings for Mojo"

[dependencies]
small_time = "1.0.0"
max = ">=24.5"
emberjson = "<2.0"
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pixi.toml")
	if err := os.WriteFile(path, []byte(content), 0660); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeFixture(t, fixtureToml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Package.Name != "mojo-zlib" || cfg.Package.Version != "0.3.0" {
		t.Errorf("unexpected package section: %+v", cfg.Package)
	}
	if cfg.Workspace.LicenseFile != "LICENSE" {
		t.Errorf("license-file = %q, want %q", cfg.Workspace.LicenseFile, "LICENSE")
	}
	if cfg.Workspace.Description != "zlib bindings for Mojo" {
		t.Errorf("description = %q", cfg.Workspace.Description)
	}

	wantDeps := map[string]string{
		"small_time": "1.0.0",
		"max":        ">=24.5",
		"emberjson":  "<2.0",
	}
	if !reflect.DeepEqual(cfg.Dependencies, wantDeps) {
		t.Errorf("dependencies = %+v, want %+v", cfg.Dependencies, wantDeps)
	}
}

func TestLoadDependencyOrder(t *testing.T) {
	// deliberately not alphabetical: the order must come from the file,
	// not from sorting
	cfg, err := Load(writeFixture(t, fixtureToml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"small_time", "max", "emberjson"}
	if !reflect.DeepEqual(cfg.DependencyOrder, want) {
		t.Errorf("DependencyOrder = %v, want %v", cfg.DependencyOrder, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "pixi.toml"))
	if err == nil {
		t.Fatal("Load succeeded for a missing file, want error")
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeFixture(t, "[package\nname = "))
	if err == nil {
		t.Fatal("Load succeeded for malformed TOML, want error")
	}
}

func TestBuildOutputDir(t *testing.T) {
	override := t.TempDir()
	t.Setenv("CONDA_BLD_PATH", override)

	dir, err := BuildOutputDir()
	if err != nil {
		t.Fatalf("BuildOutputDir failed: %v", err)
	}
	if dir != override {
		t.Errorf("BuildOutputDir = %q, want the CONDA_BLD_PATH override %q", dir, override)
	}

	t.Setenv("CONDA_BLD_PATH", "")
	dir, err = BuildOutputDir()
	if err != nil {
		t.Fatalf("BuildOutputDir failed: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if dir != wd {
		t.Errorf("BuildOutputDir = %q, want the working directory %q", dir, wd)
	}
}
