// Package testutil provides helpers for building example trees in tests.
package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// CleanNotebook is a notebook with no outputs and no execution counts.
const CleanNotebook = `{
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": ["# Example\n"]},
  {"cell_type": "code", "execution_count": null, "metadata": {}, "outputs": [],
   "source": ["import dask\n", "\n", "@dask.delayed\n", "def inc(x):\n", "    return x + 1\n"]}
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 4
}`

// WriteFile creates a file, and any missing parents, in fs.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Mkdir creates a directory tree in fs.
func Mkdir(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	if err := fs.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
	return path
}

// Recipe returns a recipe document that passes every rule for the example
// named name, given that "large" is a valid instance type and the image
// saturncloud/saturn:2022.01.06 exists.
func Recipe(name string) map[string]any {
	return map[string]any{
		"name":              "example-" + name,
		"image_uri":         "saturncloud/saturn:2022.01.06",
		"working_directory": "/home/jovyan/examples/examples/" + name,
		"git_repositories": []any{
			map[string]any{
				"url":  "https://github.com/saturncloud/examples",
				"path": "/home/jovyan/examples",
			},
		},
		"jupyter_server": map[string]any{"instance_type": "large", "disk_space": "10Gi"},
	}
}

// MarshalJSON encodes v or fails the test.
func MarshalJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	return string(data)
}

// ValidExample writes a complete, valid example directory under root and
// returns its path.
func ValidExample(t *testing.T, fs afero.Fs, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	WriteFile(t, fs, filepath.Join(dir, "README.md"), "# "+name+"\n")
	WriteFile(t, fs, filepath.Join(dir, name+".ipynb"), CleanNotebook)
	WriteFile(t, fs, filepath.Join(dir, ".saturn", "saturn.json"), MarshalJSON(t, Recipe(name)))
	return dir
}
