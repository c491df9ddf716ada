// Package example applies the repository conventions to each example
// directory and records every violation it finds.
package example

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/saturncloud/examplecheck/internal/notebook"
	"github.com/saturncloud/examplecheck/internal/output"
	"github.com/saturncloud/examplecheck/internal/recipe"
	"github.com/saturncloud/examplecheck/internal/report"
)

// Required layout of an example directory.
const (
	ReadmeName     = "README.md"
	SaturnDirName  = ".saturn"
	SaturnJSONName = "saturn.json"
)

// RecipeValidator validates the recipe file of one example.
type RecipeValidator interface {
	ValidateFile(ctx context.Context, path, exampleName string) error
}

// Checker validates example directories under Root.
type Checker struct {
	Fs   afero.Fs
	Root string

	// AdminDirs are exempt from the directory naming rule.
	AdminDirs []string

	Recipes RecipeValidator

	// Out receives one progress line per directory.
	Out io.Writer
}

// Check validates the example directory name under Root. Violations go to
// col; the returned error is fatal to the whole run.
func (c *Checker) Check(ctx context.Context, name string, col *report.Collector) error {
	fmt.Fprintln(c.Out, output.FormatProgress("directory", name))
	log := output.ExampleLogger(name)

	fullDir := filepath.Join(c.Root, name)

	if !ValidDirectoryName(baseName(name)) {
		col.Addf("All directories under '%s' should be named with only lower alphanumeric "+
			"characters and dashes. '%s' violates this rule.", c.Root, fullDir)
		return nil
	}

	entries, err := c.walk(fullDir)
	if err != nil {
		return err
	}

	if ok, err := c.containsFile(fullDir); err != nil {
		return err
	} else if !ok {
		col.Addf("Directory '%s' is empty", fullDir)
		return nil
	}

	if err := c.checkSubdirReadmes(fullDir, col); err != nil {
		return err
	}

	if err := c.checkNotebooks(entries, col); err != nil {
		return err
	}

	c.checkNames(entries, col)

	if ok, err := c.isFile(filepath.Join(fullDir, ReadmeName)); err != nil {
		return err
	} else if !ok {
		col.Addf("Every example must have a README.md. '%s' does not.", fullDir)
	}

	saturnDir := filepath.Join(fullDir, SaturnDirName)
	if ok, err := afero.DirExists(c.Fs, saturnDir); err != nil {
		return err
	} else if !ok {
		col.Addf("'%s' does not include a '%s/' directory", fullDir, SaturnDirName)
		return nil
	}

	saturnJSON := filepath.Join(saturnDir, SaturnJSONName)
	if ok, err := c.isFile(saturnJSON); err != nil {
		return err
	} else if !ok {
		col.Addf("Did not find %s in '%s'. This file is required.", SaturnJSONName, saturnDir)
		return nil
	}

	if err := c.Recipes.ValidateFile(ctx, saturnJSON, name); err != nil {
		if !recipe.IsValidationError(err) {
			return err
		}
		log.Debug("recipe rejected", "error", err)
		col.Addf("'%s' has the following schema issues: %s", saturnJSON, err.Error())
	}
	return nil
}

type entry struct {
	path  string
	isDir bool
}

// walk lists every visible path below dir (dir itself excluded) in lexical order.
func (c *Checker) walk(dir string) ([]entry, error) {
	var entries []entry
	err := afero.Walk(c.Fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if hidden(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		entries = append(entries, entry{path: path, isDir: info.IsDir()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return entries, nil
}

// containsFile reports whether any regular file exists below dir. Unlike
// walk it descends into dot-directories.
func (c *Checker) containsFile(dir string) (bool, error) {
	found := false
	err := afero.Walk(c.Fs, dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	// afero.Walk hands SkipAll back to the caller.
	if err != nil && err != filepath.SkipAll {
		return false, fmt.Errorf("walking %s: %w", dir, err)
	}
	return found, nil
}

func (c *Checker) isFile(path string) (bool, error) {
	info, err := c.Fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (c *Checker) checkSubdirReadmes(fullDir string, col *report.Collector) error {
	children, err := afero.ReadDir(c.Fs, fullDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", fullDir, err)
	}

	for _, child := range children {
		if !child.IsDir() || hidden(child.Name()) {
			continue
		}
		sub := filepath.Join(fullDir, child.Name())
		ok, err := c.isFile(filepath.Join(sub, ReadmeName))
		if err != nil {
			return err
		}
		if !ok {
			col.Addf("Every directory two-levels below '%s' must have a README.md. None found for '%s'.",
				c.Root, sub)
		}
	}
	return nil
}

func (c *Checker) checkNotebooks(entries []entry, col *report.Collector) error {
	for _, e := range entries {
		if e.isDir || !strings.HasSuffix(e.path, notebook.Extension) {
			continue
		}

		data, err := afero.ReadFile(c.Fs, e.path)
		if err != nil {
			return fmt.Errorf("reading notebook %s: %w", e.path, err)
		}

		nb, err := notebook.Parse(data)
		if err != nil {
			col.Addf("Could not parse notebook '%s': %v", e.path, err)
			continue
		}
		col.Extend(notebook.Check(e.path, nb))
	}
	return nil
}

func (c *Checker) checkNames(entries []entry, col *report.Collector) {
	for _, e := range entries {
		name := baseName(e.path)
		if e.isDir {
			if ValidDirectoryName(name) || c.isAdminDir(name) {
				continue
			}
			col.Addf("All directories should be named with only lower alphanumeric characters "+
				"and dashes. '%s' violates this rule.", e.path)
			continue
		}
		if !ValidFileName(name) {
			col.Addf("All files should be named with only alphanumeric characters, dashes, "+
				"underscores, and periods. '%s' violates this rule.", e.path)
		}
	}
}

func (c *Checker) isAdminDir(name string) bool {
	return slices.Contains(c.AdminDirs, name)
}
