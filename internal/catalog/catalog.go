// Package catalog checks the template catalogs that surface examples in the
// product.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
)

// DefaultNames are the catalog files checked when none are configured.
var DefaultNames = []string{"templates-hosted.json", "templates-enterprise.json"}

// Template is one catalog entry.
type Template struct {
	Title        string      `json:"title"`
	Weight       json.Number `json:"weight"`
	ThumbnailURL string      `json:"thumbnail_image_url"`
	RecipePath   string      `json:"recipe_path"`
}

// Example returns the example directory the entry points at.
func (t Template) Example() string {
	return ExampleFromRecipePath(t.RecipePath)
}

// Catalog is the decoded content of a catalog file.
type Catalog struct {
	Templates []Template `json:"templates"`
}

// ExampleFromRecipePath extracts the example directory name from a recipe
// path: the first segment after the last "examples/".
func ExampleFromRecipePath(path string) string {
	if i := strings.LastIndex(path, "examples/"); i >= 0 {
		path = path[i+len("examples/"):]
	}
	name, _, _ := strings.Cut(path, "/")
	return name
}

// Load reads and decodes the catalog at path.
func Load(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError(
				"template catalog not found",
				path,
				"Pass --catalog-dir or set catalog_dir to the directory holding the catalogs.",
			)
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes catalog content. source is used in error messages.
func Parse(data []byte, source string) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrValidation, err, "parsing catalog "+filepath.Base(source))
	}
	return &c, nil
}

// sameWeight compares weights numerically so that 1 and 1.0 collide.
func sameWeight(a, b json.Number) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(string(a), 64)
	fb, errB := strconv.ParseFloat(string(b), 64)
	return errA == nil && errB == nil && fa == fb
}

// formatTitles renders titles as a bracketed, single-quoted list.
func formatTitles(titles []string) string {
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
