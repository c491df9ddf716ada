package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/saturncloud/examplecheck/internal/output"
	"github.com/saturncloud/examplecheck/internal/report"
)

// Checker validates every configured catalog against the example listing.
type Checker struct {
	Fs  afero.Fs
	Dir string

	// Names are catalog file names under Dir; empty means DefaultNames.
	Names []string

	Client *http.Client

	// CheckThumbnails enables the thumbnail reachability probe.
	CheckThumbnails bool

	// Out receives one progress line per catalog.
	Out io.Writer
}

// CheckAll checks each catalog in order. examples is the listing of example
// directories that template entries must reference.
func (c *Checker) CheckAll(ctx context.Context, examples []string, col *report.Collector) error {
	names := c.Names
	if len(names) == 0 {
		names = DefaultNames
	}
	for _, name := range names {
		if err := c.Check(ctx, name, examples, col); err != nil {
			return err
		}
	}
	return nil
}

// Check validates the catalog file name. A missing or malformed catalog is
// fatal; rule violations go to col.
func (c *Checker) Check(ctx context.Context, name string, examples []string, col *report.Collector) error {
	cat, err := Load(c.Fs, filepath.Join(c.Dir, name))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.Out, output.FormatProgress("", name))
	output.Debug("checking catalog", "catalog", name, "templates", len(cat.Templates))

	var seen []Template
	for _, t := range cat.Templates {
		if c.CheckThumbnails {
			if msg := c.checkThumbnail(ctx, t); msg != "" {
				col.Add(msg)
			}
		}

		var matches []string
		for _, prev := range seen {
			if sameWeight(prev.Weight, t.Weight) {
				matches = append(matches, prev.Title)
			}
		}
		if len(matches) > 0 {
			col.Addf("Weight (%s) for '%s' is non-unique. It matches %s.", t.Weight, t.Title, formatTitles(matches))
		}
		seen = append(seen, t)

		if example := t.Example(); !slices.Contains(examples, example) {
			col.Addf("Example directory: '%s' referenced by template: '%s' does not exist.", example, t.Title)
		}
	}
	return nil
}

// checkThumbnail returns a violation message, or "" when the thumbnail URL
// answers 200.
func (c *Checker) checkThumbnail(ctx context.Context, t Template) string {
	invalid := fmt.Sprintf("Thumbnail image (%s) for %s is not a valid url.", t.ThumbnailURL, t.Title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.ThumbnailURL, nil)
	if err != nil {
		return fmt.Sprintf("%s %v", invalid, err)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Sprintf("%s %v", invalid, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		output.Debug("thumbnail rejected", "url", t.ThumbnailURL, "status", resp.StatusCode)
		return invalid
	}
	return ""
}
