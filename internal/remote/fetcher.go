// Package remote fetches the resources a check run depends on: the recipe
// JSON Schema and the list of valid instance types. Every failure here is
// fatal to the run; there are no retries.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/output"
)

// Default locations of remote resources.
const (
	DefaultSchemaBaseURL     = "https://raw.githubusercontent.com/saturncloud/recipes"
	DefaultInstanceTypesURL  = "https://saturncloud.io/static/constants.yaml"
	DefaultSchemaVersionFile = "RECIPE_SCHEMA_VERSION"
)

// Fetcher downloads remote resources over HTTP.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher returns a Fetcher using client, or http.DefaultClient when nil.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{Client: client}
}

// get returns the body of a 200 response.
func (f *Fetcher) get(ctx context.Context, url, what string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", what, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrConnectivity, err, "fetching "+what)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &oerrors.DetailError{
			Type:     "connectivity failed",
			Message:  fmt.Sprintf("could not fetch %s", what),
			Location: url,
			Context:  map[string]string{"Status": resp.Status},
			Cause:    oerrors.ErrConnectivity,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrConnectivity, err, "reading "+what)
	}

	output.Debug("fetched remote resource", "what", what, "url", url, "bytes", len(body))
	return body, nil
}

// SchemaURL returns the location of the recipe schema for a release tag.
func SchemaURL(baseURL, version string) string {
	return fmt.Sprintf("%s/%s/resources/schema.json", strings.TrimRight(baseURL, "/"), version)
}

// ReadSchemaVersion reads the schema release tag from a version file.
func ReadSchemaVersion(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", oerrors.NewNotFoundError(
			"could not read the recipe schema version file",
			path,
			"Run examplecheck from the repository root or pass --schema-version-file",
		)
	}

	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", oerrors.NewValidationError("recipe schema version file is empty", path, "")
	}
	return version, nil
}
