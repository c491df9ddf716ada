package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturncloud/examplecheck/internal/config"
	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/registry"
	"github.com/saturncloud/examplecheck/internal/testutil"
)

const (
	repoRoot     = "/repo"
	examplesDir  = "/repo/examples"
	versionFile  = "/repo/RECIPE_SCHEMA_VERSION"
	schemaDoc    = `{"type": "object", "required": ["name", "image_uri", "working_directory"]}`
	constantsDoc = "tiers:\n  large: {}\n  2xlarge: {}\n"
)

type fakeImages struct {
	missing map[string]bool
	checked []string
}

func (f *fakeImages) Exists(_ context.Context, img registry.Image) (bool, error) {
	f.checked = append(f.checked, img.String())
	return !f.missing[img.String()], nil
}

func (f *fakeImages) DisplayName(registry.Image) string {
	return "Docker Hub"
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/2022.01.06/resources/schema.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(schemaDoc))
	})
	mux.HandleFunc("/constants.yaml", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(constantsDoc))
	})
	mux.HandleFunc("/thumb.png", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeCatalogs(t *testing.T, fs afero.Fs, srv *httptest.Server, examples ...string) {
	t.Helper()
	templates := make([]map[string]any, 0, len(examples))
	for i, name := range examples {
		templates = append(templates, map[string]any{
			"title":               name,
			"weight":              i,
			"thumbnail_image_url": srv.URL + "/thumb.png",
			"recipe_path":         "examples/examples/" + name + "/.saturn/saturn.json",
		})
	}
	doc := testutil.MarshalJSON(t, map[string]any{"templates": templates})
	testutil.WriteFile(t, fs, filepath.Join(repoRoot, ".saturn", "templates-hosted.json"), doc)
	testutil.WriteFile(t, fs, filepath.Join(repoRoot, ".saturn", "templates-enterprise.json"), doc)
}

func newRepo(t *testing.T, srv *httptest.Server, examples ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, versionFile, "2022.01.06\n")
	testutil.Mkdir(t, fs, examplesDir)
	for _, name := range examples {
		testutil.ValidExample(t, fs, examplesDir, name)
	}
	writeCatalogs(t, fs, srv, examples...)
	return fs
}

func newConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ExamplesDir = examplesDir
	cfg.SchemaVersionFile = versionFile
	cfg.SchemaBaseURL = srv.URL + "/recipes"
	cfg.InstanceTypesURL = srv.URL + "/constants.yaml"
	cfg, err := cfg.WithDefaults()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func run(t *testing.T, srv *httptest.Server, fs afero.Fs, cfg *config.Config, images *fakeImages) (*Result, string, error) {
	t.Helper()
	var out bytes.Buffer
	res, err := Run(context.Background(), Options{
		Config: cfg,
		Fs:     fs,
		Client: srv.Client(),
		Images: images,
		Out:    &out,
	})
	return res, out.String(), err
}

func TestRun_CleanRepository(t *testing.T) {
	srv := newServer(t)
	fs := newRepo(t, srv, "dask", "rapids")
	images := &fakeImages{}

	res, out, err := run(t, srv, fs, newConfig(t, srv), images)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Collector.Len(), "errors: %v", res.Collector.Errors())
	assert.Equal(t, []string{"dask", "rapids"}, res.Examples)
	assert.Equal(t, "2022.01.06", res.SchemaVersion)
	assert.Len(t, images.checked, 2)

	assert.Contains(t, out, "Working on templates-hosted.json")
	assert.Contains(t, out, "Working on templates-enterprise.json")
	assert.Contains(t, out, "Working on directory 'dask'")
	assert.Contains(t, out, "Working on directory 'rapids'")
}

func TestRun_CollectsViolationsInOrder(t *testing.T) {
	srv := newServer(t)
	fs := newRepo(t, srv, "dask", "rapids")
	writeCatalogs(t, fs, srv, "dask", "rapids", "julia")

	bad := testutil.Recipe("rapids")
	bad["name"] = "rapids"
	testutil.WriteFile(t, fs, filepath.Join(examplesDir, "rapids", ".saturn", "saturn.json"), testutil.MarshalJSON(t, bad))
	require.NoError(t, fs.Remove(filepath.Join(examplesDir, "dask", "README.md")))

	res, _, err := run(t, srv, fs, newConfig(t, srv), &fakeImages{})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Example directory: 'julia' referenced by template: 'julia' does not exist.",
		"Example directory: 'julia' referenced by template: 'julia' does not exist.",
		"Every example must have a README.md. '/repo/examples/dask' does not.",
		"'/repo/examples/rapids/.saturn/saturn.json' has the following schema issues: " +
			"name ('rapids') needs to start with example-",
	}, res.Collector.Errors())
	assert.Equal(t, 4, res.Collector.ExitCode())
}

func TestRun_MissingImageIsRecorded(t *testing.T) {
	srv := newServer(t)
	fs := newRepo(t, srv, "dask")
	images := &fakeImages{missing: map[string]bool{"saturncloud/saturn:2022.01.06": true}}

	res, _, err := run(t, srv, fs, newConfig(t, srv), images)

	require.NoError(t, err)
	require.Equal(t, 1, res.Collector.Len())
	assert.Contains(t, res.Collector.Errors()[0],
		"image 'saturncloud/saturn:2022.01.06' is not available on Docker Hub.")
}

func TestRun_SkipImageCheck(t *testing.T) {
	srv := newServer(t)
	fs := newRepo(t, srv, "dask")
	images := &fakeImages{missing: map[string]bool{"saturncloud/saturn:2022.01.06": true}}
	cfg := newConfig(t, srv)
	cfg.SkipImageCheck = true

	res, _, err := run(t, srv, fs, cfg, images)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Collector.Len())
	assert.Empty(t, images.checked)
}

func TestRun_NoExampleDirectories(t *testing.T) {
	srv := newServer(t)
	fs := newRepo(t, srv)

	res, _, err := run(t, srv, fs, newConfig(t, srv), &fakeImages{})

	require.NoError(t, err)
	assert.Equal(t, []string{"No directories found under '/repo/examples'"}, res.Collector.Errors())
}

func TestRun_Deterministic(t *testing.T) {
	srv := newServer(t)
	fs := newRepo(t, srv, "dask", "rapids")
	testutil.WriteFile(t, fs, filepath.Join(examplesDir, "dask", "Bad Name.py"), "")
	testutil.Mkdir(t, fs, filepath.Join(examplesDir, "Upper"))
	cfg := newConfig(t, srv)

	first, _, err := run(t, srv, fs, cfg, &fakeImages{})
	require.NoError(t, err)
	second, _, err := run(t, srv, fs, cfg, &fakeImages{})
	require.NoError(t, err)

	assert.NotZero(t, first.Collector.Len())
	assert.Equal(t, first.Collector.Errors(), second.Collector.Errors())
}

func TestRun_FatalErrors(t *testing.T) {
	t.Run("missing schema version file", func(t *testing.T) {
		srv := newServer(t)
		fs := newRepo(t, srv, "dask")
		require.NoError(t, fs.Remove(versionFile))

		_, _, err := run(t, srv, fs, newConfig(t, srv), &fakeImages{})
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})

	t.Run("schema not published", func(t *testing.T) {
		srv := newServer(t)
		fs := newRepo(t, srv, "dask")
		testutil.WriteFile(t, fs, versionFile, "1999.01.01")

		_, _, err := run(t, srv, fs, newConfig(t, srv), &fakeImages{})
		assert.ErrorIs(t, err, oerrors.ErrConnectivity)
	})

	t.Run("missing examples directory", func(t *testing.T) {
		srv := newServer(t)
		fs := newRepo(t, srv, "dask")
		cfg := newConfig(t, srv)
		cfg.ExamplesDir = "/elsewhere"

		_, _, err := run(t, srv, fs, cfg, &fakeImages{})
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})

	t.Run("missing catalog", func(t *testing.T) {
		srv := newServer(t)
		fs := newRepo(t, srv, "dask")
		require.NoError(t, fs.Remove(filepath.Join(repoRoot, ".saturn", "templates-enterprise.json")))

		_, _, err := run(t, srv, fs, newConfig(t, srv), &fakeImages{})
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})

	t.Run("malformed recipe", func(t *testing.T) {
		srv := newServer(t)
		fs := newRepo(t, srv, "dask")
		testutil.WriteFile(t, fs, filepath.Join(examplesDir, "dask", ".saturn", "saturn.json"), "{")

		_, _, err := run(t, srv, fs, newConfig(t, srv), &fakeImages{})
		assert.ErrorIs(t, err, oerrors.ErrValidation)
	})
}
