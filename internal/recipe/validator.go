package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/registry"
	"github.com/saturncloud/examplecheck/internal/remote"
)

// Repository conventions for recipes.
const (
	NamePrefix             = "example-"
	WorkingDirectoryPrefix = "/home/jovyan/examples/examples/"
	MaxDaskWorkers         = 3
)

// ImageChecker reports whether a container image can be pulled.
type ImageChecker interface {
	Exists(ctx context.Context, img registry.Image) (bool, error)
	DisplayName(img registry.Image) string
}

// Validator applies the schema and repository rules to recipes.
type Validator struct {
	Schema        *jsonschema.Schema
	InstanceTypes remote.InstanceTypes

	// InstanceTypesURL is quoted in messages about invalid instance types.
	InstanceTypesURL string

	// ExamplesDir is the root that working directories resolve against.
	ExamplesDir string

	// Images checks image availability; nil disables the check.
	Images ImageChecker

	Fs afero.Fs
}

// ValidateFile reads and validates the recipe at path for the example named
// exampleName. A read or JSON syntax failure is fatal.
func (v *Validator) ValidateFile(ctx context.Context, path, exampleName string) error {
	data, err := afero.ReadFile(v.Fs, path)
	if err != nil {
		return fmt.Errorf("reading recipe %s: %w", path, err)
	}
	return v.Validate(ctx, data, exampleName)
}

// Validate checks one recipe document. Rules run in a fixed order and the
// first violation is returned as a *ValidationError.
func (v *Validator) Validate(ctx context.Context, data []byte, exampleName string) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return oerrors.WrapCause(oerrors.ErrValidation, err, "recipe is not valid JSON")
	}

	if err := v.Schema.Validate(doc); err != nil {
		return &ValidationError{Message: err.Error(), Cause: err}
	}

	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return &ValidationError{Message: fmt.Sprintf("recipe has unexpected field types: %v", err), Cause: err}
	}

	checks := []func() error{
		func() error { return checkName(&r) },
		func() error { return v.checkImage(ctx, &r) },
		func() error { return v.checkWorkingDirectory(&r, exampleName) },
		func() error { return checkGitRepositories(&r) },
		func() error { return v.checkWorkload(&r) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func checkName(r *Recipe) error {
	if !strings.HasPrefix(r.Name, NamePrefix) {
		return invalidf("name ('%s') needs to start with %s", r.Name, NamePrefix)
	}
	return nil
}

func (v *Validator) checkImage(ctx context.Context, r *Recipe) error {
	if v.Images == nil {
		return nil
	}

	img, err := registry.ParseImageURI(r.ImageURI)
	if err != nil {
		return &ValidationError{Message: err.Error(), Cause: err}
	}

	ok, err := v.Images.Exists(ctx, img)
	if err != nil {
		return err
	}
	if !ok {
		return invalidf("image '%s' is not available on %s.", img.String(), v.Images.DisplayName(img))
	}
	return nil
}

func (v *Validator) checkWorkingDirectory(r *Recipe, exampleName string) error {
	wd := r.WorkingDirectory
	if !strings.HasPrefix(wd, WorkingDirectoryPrefix) {
		return invalidf("working_directory ('%s') needs to start with %s", wd, WorkingDirectoryPrefix)
	}

	suffix := strings.TrimPrefix(wd, WorkingDirectoryPrefix)
	if suffix != exampleName {
		return invalidf("working_directory ('%s') needs to end with the name of the example directory: %s",
			wd, exampleName)
	}

	exists, err := afero.Exists(v.Fs, filepath.Join(v.ExamplesDir, suffix))
	if err != nil {
		return fmt.Errorf("checking working_directory: %w", err)
	}
	if !exists {
		return invalidf("working_directory ('%s') needs to point to a real path", wd)
	}
	return nil
}

func checkGitRepositories(r *Recipe) error {
	if len(r.GitRepositories) < 1 {
		return invalidf("git_repositories cannot be empty")
	}
	for _, repo := range r.GitRepositories {
		if _, ok := repo["path"]; !ok {
			return invalidf("At least one git_repository is missing a path %s", describeRepositories(r.GitRepositories))
		}
	}
	return nil
}

func (v *Validator) checkWorkload(r *Recipe) error {
	kind, w := r.ActiveWorkload()
	if kind == WorkloadNone {
		return invalidf("recipe needs one of jupyter_server, deployment, job or rstudio_server")
	}

	if !v.InstanceTypes.Contains(w.InstanceType) {
		return invalidf("instance_type ('%s') is not a valid option. Look at %s for valid options.",
			w.InstanceType, v.InstanceTypesURL)
	}

	if dask := r.DaskCluster; dask != nil {
		if dask.NumWorkers > MaxDaskWorkers {
			return invalidf("there should not be more than %d workers per dask cluster.", MaxDaskWorkers)
		}
		if dask.Worker.InstanceType != w.InstanceType {
			return invalidf("Dask worker instance type should match the instance type of its attached %s", kind)
		}
	}

	if kind.IsWorkspace() && !w.HasDiskSpace() {
		return invalidf("disk_space is required for workspaces.")
	}
	return nil
}

func describeRepositories(repos []map[string]json.RawMessage) string {
	data, err := json.Marshal(repos)
	if err != nil {
		return fmt.Sprint(repos)
	}
	return string(data)
}

// IsValidationError reports whether err is a recorded rule violation rather
// than a fatal failure.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
