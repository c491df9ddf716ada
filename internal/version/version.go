// Package version provides version information for examplecheck.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// SchemaLibrary is the JSON Schema validator module version.
	SchemaLibrary string `json:"schemaLibrary"`
}

const schemaModule = "github.com/santhosh-tekuri/jsonschema/v6"

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		SchemaLibrary: moduleVersion(schemaModule),
	}
}

// moduleVersion reads a dependency version from the embedded build info.
func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return "unknown"
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("examplecheck:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n  Schema:   %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.SchemaLibrary)
}
