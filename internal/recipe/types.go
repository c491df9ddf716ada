// Package recipe validates the saturn.json recipe that every example ships.
package recipe

import "encoding/json"

// Recipe is the subset of a recipe document that the repository rules inspect.
// Structural validation is left to the JSON Schema.
type Recipe struct {
	Name             string                       `json:"name"`
	ImageURI         string                       `json:"image_uri"`
	WorkingDirectory string                       `json:"working_directory"`
	GitRepositories  []map[string]json.RawMessage `json:"git_repositories"`

	JupyterServer *Workload `json:"jupyter_server"`
	Deployment    *Workload `json:"deployment"`
	Job           *Workload `json:"job"`
	RStudioServer *Workload `json:"rstudio_server"`

	DaskCluster *DaskCluster `json:"dask_cluster"`
}

// Workload is the compute resource a recipe provisions.
type Workload struct {
	InstanceType string `json:"instance_type"`

	// DiskSpace is kept raw; only its presence matters.
	DiskSpace json.RawMessage `json:"disk_space"`
}

// HasDiskSpace reports whether disk_space was set.
func (w *Workload) HasDiskSpace() bool {
	return len(w.DiskSpace) > 0
}

// DaskCluster is an optional Dask cluster attached to the workload.
type DaskCluster struct {
	NumWorkers int `json:"num_workers"`
	Worker     struct {
		InstanceType string `json:"instance_type"`
	} `json:"worker"`
}

// WorkloadKind identifies which workload field a recipe uses.
type WorkloadKind int

const (
	// WorkloadNone means the recipe declares no workload.
	WorkloadNone WorkloadKind = iota
	WorkloadJupyterServer
	WorkloadDeployment
	WorkloadJob
	WorkloadRStudioServer
)

// String returns the recipe field name of the kind.
func (k WorkloadKind) String() string {
	switch k {
	case WorkloadJupyterServer:
		return "jupyter_server"
	case WorkloadDeployment:
		return "deployment"
	case WorkloadJob:
		return "job"
	case WorkloadRStudioServer:
		return "rstudio_server"
	default:
		return "none"
	}
}

// IsWorkspace reports whether the kind is an interactive workspace.
func (k WorkloadKind) IsWorkspace() bool {
	return k == WorkloadJupyterServer || k == WorkloadRStudioServer
}

// ActiveWorkload returns the first workload present, checked in the order
// jupyter_server, deployment, job, rstudio_server.
func (r *Recipe) ActiveWorkload() (WorkloadKind, *Workload) {
	candidates := []struct {
		kind WorkloadKind
		w    *Workload
	}{
		{WorkloadJupyterServer, r.JupyterServer},
		{WorkloadDeployment, r.Deployment},
		{WorkloadJob, r.Job},
		{WorkloadRStudioServer, r.RStudioServer},
	}
	for _, c := range candidates {
		if c.w != nil {
			return c.kind, c.w
		}
	}
	return WorkloadNone, nil
}
