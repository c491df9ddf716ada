package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
)

// Well-known registry identities.
const (
	DockerHub = "docker.io"
	ECRPublic = "public.ecr.aws"
)

// DefaultECRTokenCommand obtains a public ECR bearer token through the AWS CLI.
const DefaultECRTokenCommand = "aws ecr-public get-authorization-token --region=us-east-1 " +
	"--output=text --query authorizationData.authorizationToken"

// Authorizer resolves where and how to query one registry.
type Authorizer interface {
	// Host returns the host serving the registry API for the given registry.
	Host(registry string) string

	// Authorization returns the Authorization header value for pulling
	// repository, or "" for anonymous access.
	Authorization(ctx context.Context, repository string) (string, error)

	// DisplayName names the registry in user-facing messages.
	DisplayName(registry string) string
}

// anonymous queries the registry host directly without credentials.
type anonymous struct{}

func (anonymous) Host(registry string) string { return registry }

func (anonymous) Authorization(context.Context, string) (string, error) { return "", nil }

func (anonymous) DisplayName(registry string) string { return registry }

// DockerHubAuth exchanges an anonymous pull token with the Docker Hub auth service.
type DockerHubAuth struct {
	Client *http.Client

	// TokenURL is the token endpoint (default https://auth.docker.io/token).
	TokenURL string

	// RegistryHost serves the v2 API (default registry-1.docker.io).
	RegistryHost string
}

// NewDockerHubAuth returns a DockerHubAuth pointed at the public endpoints.
func NewDockerHubAuth(client *http.Client) *DockerHubAuth {
	return &DockerHubAuth{
		Client:       client,
		TokenURL:     "https://auth.docker.io/token",
		RegistryHost: "registry-1.docker.io",
	}
}

// Host implements Authorizer.
func (d *DockerHubAuth) Host(string) string { return d.RegistryHost }

// DisplayName implements Authorizer.
func (d *DockerHubAuth) DisplayName(string) string { return "Docker Hub" }

// NormalizeRepository maps official images such as "ubuntu" to "library/ubuntu".
func (d *DockerHubAuth) NormalizeRepository(repository string) string {
	if strings.Contains(repository, "/") {
		return repository
	}
	return "library/" + repository
}

// Authorization implements Authorizer.
func (d *DockerHubAuth) Authorization(ctx context.Context, repository string) (string, error) {
	q := url.Values{}
	q.Set("scope", "repository:"+repository+":pull")
	q.Set("service", "registry.docker.io")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.TokenURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return "", oerrors.WrapCause(oerrors.ErrConnectivity, err, "requesting Docker Hub token")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", oerrors.NewConnectivityError(
			"Docker Hub token request failed",
			map[string]string{"Status": resp.Status, "Repository": repository},
			"Docker Hub may be rate limiting anonymous token requests; rerun the job",
		)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", oerrors.WrapCause(oerrors.ErrConnectivity, err, "decoding Docker Hub token")
	}
	return "Bearer " + body.Token, nil
}

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// ECRPublicAuth obtains a bearer token by running a credential helper command.
// Public ECR has no anonymous token endpoint, so local AWS credentials are required.
type ECRPublicAuth struct {
	// Command is the helper command line, split with shell quoting rules.
	Command string

	Run CommandRunner
}

// NewECRPublicAuth returns an ECRPublicAuth running command (or the AWS CLI default).
func NewECRPublicAuth(command string) *ECRPublicAuth {
	if strings.TrimSpace(command) == "" {
		command = DefaultECRTokenCommand
	}
	return &ECRPublicAuth{Command: command, Run: ExecRunner}
}

// Host implements Authorizer.
func (e *ECRPublicAuth) Host(registry string) string { return registry }

// DisplayName implements Authorizer.
func (e *ECRPublicAuth) DisplayName(string) string { return "Amazon ECR Public" }

// Authorization implements Authorizer.
func (e *ECRPublicAuth) Authorization(ctx context.Context, _ string) (string, error) {
	argv, err := shlex.Split(e.Command)
	if err != nil {
		return "", fmt.Errorf("parsing ECR token command %q: %w", e.Command, err)
	}
	if len(argv) == 0 {
		return "", fmt.Errorf("ECR token command is empty")
	}

	out, err := e.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		return "", &oerrors.DetailError{
			Type:    "permission denied",
			Message: "could not obtain a public ECR token",
			Context: map[string]string{"Command": e.Command},
			Hint:    "Configure AWS credentials or pass --skip-image-check for local runs",
			Cause:   fmt.Errorf("%w: %w", oerrors.ErrPermission, err),
		}
	}
	return "Bearer " + strings.TrimSpace(string(out)), nil
}
