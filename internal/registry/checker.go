package registry

import (
	"context"
	"fmt"
	"net/http"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/output"
)

// ManifestMediaType is requested when probing for a manifest.
const ManifestMediaType = "application/vnd.docker.distribution.manifest.v2+json"

// Options configures a Checker.
type Options struct {
	// Client is used for all registry requests (http.DefaultClient when nil).
	Client *http.Client

	// ECRTokenCommand overrides DefaultECRTokenCommand.
	ECRTokenCommand string
}

// repositoryNormalizer is implemented by authorizers whose registry rewrites
// repository names, such as Docker Hub's implicit library/ namespace.
type repositoryNormalizer interface {
	NormalizeRepository(repository string) string
}

// Checker reports whether images exist on their registries.
type Checker struct {
	client      *http.Client
	authorizers map[string]Authorizer
	fallback    Authorizer
}

// NewChecker returns a Checker with Docker Hub, public ECR and an anonymous
// fallback for every other host.
func NewChecker(opts Options) *Checker {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	hub := NewDockerHubAuth(client)
	c := &Checker{
		client:      client,
		authorizers: map[string]Authorizer{},
		fallback:    anonymous{},
	}
	c.Register("", hub)
	c.Register(DockerHub, hub)
	c.Register(ECRPublic, NewECRPublicAuth(opts.ECRTokenCommand))
	return c
}

// Register installs the Authorizer used for a registry host.
func (c *Checker) Register(registry string, auth Authorizer) {
	c.authorizers[registry] = auth
}

func (c *Checker) authorizerFor(registry string) Authorizer {
	if auth, ok := c.authorizers[registry]; ok {
		return auth
	}
	return c.fallback
}

// DisplayName names the registry an image lives on.
func (c *Checker) DisplayName(img Image) string {
	return c.authorizerFor(img.Registry).DisplayName(img.Registry)
}

// Exists reports whether the manifest for img answers HEAD with 200.
// Token and transport failures are returned as errors.
func (c *Checker) Exists(ctx context.Context, img Image) (bool, error) {
	auth := c.authorizerFor(img.Registry)

	repository := img.Repository
	if n, ok := auth.(repositoryNormalizer); ok {
		repository = n.NormalizeRepository(repository)
	}

	header, err := auth.Authorization(ctx, repository)
	if err != nil {
		return false, err
	}

	url := fmt.Sprintf("https://%s/v2/%s/manifests/%s", auth.Host(img.Registry), repository, img.Tag)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, fmt.Errorf("building manifest request: %w", err)
	}
	req.Header.Set("Accept", ManifestMediaType)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, oerrors.WrapCause(oerrors.ErrConnectivity, err, "checking image "+img.String())
	}
	resp.Body.Close()

	output.Debug("image manifest probed", "image", img.String(), "url", url, "status", resp.StatusCode)
	return resp.StatusCode == http.StatusOK, nil
}
