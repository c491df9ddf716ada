// Package registry answers whether a container image tag can be pulled.
package registry

import (
	"fmt"
	"strings"
)

// Image identifies a tagged image, optionally on an explicit registry host.
type Image struct {
	// Registry is the registry host, empty for Docker Hub.
	Registry string

	// Repository is the repository path on the registry, e.g. saturncloud/saturn.
	Repository string

	// Tag is the image tag.
	Tag string
}

// Name returns the image reference without its tag, as written in a recipe.
func (i Image) Name() string {
	if i.Registry == "" {
		return i.Repository
	}
	return i.Registry + "/" + i.Repository
}

// String returns the full image reference.
func (i Image) String() string {
	return i.Name() + ":" + i.Tag
}

// ParseImageURI splits an image URI into registry, repository and tag.
//
// The tag follows the last ':' after the last '/', so registry ports are never
// mistaken for tags. When the name has at least three '/'-separated segments
// the leading part is the registry host and the last two segments are the
// repository; otherwise the whole name is a Docker Hub repository.
func ParseImageURI(uri string) (Image, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Image{}, fmt.Errorf("image_uri is empty")
	}

	slash := strings.LastIndex(uri, "/")
	colon := strings.LastIndex(uri, ":")
	if colon <= slash || colon == len(uri)-1 {
		return Image{}, fmt.Errorf("image_uri ('%s') needs to include a tag", uri)
	}

	name, tag := uri[:colon], uri[colon+1:]

	// Split at most twice from the right: [registry, namespace, image].
	img := Image{Repository: name, Tag: tag}
	if last := strings.LastIndex(name, "/"); last > 0 {
		if prev := strings.LastIndex(name[:last], "/"); prev > 0 {
			img.Registry = name[:prev]
			img.Repository = name[prev+1:]
		}
	}
	return img, nil
}
