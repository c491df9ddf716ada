package remote

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
)

// InstanceTypes is the set of valid instance type identifiers.
type InstanceTypes map[string]struct{}

// NewInstanceTypes builds a set from identifiers.
func NewInstanceTypes(names ...string) InstanceTypes {
	set := make(InstanceTypes, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether name is a valid instance type.
func (s InstanceTypes) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the identifiers in sorted order.
func (s InstanceTypes) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseInstanceTypes extracts identifiers from the "tiers" node of a
// constants document. A mapping contributes its keys; a sequence contributes
// scalar items or the "name" of mapping items.
func ParseInstanceTypes(data []byte) (InstanceTypes, error) {
	var doc struct {
		Tiers yaml.Node `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrValidation, err, "parsing instance types")
	}

	tiers := &doc.Tiers
	set := InstanceTypes{}
	switch tiers.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(tiers.Content); i += 2 {
			set[tiers.Content[i].Value] = struct{}{}
		}
	case yaml.SequenceNode:
		for _, item := range tiers.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				set[item.Value] = struct{}{}
			case yaml.MappingNode:
				var named struct {
					Name string `yaml:"name"`
				}
				if err := item.Decode(&named); err != nil {
					return nil, oerrors.WrapCause(oerrors.ErrValidation, err, "parsing instance type tier")
				}
				if named.Name != "" {
					set[named.Name] = struct{}{}
				}
			}
		}
	default:
		return nil, oerrors.Wrap(oerrors.ErrValidation, "instance types document has no 'tiers' mapping")
	}
	return set, nil
}

// FetchInstanceTypes downloads and parses the valid instance types.
func (f *Fetcher) FetchInstanceTypes(ctx context.Context, url string) (InstanceTypes, error) {
	data, err := f.get(ctx, url, "instance types")
	if err != nil {
		return nil, err
	}

	set, err := ParseInstanceTypes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return set, nil
}
