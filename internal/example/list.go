package example

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
)

// ListDirs returns every directory directly under root in lexicographic
// order, dot-directories included so they are held to the naming rule.
// Plain files at the root are not examples.
func ListDirs(fs afero.Fs, root string) ([]string, error) {
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, fmt.Errorf("listing examples directory %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
