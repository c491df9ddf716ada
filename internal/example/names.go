package example

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	directoryRegex = regexp.MustCompile(`^[0-9a-z\-]+$`)
	filenameRegex  = regexp.MustCompile(`^[0-9A-Za-z\-\.\_]+$`)
)

// DefaultAdminDirs are directory names exempt from the directory naming rule.
var DefaultAdminDirs = []string{"_img"}

// ValidDirectoryName reports whether name is lowercase alphanumerics and dashes.
func ValidDirectoryName(name string) bool {
	return directoryRegex.MatchString(name)
}

// ValidFileName reports whether name is alphanumerics, dashes, underscores and periods.
func ValidFileName(name string) bool {
	return filenameRegex.MatchString(name)
}

// hidden reports whether a path element is a dot-entry. Hidden entries are
// never walked, which keeps .saturn/ and .ipynb_checkpoints/ out of the
// naming and notebook rules.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func baseName(path string) string {
	return filepath.Base(filepath.Clean(path))
}
