package output

import "strings"

// OutputFormat specifies the report format.
type OutputFormat string

const (
	// FormatText prints a numbered list for humans and CI logs.
	FormatText OutputFormat = "text"

	// FormatJSON prints the report as a JSON document.
	FormatJSON OutputFormat = "json"

	// FormatYAML prints the report as a YAML document.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat.
// Unknown values are returned as-is so callers can reject them with IsValid.
func ParseOutputFormat(s string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return OutputFormat(s)
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}
