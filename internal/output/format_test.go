package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatText, true},
		{FormatJSON, true},
		{FormatYAML, true},
		{OutputFormat("table"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.IsValid())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
		valid bool
	}{
		{"", FormatText, true},
		{"text", FormatText, true},
		{"JSON", FormatJSON, true},
		{"yml", FormatYAML, true},
		{"yaml", FormatYAML, true},
		{"xml", OutputFormat("xml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseOutputFormat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, got.IsValid())
		})
	}
}

func TestValidFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "json", "yaml"}, ValidFormats())
}
