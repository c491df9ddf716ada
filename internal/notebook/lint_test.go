package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCodeCell(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		contains []string
	}{
		{
			name:     "filterwarnings",
			lines:    []string{"import warnings\n", `warnings.filterwarnings("ignore")` + "\n"},
			contains: []string{"warnings.filterwarnings()"},
		},
		{
			name:     "simplefilter",
			lines:    []string{`warnings.simplefilter("ignore")`},
			contains: []string{"Do not filter out warnings"},
		},
		{
			name:     "bare delayed decorator",
			lines:    []string{"from dask import delayed\n", "@delayed\n", "def f(x):\n", "    return x\n"},
			contains: []string{"Found a use of '@delayed' in nb.ipynb"},
		},
		{
			name:     "both rules",
			lines:    []string{"warnings.filterwarnings('ignore')\n", "@delayed\n"},
			contains: []string{"warnings", "@dask.delayed"},
		},
		{
			name:  "namespaced decorator",
			lines: []string{"import dask\n", "@dask.delayed\n", "def f(x):\n", "    return x\n"},
		},
		{
			name:  "warnings module without filter",
			lines: []string{"import warnings\n", "warnings.warn('careful')\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := LintCodeCell("nb.ipynb", tt.lines)
			require.Len(t, errs, len(tt.contains))
			for i, want := range tt.contains {
				assert.Contains(t, errs[i], want)
			}
		})
	}
}

func TestLintCodeCell_JoinsLinesWithoutSeparator(t *testing.T) {
	// Lines already carry their newlines; a pattern split across two list
	// entries is still one line of code.
	errs := LintCodeCell("nb.ipynb", []string{"warnings.", "filterwarnings('ignore')\n"})
	assert.Len(t, errs, 1)
}
