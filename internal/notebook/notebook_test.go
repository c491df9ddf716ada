package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanNotebook = `{
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": ["# Title\n"]},
    {"cell_type": "code", "execution_count": null, "metadata": {}, "outputs": [],
     "source": ["import dask\n", "x = 1\n"]}
  ],
  "metadata": {}, "nbformat": 4, "nbformat_minor": 4
}`

func TestParse_Clean(t *testing.T) {
	nb, err := Parse([]byte(cleanNotebook))
	require.NoError(t, err)

	require.Len(t, nb.Cells, 2)
	assert.False(t, nb.Cells[0].IsCode())
	assert.True(t, nb.Cells[1].IsCode())
	assert.Equal(t, "import dask\nx = 1\n", nb.Cells[1].Code())
	assert.Equal(t, 0, nb.DirtyCells())
	assert.Empty(t, Check("clean.ipynb", nb))
}

func TestParse_DirtyCells(t *testing.T) {
	tests := []struct {
		name  string
		cell  string
		dirty bool
	}{
		{"outputs present", `{"cell_type":"code","source":[],"outputs":[{"output_type":"stream"}]}`, true},
		{"execution count set", `{"cell_type":"code","source":[],"outputs":[],"execution_count":3}`, true},
		{"execution count zero", `{"cell_type":"code","source":[],"outputs":[],"execution_count":0}`, false},
		{"execution count null", `{"cell_type":"code","source":[],"outputs":[],"execution_count":null}`, false},
		{"fields missing", `{"cell_type":"markdown","source":"text"}`, false},
		{"empty outputs object", `{"cell_type":"code","source":[],"outputs":{}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb, err := Parse([]byte(`{"cells":[` + tt.cell + `]}`))
			require.NoError(t, err)
			require.Len(t, nb.Cells, 1)
			assert.Equal(t, tt.dirty, nb.Cells[0].Dirty)
		})
	}
}

func TestParse_StringSource(t *testing.T) {
	nb, err := Parse([]byte(`{"cells":[{"cell_type":"code","source":"@delayed\ndef f(): pass"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "@delayed\ndef f(): pass", nb.Cells[0].Code())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"cells": [`))
	assert.ErrorIs(t, err, ErrInvalidNotebook)
	assert.ErrorContains(t, err, "not valid JSON")

	_, err = Parse([]byte(`{"worksheets": []}`))
	assert.ErrorIs(t, err, ErrInvalidNotebook)
	assert.ErrorContains(t, err, "no 'cells' list")
}

func TestCheck_CountsDirtyCellsOncePerNotebook(t *testing.T) {
	doc := `{"cells":[
	  {"cell_type":"code","source":["1"],"outputs":[{"x":1}],"execution_count":1},
	  {"cell_type":"code","source":["2"],"outputs":[],"execution_count":2},
	  {"cell_type":"code","source":["3"],"outputs":[],"execution_count":null}
	]}`
	nb, err := Parse([]byte(doc))
	require.NoError(t, err)

	errs := Check("examples/a/nb.ipynb", nb)
	require.Len(t, errs, 1)
	assert.Equal(t,
		"Found 2 non-empty cells in 'examples/a/nb.ipynb'. Clear all outputs and re-commit this file.",
		errs[0])
}

func TestCheck_LintsOnlyCodeCells(t *testing.T) {
	doc := `{"cells":[
	  {"cell_type":"markdown","source":["Never use warnings.filterwarnings or @delayed"]},
	  {"cell_type":"code","source":["@delayed\n","def inc(x):\n","    return x + 1\n"]}
	]}`
	nb, err := Parse([]byte(doc))
	require.NoError(t, err)

	errs := Check("nb.ipynb", nb)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "'@delayed'")
}
